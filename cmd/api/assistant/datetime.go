package assistant

import "time"

// formatDateTime 은 "Today is Monday, January 2, 2006, and the current time is 03:04 PM." 형태를 만든다.
func formatDateTime(now time.Time) string {
	return "Today is " + now.Format("Monday, January 2, 2006") +
		", and the current time is " + now.Format("03:04 PM") + "."
}
