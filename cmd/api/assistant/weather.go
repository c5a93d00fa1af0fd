package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

const (
	weatherNeedCityReply      = "Please specify a city to check the weather."
	weatherNotConfiguredReply = "⚠ Weather service is not configured."
	weatherCityNotFoundReply  = "❌ City not found. Please check the city name."
)

func (r *Responder) handleWeather(ctx context.Context, text string) string {
	city, found := extractCity(text)
	if !found {
		city = r.defaultCity
	}
	if city == "" {
		return weatherNeedCityReply
	}
	if r.weather == nil {
		return weatherNotConfiguredReply
	}

	w, err := r.weather.Current(ctx, city)
	switch {
	case err == nil:
		return formatWeather(w)
	case errors.Is(err, ErrNotConfigured):
		return weatherNotConfiguredReply
	case errors.Is(err, ErrUpstreamNotFound):
		return weatherCityNotFoundReply
	default:
		return "🚨 Could not fetch weather data: " + diagnostic(err)
	}
}

func formatWeather(w *Weather) string {
	return fmt.Sprintf("🌤 Weather Report for %s, %s:\n"+
		"- Temperature: %s°C\n"+
		"- Feels Like: %s°C\n"+
		"- Condition: %s\n"+
		"- Humidity: %d%%",
		w.City, w.Country,
		strconv.FormatFloat(w.Temperature, 'f', -1, 64),
		strconv.FormatFloat(w.FeelsLike, 'f', -1, 64),
		capitalize(w.Description),
		w.Humidity,
	)
}

func capitalize(s string) string {
	rs := []rune(s)
	if len(rs) == 0 {
		return s
	}
	if rs[0] >= 'a' && rs[0] <= 'z' {
		rs[0] -= 'a' - 'A'
	}
	return string(rs)
}
