package services

import "net/http"

// ServiceError 는 핸들러가 그대로 응답으로 옮길 수 있는 에러다.
// ErrorCode 는 기계용 코드, Message 는 화면에 보여줄 문구(선택)다.
type ServiceError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Cause      error
}

func (e *ServiceError) Error() string {
	if e == nil {
		return "internal_error"
	}
	if e.Cause != nil {
		return e.ErrorCode + ": " + e.Cause.Error()
	}
	return e.ErrorCode
}

func (e *ServiceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func internalError(code string, cause error) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, ErrorCode: code, Cause: cause}
}
