package httpclient

import (
	"errors"
	"fmt"
)

// ErrUpstreamNotFound 는 외부 서비스가 대상(도시 등)을 찾지 못했음(404)을 뜻한다.
var ErrUpstreamNotFound = errors.New("upstream resource not found")

// UpstreamError 는 외부 서비스의 non-2xx 응답, 타임아웃, 네트워크 오류를 감싼다.
type UpstreamError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed: status=%d", e.Service, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	}
	return e.Service + " request failed"
}

func (e *UpstreamError) Unwrap() error { return e.Err }
