package assistant

import (
	"errors"

	"choo-choo/cmd/api/httpclient"
)

var (
	// ErrNotConfigured 는 API 키 등 필수 설정이 없어 외부 호출을 하지 않았음을 뜻한다.
	ErrNotConfigured = errors.New("provider not configured")
	// ErrUpstreamNotFound 는 전송 계층의 404 센티넬이다. 핸들러는 이 값으로 "찾지 못함"을 구분한다.
	ErrUpstreamNotFound = httpclient.ErrUpstreamNotFound
	// ErrEmptyResult 는 호출은 성공했지만 쓸만한 결과가 없음을 뜻한다.
	ErrEmptyResult = errors.New("empty result")
)

// UpstreamError 는 provider 가 돌려주는 전송 오류 타입이다.
type UpstreamError = httpclient.UpstreamError

const maxDiagnosticRunes = 120

// diagnostic 은 사용자에게 보여줄 짧은 오류 문자열을 만든다.
func diagnostic(err error) string {
	if err == nil {
		return ""
	}
	return truncate(err.Error(), maxDiagnosticRunes)
}

// truncate returns s truncated to max runes, with an ellipsis when cut.
func truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max]) + "..."
}
