// Package httpclient 는 외부 API(날씨, 뉴스, 검색) 호출에 쓰는 공통 HTTP 클라이언트다.
// 모든 요청에 추적 헤더를 붙이고, 호출 결과를 한 줄씩 로깅한다.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"choo-choo/cmd/api/trace"
	"choo-choo/internal/logger"
)

// DefaultTimeout 은 외부 API 호출 기본 타임아웃이다. 재시도는 하지 않는다.
const DefaultTimeout = 8 * time.Second

const maxBodySize = 2 * 1024 * 1024

// 로그에 남기지 않을 쿼리 파라미터 (API 키).
var secretParams = []string{"appid", "apikey", "api_key", "key"}

type Config struct {
	Timeout time.Duration
}

// loggingRoundTripper 는 아웃바운드 호출에 X-Request-Id / X-Span-Id 를 붙이고
// method, url(키 제거), status, duration 을 로깅한다.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID, spanID := trace.NextSpanID(req.Context())
	req.Header.Set(trace.HeaderRequestID, requestID)
	req.Header.Set(trace.HeaderSpanID, spanID)

	resp, err := l.inner.RoundTrip(req)
	fields := logger.Fields{
		"method":     req.Method,
		"url":        redactURL(req.URL),
		"duration":   time.Since(start).String(),
		"request_id": requestID,
		"span_id":    spanID,
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.ErrorWithFields("httpclient request failed", fields)
		return nil, err
	}
	fields["status"] = resp.StatusCode
	logger.DebugWithFields("httpclient request success", fields)
	return resp, nil
}

func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	for key := range q {
		for _, secret := range secretParams {
			if strings.EqualFold(key, secret) {
				q.Set(key, "REDACTED")
			}
		}
	}
	clone := *u
	clone.RawQuery = q.Encode()
	return clone.String()
}

// BaseClient 는 http.Client 와 baseURL, 그리고 에러 메시지에 쓸 서비스 이름을 묶는다.
type BaseClient struct {
	HTTPClient *http.Client
	BaseURL    string
	Service    string
}

func NewBaseClient(service, baseURL string, timeout time.Duration) *BaseClient {
	return NewBaseClientWithClient(New(Config{Timeout: timeout}), service, baseURL)
}

// NewBaseClientWithClient 는 주어진 http.Client 를 쓴다. nil 이면 기본 클라이언트.
func NewBaseClientWithClient(httpClient *http.Client, service, baseURL string) *BaseClient {
	if httpClient == nil {
		httpClient = NewDefault()
	}
	return &BaseClient{
		HTTPClient: httpClient,
		BaseURL:    baseURL,
		Service:    service,
	}
}

// NewRequest 는 baseURL + relPath 로 요청을 만든다. 쿼리는 query 인자로만 받는다.
func (c *BaseClient) NewRequest(ctx context.Context, method, relPath string, query url.Values, body io.Reader) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.Contains(relPath, "?") {
		return nil, fmt.Errorf("httpclient: relPath must not contain query string (use query parameter instead): %s", relPath)
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	if relPath != "" {
		base.Path = path.Join(base.Path, relPath)
	}
	if query != nil {
		base.RawQuery = query.Encode()
	}
	return http.NewRequestWithContext(ctx, method, base.String(), body)
}

func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	return c.HTTPClient.Do(req)
}

// Fetch 는 GET 요청을 보내고 2xx 응답 바디를 돌려준다.
// 네트워크 오류와 non-2xx 는 *UpstreamError, 404 는 ErrUpstreamNotFound 를 감싼다.
func (c *BaseClient) Fetch(ctx context.Context, relPath string, query url.Values, header http.Header) ([]byte, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, relPath, query, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, &UpstreamError{Service: c.Service, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &UpstreamError{Service: c.Service, Err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &UpstreamError{Service: c.Service, StatusCode: resp.StatusCode, Err: ErrUpstreamNotFound}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &UpstreamError{
			Service:    c.Service,
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(body))),
		}
	}
	return body, nil
}

// GetJSON 은 Fetch 후 바디를 out 으로 디코딩한다.
func (c *BaseClient) GetJSON(ctx context.Context, relPath string, query url.Values, out any) error {
	body, err := c.Fetch(ctx, relPath, query, http.Header{"Accept": []string{"application/json"}})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &UpstreamError{Service: c.Service, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// New 는 로깅 트랜스포트를 단 http.Client 를 만든다. Timeout 이 0 이면 DefaultTimeout.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: http.DefaultTransport},
	}
}

func NewDefault() *http.Client {
	return New(Config{})
}
