// Package trace 는 요청 단위 추적 정보(request id, span 시퀀스)를 컨텍스트로 전달한다.
// inbound 요청은 span 0, 이후 외부 API 호출(날씨, 뉴스, 검색, Gemini)마다 1,2,3... 이 붙는다.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderSpanID    = "X-Span-Id"
)

type ctxKey struct{}

// Info 는 하나의 inbound 요청에 대한 추적 정보다.
type Info struct {
	RequestID string
	spanSeq   atomic.Int64
}

// GenerateID 는 32자리 hex 랜덤 ID 를 만든다.
func GenerateID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return time.Now().UTC().Format("20060102T150405.000000000")
	}
	return hex.EncodeToString(b[:])
}

// WithRequestAndSpan 은 requestID 와 시작 span 값을 담은 컨텍스트를 돌려준다.
func WithRequestAndSpan(ctx context.Context, requestID string, initialSpan int64) context.Context {
	info := &Info{RequestID: requestID}
	info.spanSeq.Store(initialSpan)
	return context.WithValue(ctx, ctxKey{}, info)
}

// Detach 는 ctx 의 추적 정보만 유지하고 취소/데드라인은 떼어낸 컨텍스트를 돌려준다.
// 응답을 돌려준 뒤에도 이어지는 작업(TTS 재생 등)의 로그를 같은 요청으로 묶을 때 쓴다.
func Detach(ctx context.Context) context.Context {
	info := infoFromContext(ctx)
	if info == nil {
		return context.Background()
	}
	return context.WithValue(context.Background(), ctxKey{}, info)
}

func infoFromContext(ctx context.Context) *Info {
	if ctx == nil {
		return nil
	}
	v, _ := ctx.Value(ctxKey{}).(*Info)
	return v
}

func RequestIDFromContext(ctx context.Context) string {
	info := infoFromContext(ctx)
	if info == nil {
		return ""
	}
	return info.RequestID
}

// CurrentSpanID 는 현재 span 값을 증가 없이 돌려준다.
func CurrentSpanID(ctx context.Context) string {
	info := infoFromContext(ctx)
	if info == nil {
		return "0"
	}
	val := info.spanSeq.Load()
	if val <= 0 {
		return "0"
	}
	return strconv.FormatInt(val, 10)
}

// NextSpanID 는 span 을 1 증가시키고 (requestID, spanID) 를 돌려준다.
// 미들웨어 밖(배치, 테스트)에서 호출되면 새 requestID 와 span "1" 을 만든다.
func NextSpanID(ctx context.Context) (string, string) {
	info := infoFromContext(ctx)
	if info == nil {
		return GenerateID(), "1"
	}
	val := info.spanSeq.Add(1)
	if val <= 0 {
		val = 1
	}
	return info.RequestID, strconv.FormatInt(val, 10)
}
