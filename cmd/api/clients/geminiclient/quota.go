package geminiclient

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrQuotaExceeded 는 일일 호출 한도를 모두 썼음을 뜻한다.
	ErrQuotaExceeded = errors.New("gemini daily quota exceeded")
	// ErrRateLimited 는 분당 간격이 아직 지나지 않았음을 뜻한다. 기다리지 않고 다음 폴백으로 넘긴다.
	ErrRateLimited = errors.New("gemini per-minute rate limit reached")
)

// QuotaLimiter 는 Gemini 호출의 분당/일일 한도를 관리한다.
// API 인스턴스가 하나라는 전제의 인메모리 구현이라 재시작하면 카운터가 초기화된다.
type QuotaLimiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	interval time.Duration
	lastCall time.Time

	now func() time.Time
}

// NewQuotaLimiter 는 0 이하인 한도를 "제한 없음"으로 본다.
func NewQuotaLimiter(requestsPerMinute, requestsPerDay int) *QuotaLimiter {
	l := &QuotaLimiter{now: time.Now}
	if requestsPerDay > 0 {
		l.dailyLimit = requestsPerDay
	}
	if requestsPerMinute > 0 {
		l.interval = time.Minute / time.Duration(requestsPerMinute)
	}
	return l
}

// TryReserve 는 지금 바로 쓸 수 있는 슬롯이 있을 때만 예약한다. 절대 블록하지 않는다.
func (l *QuotaLimiter) TryReserve() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().UTC()
	if key := now.Format("2006-01-02"); l.dayKey != key {
		l.dayKey = key
		l.usedToday = 0
	}

	if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
		return ErrQuotaExceeded
	}
	if l.interval > 0 && !l.lastCall.IsZero() && now.Before(l.lastCall.Add(l.interval)) {
		return ErrRateLimited
	}

	l.usedToday++
	l.lastCall = now
	return nil
}
