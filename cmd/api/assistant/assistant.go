// Package assistant 는 자유 텍스트 입력을 의도별 핸들러로 라우팅하고
// 사용자에게 보여줄 응답 문자열을 조합한다.
//
// 규칙은 순서가 있는 (이름, 판정, 처리) 목록이며 먼저 맞는 규칙이 이긴다.
// 어떤 규칙에도 맞지 않으면 생성형 모델 → 기본 응답 테이블 → 웹 검색 →
// "이해하지 못했다" 순서의 폴백 체인을 탄다. Respond 는 항상 문자열을 돌려준다.
package assistant

import (
	"context"
	"strings"
	"time"

	"choo-choo/cmd/api/trace"
	"choo-choo/internal/logger"
)

// Turn 은 과거 대화의 (사용자, 봇) 한 쌍이다.
type Turn struct {
	User string
	Bot  string
}

// Weather 는 날씨 제공자 응답 중 리포트에 필요한 값만 담는다.
type Weather struct {
	City        string
	Country     string
	Temperature float64
	FeelsLike   float64
	Description string
	Humidity    int
}

// Article 은 뉴스 기사 한 건이다.
type Article struct {
	Title       string
	Description string
	Source      string
	URL         string
}

// SearchResult 는 웹 검색 결과 한 건이다.
type SearchResult struct {
	Title   string
	Snippet string
	Link    string
}

// Prompt 는 생성형 모델 호출 입력이다.
type Prompt struct {
	System  string
	History []Turn
	Input   string
}

type WeatherProvider interface {
	Current(ctx context.Context, city string) (*Weather, error)
}

type NewsProvider interface {
	Search(ctx context.Context, query string, limit int) ([]Article, error)
}

type SearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Opener 는 URL 이나 로컬 애플리케이션을 실행한다.
type Opener interface {
	Open(target string) error
}

// Reply 는 라우팅 결과다. Intent 는 응답을 만든 규칙이나 폴백 단계의 이름이다.
type Reply struct {
	Intent string
	Text   string
}

const (
	IntentWeather  = "weather"
	IntentNews     = "news"
	IntentDateTime = "datetime"
	IntentDesktop  = "desktop"
	IntentDialogue = "dialogue"
	IntentCanned   = "canned"
	IntentSearch   = "search"
	IntentUnknown  = "unknown"
)

const unknownReply = "I'm sorry, I don't understand that yet. Could you rephrase it?"

// Responder 는 의도 분류기와 핸들러 묶음이다. 생성 후에는 읽기 전용이므로
// 여러 요청에서 동시에 사용해도 된다.
type Responder struct {
	weather      WeatherProvider
	defaultCity  string
	news         NewsProvider
	newsLimit    int
	generator    Generator
	historyTurns int
	persona      string
	search       SearchProvider
	searchLimit  int
	opener       Opener
	apps         map[string]string
	canned       map[string]string
	now          func() time.Time

	rules []rule
	tiers []tier
}

type Option func(*Responder)

func WithWeather(p WeatherProvider, defaultCity string) Option {
	return func(r *Responder) {
		r.weather = p
		if defaultCity != "" {
			r.defaultCity = defaultCity
		}
	}
}

func WithNews(p NewsProvider, limit int) Option {
	return func(r *Responder) {
		r.news = p
		if limit > 0 {
			r.newsLimit = limit
		}
	}
}

// WithGenerator 는 생성형 대화 단계를 켠다. historyTurns 는 프롬프트에 넣을 최근 턴 수다.
func WithGenerator(g Generator, historyTurns int) Option {
	return func(r *Responder) {
		r.generator = g
		if historyTurns > 0 {
			r.historyTurns = historyTurns
		}
	}
}

func WithPersona(instruction string) Option {
	return func(r *Responder) {
		if strings.TrimSpace(instruction) != "" {
			r.persona = instruction
		}
	}
}

func WithSearch(p SearchProvider, limit int) Option {
	return func(r *Responder) {
		r.search = p
		if limit > 0 {
			r.searchLimit = limit
		}
	}
}

// WithDesktop 은 로컬 PC 동작 규칙을 켠다. apps 는 앱 이름 → 실행 대상 매핑이다.
func WithDesktop(o Opener, apps map[string]string) Option {
	return func(r *Responder) {
		r.opener = o
		r.apps = make(map[string]string, len(apps))
		for name, target := range apps {
			r.apps[normalize(name)] = target
		}
	}
}

// WithCannedReplies 는 기본 응답 테이블에 문구를 추가하거나 덮어쓴다.
func WithCannedReplies(replies map[string]string) Option {
	return func(r *Responder) {
		for phrase, reply := range replies {
			r.canned[normalize(phrase)] = reply
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Responder) {
		if now != nil {
			r.now = now
		}
	}
}

func New(opts ...Option) *Responder {
	r := &Responder{
		defaultCity:  "London",
		newsLimit:    5,
		historyTurns: 4,
		persona:      defaultPersona,
		searchLimit:  3,
		canned:       defaultCannedReplies(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.rules = r.buildRules()
	r.tiers = r.buildTiers()
	return r
}

// Respond 는 입력을 분류해 알맞은 핸들러로 응답을 만든다. 외부 호출 실패는
// 모두 사용자용 문자열로 바뀌며 에러로 올라가지 않는다.
func (r *Responder) Respond(ctx context.Context, input string, history []Turn) Reply {
	text := normalize(input)
	if text == "" {
		return Reply{Intent: IntentUnknown, Text: "Please type something so I can help you."}
	}
	req := request{text: text, raw: strings.TrimSpace(input), history: lastTurns(history, r.historyTurns)}

	for _, rl := range r.rules {
		if !rl.match(req.text) {
			continue
		}
		if out, ok := rl.handle(ctx, req); ok {
			r.logResolved(ctx, rl.name, req.text)
			return Reply{Intent: rl.name, Text: out}
		}
	}

	for _, t := range r.tiers {
		out, err := t.run(ctx, req)
		if err != nil {
			logger.DebugWithFields("assistant tier declined", logger.Fields{
				"tier":  t.name,
				"error": err.Error(),
			})
			continue
		}
		if strings.TrimSpace(out) == "" {
			continue
		}
		r.logResolved(ctx, t.name, req.text)
		return Reply{Intent: t.name, Text: out}
	}

	r.logResolved(ctx, IntentUnknown, req.text)
	return Reply{Intent: IntentUnknown, Text: unknownReply}
}

// Classify 는 입력에 맞는 첫 규칙의 이름을 돌려준다. 규칙이 없으면 폴백 체인으로 간다는 뜻의 "fallback".
func (r *Responder) Classify(input string) string {
	text := normalize(input)
	for _, rl := range r.rules {
		if rl.match(text) {
			return rl.name
		}
	}
	return "fallback"
}

func (r *Responder) logResolved(ctx context.Context, intent, text string) {
	logger.DebugWithFields("assistant intent resolved", logger.Fields{
		"intent":     intent,
		"input":      truncate(text, 200),
		"request_id": trace.RequestIDFromContext(ctx),
	})
}

type request struct {
	text    string
	raw     string
	history []Turn
}

// normalize 는 소문자화, 앞뒤 공백 제거, 연속 공백 축약을 한다.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func lastTurns(history []Turn, n int) []Turn {
	if n <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
