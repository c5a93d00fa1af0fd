package assistant

import (
	"context"
	"strings"
)

// rule 은 의도 하나에 대한 (판정, 처리) 쌍이다. handle 이 false 를 돌려주면 다음 규칙으로 넘어간다.
type rule struct {
	name   string
	match  func(text string) bool
	handle func(ctx context.Context, req request) (string, bool)
}

// tier 는 규칙이 모두 빗나갔을 때 차례로 시도하는 폴백 단계다.
// 에러나 빈 문자열이면 다음 단계로 넘어간다.
type tier struct {
	name string
	run  func(ctx context.Context, req request) (string, error)
}

var (
	weatherKeywords  = []string{"weather", "temperature", "climate", "forecast"}
	newsKeywords     = []string{"news", "headlines"}
	dateTimeKeywords = []string{"date", "time"}

	locativeWords  = []string{"in", "at", "for"}
	newsTopicWords = []string{"about", "on", "news"}
)

// buildRules 는 우선순위 순서대로 규칙을 만든다.
func (r *Responder) buildRules() []rule {
	rules := []rule{
		{
			name:  IntentWeather,
			match: func(text string) bool { return containsAny(text, weatherKeywords) },
			handle: func(ctx context.Context, req request) (string, bool) {
				return r.handleWeather(ctx, req.text), true
			},
		},
		{
			name:  IntentNews,
			match: func(text string) bool { return containsAny(text, newsKeywords) },
			handle: func(ctx context.Context, req request) (string, bool) {
				return r.handleNews(ctx, req.text), true
			},
		},
		{
			name:  IntentDateTime,
			match: func(text string) bool { return containsAny(text, dateTimeKeywords) },
			handle: func(_ context.Context, _ request) (string, bool) {
				return formatDateTime(r.now()), true
			},
		},
	}

	if r.opener != nil {
		rules = append(rules, rule{
			name:  IntentDesktop,
			match: func(text string) bool { _, ok := parseDesktopAction(text); return ok },
			handle: func(_ context.Context, req request) (string, bool) {
				action, ok := parseDesktopAction(req.text)
				if !ok {
					return "", false
				}
				return r.runDesktopAction(action), true
			},
		})
	}
	return rules
}

// buildTiers 는 폴백 체인을 구체적인 것부터 일반적인 것 순서로 만든다.
func (r *Responder) buildTiers() []tier {
	return []tier{
		{name: IntentDialogue, run: r.runDialogue},
		{name: IntentCanned, run: r.runCanned},
		{name: IntentSearch, run: r.runSearch},
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// textAfterLastWord 는 words 중 하나와 같은 토큰이 마지막으로 나온 위치 뒤의 텍스트를 돌려준다.
// 토큰이 없으면 found=false.
func textAfterLastWord(text string, words []string) (rest string, found bool) {
	tokens := strings.Fields(text)
	last := -1
	for i, tok := range tokens {
		tok = trimPunctuation(tok)
		for _, w := range words {
			if tok == w {
				last = i
			}
		}
	}
	if last < 0 {
		return "", false
	}
	rest = strings.Join(tokens[last+1:], " ")
	return trimPunctuation(rest), true
}

func trimPunctuation(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "?!.,;:"))
}

// extractCity 는 마지막 in/at/for 뒤의 텍스트를 도시 이름으로 본다.
// 전치사가 없으면 found=false 이고, 전치사 뒤가 비어 있으면 city 가 빈 문자열이다.
func extractCity(text string) (city string, found bool) {
	return textAfterLastWord(text, locativeWords)
}

// extractNewsTopic 은 마지막 about/on/news 뒤의 텍스트를 주제로 본다. 없으면 "latest".
func extractNewsTopic(text string) string {
	topic, found := textAfterLastWord(text, newsTopicWords)
	if !found || topic == "" {
		return LatestNewsTopic
	}
	return topic
}
