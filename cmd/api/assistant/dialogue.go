package assistant

import (
	"context"
	"strings"
)

const defaultPersona = `You are Choo Choo, a friendly and upbeat personal assistant.
Answer in plain text without markdown, in at most three short sentences.
If you do not know something, say so honestly instead of guessing.`

// runDialogue 는 생성형 모델로 답을 만든다. 설정이 없거나 실패하거나 빈 응답이면 에러를 돌려
// 다음 폴백 단계로 넘긴다.
func (r *Responder) runDialogue(ctx context.Context, req request) (string, error) {
	if r.generator == nil {
		return "", ErrNotConfigured
	}
	out, err := r.generator.Generate(ctx, Prompt{
		System:  r.persona,
		History: req.history,
		Input:   req.raw,
	})
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptyResult
	}
	return out, nil
}
