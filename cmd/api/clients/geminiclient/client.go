// Package geminiclient 는 대화 폴백 단계에서 쓰는 Gemini 생성형 모델 클라이언트다.
// 모든 호출(성공/실패)은 ai_logs 에 기록된다.
package geminiclient

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"choo-choo/cmd/api/assistant"
	"choo-choo/cmd/api/httpclient"
	"choo-choo/config"
	"choo-choo/internal/logger"
	"choo-choo/models"
)

// contentGenerator 는 *genai.Models 중 이 클라이언트가 쓰는 메서드다.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// UsageRecorder 는 호출 기록을 저장한다. repositories.AILogRepository 가 구현한다.
type UsageRecorder interface {
	Insert(ctx context.Context, log models.AILog) error
}

type Client struct {
	gen         contentGenerator
	model       string
	temperature float32
	maxTokens   int32
	timeout     time.Duration
	quota       *QuotaLimiter
	recorder    UsageRecorder
	now         func() time.Time
}

// NewFromEnv 는 GEMINI_API_KEY 로 클라이언트를 만든다. 키가 없으면 assistant.ErrNotConfigured.
func NewFromEnv(ctx context.Context, cfg config.GeminiConfig, recorder UsageRecorder) (*Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, assistant.ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpclient.New(httpclient.Config{Timeout: cfg.Timeout}),
	})
	if err != nil {
		return nil, fmt.Errorf("init genai client: %w", err)
	}
	return newClient(client.Models, cfg, recorder), nil
}

func newClient(gen contentGenerator, cfg config.GeminiConfig, recorder UsageRecorder) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		gen:         gen,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxOutputTokens,
		timeout:     timeout,
		quota:       NewQuotaLimiter(cfg.RequestsPerMinute, cfg.RequestsPerDay),
		recorder:    recorder,
		now:         time.Now,
	}
}

// Generate 는 persona, 최근 대화, 새 입력으로 답을 만든다.
func (c *Client) Generate(ctx context.Context, prompt assistant.Prompt) (string, error) {
	if err := c.quota.TryReserve(); err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxTokens,
	}
	if prompt.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	requestedAt := c.now()
	resp, err := c.gen.GenerateContent(callCtx, c.model, buildContents(prompt), cfg)
	completedAt := c.now()

	entry := models.AILog{
		ModelName:   c.model,
		DurationMs:  completedAt.Sub(requestedAt).Milliseconds(),
		InputPrompt: renderPrompt(prompt),
		RequestedAt: requestedAt,
		CompletedAt: completedAt,
	}

	if err != nil {
		msg := err.Error()
		entry.ErrorMessage = &msg
		c.record(ctx, entry)
		return "", &assistant.UpstreamError{Service: "gemini", Err: err}
	}

	text := strings.TrimSpace(resp.Text())
	entry.OutputResponse = text
	entry.ModelVersion = resp.ModelVersion
	if usage := resp.UsageMetadata; usage != nil {
		entry.InputTokens = int64(usage.PromptTokenCount)
		entry.OutputTokens = int64(usage.CandidatesTokenCount)
		entry.TotalTokens = int64(usage.TotalTokenCount)
	}
	c.record(ctx, entry)

	if text == "" {
		return "", assistant.ErrEmptyResult
	}
	return text, nil
}

// buildContents 는 과거 턴을 user/model 교대로 넣고 마지막에 새 입력을 붙인다.
func buildContents(prompt assistant.Prompt) []*genai.Content {
	contents := make([]*genai.Content, 0, len(prompt.History)*2+1)
	for _, turn := range prompt.History {
		if strings.TrimSpace(turn.User) == "" || strings.TrimSpace(turn.Bot) == "" {
			continue
		}
		contents = append(contents,
			genai.NewContentFromText(turn.User, genai.RoleUser),
			genai.NewContentFromText(turn.Bot, genai.RoleModel),
		)
	}
	return append(contents, genai.NewContentFromText(prompt.Input, genai.RoleUser))
}

func renderPrompt(prompt assistant.Prompt) string {
	var b strings.Builder
	b.WriteString(prompt.System)
	for _, turn := range prompt.History {
		fmt.Fprintf(&b, "\n\nuser: %s\nmodel: %s", turn.User, turn.Bot)
	}
	fmt.Fprintf(&b, "\n\nuser: %s", prompt.Input)
	return b.String()
}

// record 실패는 응답에 영향을 주지 않는다.
func (c *Client) record(ctx context.Context, entry models.AILog) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Insert(context.WithoutCancel(ctx), entry); err != nil {
		logger.ErrorWithFields("failed to record ai log", logger.Fields{
			"model": entry.ModelName,
			"error": err.Error(),
		})
	}
}
