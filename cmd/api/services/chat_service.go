package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"choo-choo/cmd/api/assistant"
	"choo-choo/cmd/api/trace"
	"choo-choo/internal/logger"
	"choo-choo/models"
	"choo-choo/repositories"
)

// Responder 는 assistant.Responder 의 응답 메서드다.
type Responder interface {
	Respond(ctx context.Context, input string, history []assistant.Turn) assistant.Reply
}

// ChatSessionStore 는 repositories.ChatSessionRepository 가 구현한다.
type ChatSessionStore interface {
	Create(ctx context.Context, userID string) (*models.ChatSession, error)
	Get(ctx context.Context, userID, sessionID string) (*models.ChatSession, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.ChatSession, int64, error)
	AppendMessage(ctx context.Context, userID, sessionID string, msg models.Message) error
	SetTitleIfDefault(ctx context.Context, userID, sessionID, title string) error
	Delete(ctx context.Context, userID, sessionID string) error
}

// Announcer 는 응답을 소리 내어 읽는다. speech.Service 가 구현한다.
type Announcer interface {
	Enabled() bool
	Speak(key, text, voice string) (string, error)
}

type ChatService struct {
	responder    Responder
	sessions     ChatSessionStore
	announcer    Announcer
	historyTurns int
	now          func() time.Time
}

func NewChatService(responder Responder, sessions ChatSessionStore, announcer Announcer, historyTurns int) *ChatService {
	if historyTurns <= 0 {
		historyTurns = 4
	}
	return &ChatService{
		responder:    responder,
		sessions:     sessions,
		announcer:    announcer,
		historyTurns: historyTurns,
		now:          time.Now,
	}
}

type ChatResult struct {
	Text      string
	Response  string
	Intent    string
	SessionID string
}

// Send 는 입력 한 건을 처리한다. sessionID 가 비어 있으면 새 세션을 만든다.
// 저장 실패는 로그만 남기고 응답은 그대로 돌려준다.
func (s *ChatService) Send(ctx context.Context, userID, sessionID, text string) (*ChatResult, *ServiceError) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, ErrorCode: "empty_text"}
	}

	var history []assistant.Turn
	if sessionID == "" {
		session, err := s.sessions.Create(ctx, userID)
		if err != nil {
			s.logPersistenceError(ctx, "create", userID, "", err)
		} else {
			sessionID = session.ID.Hex()
		}
	} else {
		session, err := s.sessions.Get(ctx, userID, sessionID)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, &ServiceError{StatusCode: http.StatusNotFound, ErrorCode: "session_not_found"}
		case err != nil:
			s.logPersistenceError(ctx, "load", userID, sessionID, err)
		default:
			history = toTurns(session.RecentMessages(s.historyTurns))
		}
	}

	reply := s.responder.Respond(ctx, text, history)

	if sessionID != "" {
		if err := s.Record(ctx, userID, sessionID, text, reply.Text); err != nil {
			s.logPersistenceError(ctx, "record", userID, sessionID, err)
		}
	}
	s.announce(ctx, userID, sessionID, reply.Text)

	return &ChatResult{
		Text:      text,
		Response:  reply.Text,
		Intent:    reply.Intent,
		SessionID: sessionID,
	}, nil
}

// Record 는 대화 한 쌍을 세션 끝에 붙이고, 제목이 아직 기본값이면 입력의 앞 다섯 단어로 바꾼다.
func (s *ChatService) Record(ctx context.Context, userID, sessionID, input, response string) error {
	ctx = context.WithoutCancel(ctx)
	msg := models.Message{User: input, Bot: response, Timestamp: s.now()}
	if err := s.sessions.AppendMessage(ctx, userID, sessionID, msg); err != nil {
		return err
	}
	return s.sessions.SetTitleIfDefault(ctx, userID, sessionID, models.TitleFromMessage(input))
}

func (s *ChatService) announce(ctx context.Context, userID, sessionID, text string) {
	if s.announcer == nil || !s.announcer.Enabled() {
		return
	}
	key := sessionID
	if key == "" {
		key = userID
	}
	if _, err := s.announcer.Speak(key, text, "female"); err != nil {
		logger.DebugWithFields("speech skipped", logger.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
			"request_id": trace.RequestIDFromContext(ctx),
		})
	}
}

func (s *ChatService) logPersistenceError(ctx context.Context, op, userID, sessionID string, err error) {
	logger.ErrorWithFields("chat session persistence failed", logger.Fields{
		"op":         op,
		"user_id":    userID,
		"session_id": sessionID,
		"error":      err.Error(),
		"request_id": trace.RequestIDFromContext(ctx),
	})
}

func toTurns(messages []models.Message) []assistant.Turn {
	if len(messages) == 0 {
		return nil
	}
	turns := make([]assistant.Turn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, assistant.Turn{User: m.User, Bot: m.Bot})
	}
	return turns
}
