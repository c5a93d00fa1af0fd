package services

import (
	"context"
	"errors"
	"net/http"

	"choo-choo/cmd/api/dto"
	"choo-choo/models"
	"choo-choo/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SessionForgetter 는 삭제된 세션의 재생 핸들을 정리한다. speech.Service 가 구현한다.
type SessionForgetter interface {
	Forget(key string)
}

type SessionService struct {
	sessions ChatSessionStore
	speech   SessionForgetter
}

func NewSessionService(sessions ChatSessionStore, speech SessionForgetter) *SessionService {
	return &SessionService{sessions: sessions, speech: speech}
}

func (s *SessionService) Create(ctx context.Context, userID string) (*dto.ChatSessionDTO, *ServiceError) {
	session, err := s.sessions.Create(ctx, userID)
	if err != nil {
		return nil, internalError("failed_to_create_session", err)
	}
	out := toSessionDTO(session, true)
	return &out, nil
}

// List 는 최근 세션부터 페이지 단위로 돌려준다. page 는 1부터 시작한다.
func (s *SessionService) List(ctx context.Context, userID string, page, pageSize int) (*dto.ListSessionsResponse, *ServiceError) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.sessions.ListByUser(ctx, userID, page, pageSize)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, internalError("failed_to_list_sessions", err)
	}

	resp := &dto.ListSessionsResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    make([]dto.ChatSessionDTO, 0, len(items)),
	}
	for i := range items {
		resp.Items = append(resp.Items, toSessionDTO(&items[i], false))
	}
	return resp, nil
}

func (s *SessionService) Get(ctx context.Context, userID, sessionID string) (*dto.ChatSessionDTO, *ServiceError) {
	session, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, ErrorCode: "session_not_found"}
		}
		return nil, internalError("failed_to_load_session", err)
	}
	out := toSessionDTO(session, true)
	return &out, nil
}

func (s *SessionService) Delete(ctx context.Context, userID, sessionID string) *ServiceError {
	if err := s.sessions.Delete(ctx, userID, sessionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &ServiceError{StatusCode: http.StatusNotFound, ErrorCode: "session_not_found"}
		}
		return internalError("failed_to_delete_session", err)
	}
	if s.speech != nil {
		s.speech.Forget(sessionID)
	}
	return nil
}

func toSessionDTO(session *models.ChatSession, withMessages bool) dto.ChatSessionDTO {
	out := dto.ChatSessionDTO{
		ID:        session.ID.Hex(),
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
	if withMessages {
		out.Messages = make([]dto.ChatMessageDTO, 0, len(session.Messages))
		for _, m := range session.Messages {
			out.Messages = append(out.Messages, dto.ChatMessageDTO{User: m.User, Bot: m.Bot, Timestamp: m.Timestamp})
		}
	}
	return out
}
