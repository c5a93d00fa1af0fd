package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"choo-choo/models"
	"choo-choo/repositories"
)

type memoryUsers struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	email map[string]string
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*models.User{}, email: map[string]string{}}
}

func (m *memoryUsers) Insert(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.email[u.Email]; ok {
		return repositories.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	stored := *u
	m.byID[u.ID.Hex()] = &stored
	m.email[u.Email] = u.ID.Hex()
	return nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.email[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	u := *m.byID[id]
	return &u, nil
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *u
	return &out, nil
}

// memorySessions 는 ChatSessionStore 의 인메모리 구현이다. failAppend 가 있으면 AppendMessage 가 실패한다.
type memorySessions struct {
	mu         sync.Mutex
	sessions   map[string]*models.ChatSession
	failCreate error
	failAppend error
	clock      time.Time
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]*models.ChatSession{}, clock: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (m *memorySessions) Create(_ context.Context, userID string) (*models.ChatSession, error) {
	if m.failCreate != nil {
		return nil, m.failCreate
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Minute)
	s := &models.ChatSession{
		ID:        primitive.NewObjectID(),
		UserID:    uid,
		Title:     models.DefaultSessionTitle,
		Messages:  []models.Message{},
		CreatedAt: m.clock,
		UpdatedAt: m.clock,
	}
	m.sessions[s.ID.Hex()] = s
	out := *s
	return &out, nil
}

func (m *memorySessions) owned(userID, sessionID string) (*models.ChatSession, error) {
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID.Hex() != userID {
		return nil, repositories.ErrNotFound
	}
	return s, nil
}

func (m *memorySessions) Get(_ context.Context, userID, sessionID string) (*models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}
	out := *s
	out.Messages = append([]models.Message(nil), s.Messages...)
	return &out, nil
}

func (m *memorySessions) ListByUser(_ context.Context, userID string, page, pageSize int) ([]models.ChatSession, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []models.ChatSession
	for _, s := range m.sessions {
		if s.UserID.Hex() == userID {
			out := *s
			out.Messages = nil
			all = append(all, out)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *memorySessions) AppendMessage(_ context.Context, userID, sessionID string, msg models.Message) error {
	if m.failAppend != nil {
		return m.failAppend
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.owned(userID, sessionID)
	if err != nil {
		return err
	}
	s.Messages = append(s.Messages, msg)
	return nil
}

func (m *memorySessions) SetTitleIfDefault(_ context.Context, userID, sessionID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.owned(userID, sessionID)
	if err != nil {
		return err
	}
	if s.Title == models.DefaultSessionTitle {
		s.Title = title
	}
	return nil
}

func (m *memorySessions) Delete(_ context.Context, userID, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.owned(userID, sessionID); err != nil {
		return err
	}
	delete(m.sessions, sessionID)
	return nil
}

var errStoreDown = errors.New("store unavailable")
