package handlers

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"choo-choo/cmd/api/assistant"
	"choo-choo/models"
	"choo-choo/repositories"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUsers() *memoryUsers { return &memoryUsers{users: map[string]*models.User{}} }

func (m *memoryUsers) Insert(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repositories.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	stored := *u
	m.users[u.ID.Hex()] = &stored
	return nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *u
	return &out, nil
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*models.ChatSession
	order    []string
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]*models.ChatSession{}}
}

func (m *memorySessions) Create(_ context.Context, userID string) (*models.ChatSession, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	s := &models.ChatSession{ID: primitive.NewObjectID(), UserID: uid, Title: models.DefaultSessionTitle, CreatedAt: now, UpdatedAt: now}
	m.sessions[s.ID.Hex()] = s
	m.order = append([]string{s.ID.Hex()}, m.order...)
	out := *s
	return &out, nil
}

func (m *memorySessions) Get(_ context.Context, userID, sessionID string) (*models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID.Hex() != userID {
		return nil, repositories.ErrNotFound
	}
	out := *s
	out.Messages = append([]models.Message(nil), s.Messages...)
	return &out, nil
}

func (m *memorySessions) ListByUser(_ context.Context, userID string, _, _ int) ([]models.ChatSession, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ChatSession
	for _, id := range m.order {
		if s, ok := m.sessions[id]; ok && s.UserID.Hex() == userID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memorySessions) AppendMessage(_ context.Context, userID, sessionID string, msg models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID.Hex() != userID {
		return repositories.ErrNotFound
	}
	s.Messages = append(s.Messages, msg)
	return nil
}

func (m *memorySessions) SetTitleIfDefault(_ context.Context, userID, sessionID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID.Hex() != userID {
		return repositories.ErrNotFound
	}
	if s.Title == models.DefaultSessionTitle {
		s.Title = title
	}
	return nil
}

func (m *memorySessions) Delete(_ context.Context, userID, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID.Hex() != userID {
		return repositories.ErrNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}

type stubWeather struct{ cities []string }

func (s *stubWeather) Current(_ context.Context, city string) (*assistant.Weather, error) {
	s.cities = append(s.cities, city)
	return &assistant.Weather{City: city, Country: "FR", Temperature: 21.5, FeelsLike: 20, Description: "clear sky", Humidity: 40}, nil
}

// recordingSpeaker 는 재생 요청을 기록만 하고 바로 끝난다.
type recordingSpeaker struct {
	mu    sync.Mutex
	texts []string
}

func (s *recordingSpeaker) Speak(_ context.Context, text, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	return nil
}

func (s *recordingSpeaker) spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}
