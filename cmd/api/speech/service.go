package speech

import (
	"errors"
	"sync"
)

var ErrEmptyText = errors.New("text is empty")

// Service 는 세션 키별 Player 를 관리한다. speaker 가 nil 이면 TTS 가 꺼진 상태다.
type Service struct {
	speaker Speaker

	mu      sync.Mutex
	players map[string]*Player
}

func NewService(speaker Speaker) *Service {
	return &Service{speaker: speaker, players: map[string]*Player{}}
}

func (s *Service) Enabled() bool {
	return s != nil && s.speaker != nil
}

// Speak 는 key 의 Player 로 text 를 재생한다. 같은 key 의 이전 재생은 취소된다.
func (s *Service) Speak(key, text, voice string) (string, error) {
	if !s.Enabled() {
		return "", ErrUnavailable
	}
	if text == "" {
		return "", ErrEmptyText
	}
	if voice != "male" {
		voice = "female"
	}
	return s.player(key).Speak(text, voice), nil
}

// Stop 은 key 의 재생을 멈춘다.
func (s *Service) Stop(key string) {
	if !s.Enabled() {
		return
	}
	s.mu.Lock()
	p, ok := s.players[key]
	s.mu.Unlock()
	if ok {
		p.Stop()
	}
}

// Forget 은 key 의 재생을 멈추고 핸들을 버린다. 세션이 삭제될 때 호출한다.
func (s *Service) Forget(key string) {
	if !s.Enabled() {
		return
	}
	s.mu.Lock()
	p, ok := s.players[key]
	delete(s.players, key)
	s.mu.Unlock()
	if ok {
		p.Stop()
	}
}

func (s *Service) player(key string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[key]
	if !ok {
		p = NewPlayer(s.speaker)
		s.players[key] = p
	}
	return p
}
