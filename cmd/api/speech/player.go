package speech

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"choo-choo/internal/logger"
)

// Player 는 한 채팅 세션의 재생 핸들이다. 새 재생을 시작하기 전에 진행 중인 재생을
// 취소하고 끝날 때까지 기다리므로 동시에 재생되는 것은 항상 하나뿐이다.
type Player struct {
	speaker Speaker

	mu     sync.Mutex
	token  string
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPlayer(speaker Speaker) *Player {
	return &Player{speaker: speaker}
}

// Speak 는 별도 고루틴에서 재생을 시작하고 바로 재생 토큰을 돌려준다.
func (p *Player) Speak(text, voice string) string {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	prev := p.done
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	token := uuid.NewString()
	p.token, p.cancel, p.done = token, cancel, done
	p.mu.Unlock()

	go func() {
		defer close(done)
		defer p.release(token)
		if prev != nil {
			<-prev
		}
		if ctx.Err() != nil {
			return
		}
		if err := p.speaker.Speak(ctx, text, voice); err != nil && ctx.Err() == nil {
			logger.ErrorWithFields("speech playback failed", logger.Fields{
				"token": token,
				"error": err.Error(),
			})
		}
	}()
	return token
}

// Stop 은 진행 중인 재생을 취소한다.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

// Active 는 진행 중인 재생 토큰을 돌려준다. 없으면 빈 문자열.
func (p *Player) Active() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

// Wait 는 마지막으로 시작한 재생이 끝날 때까지 기다린다.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (p *Player) release(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token != token {
		return
	}
	p.cancel()
	p.token, p.cancel = "", nil
}
