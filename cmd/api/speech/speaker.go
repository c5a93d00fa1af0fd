package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrUnavailable = errors.New("text-to-speech is not available")

// Speaker 는 text 를 끝까지 읽거나 ctx 가 취소될 때까지 블록한다.
type Speaker interface {
	Speak(ctx context.Context, text, voice string) error
}

// CommandSpeaker 는 espeak / say 같은 로컬 TTS 명령을 실행한다.
type CommandSpeaker struct {
	path string
	name string
	rate int
}

// NewCommandSpeaker 는 PATH 에서 command 를 찾는다. 없으면 ErrUnavailable.
func NewCommandSpeaker(command string, rate int) (*CommandSpeaker, error) {
	if command == "" {
		return nil, ErrUnavailable
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &CommandSpeaker{path: path, name: filepath.Base(command), rate: rate}, nil
}

func (s *CommandSpeaker) Speak(ctx context.Context, text, voice string) error {
	// 본문은 argv 가 아니라 stdin 으로 넘긴다. "-" 로 시작하는 입력이 옵션으로 읽히면 안 된다.
	cmd := exec.CommandContext(ctx, s.path, s.args(voice)...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s failed: %w (%s)", s.name, err, truncate(string(out), 200))
	}
	return nil
}

func (s *CommandSpeaker) args(voice string) []string {
	rate := strconv.Itoa(s.rate)
	switch s.name {
	case "say":
		v := "Samantha"
		if voice == "male" {
			v = "Daniel"
		}
		return []string{"-v", v, "-r", rate, "-f", "-"}
	default:
		// espeak / espeak-ng
		v := "en+f3"
		if voice == "male" {
			v = "en+m3"
		}
		return []string{"-v", v, "-s", rate, "--stdin"}
	}
}

func truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
