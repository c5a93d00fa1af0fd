// Package desktop 은 서버가 돌고 있는 PC 에서 URL 이나 애플리케이션을 연다.
// 개인 PC 에서 띄울 때만 켠다 (config desktop.enabled).
package desktop

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"choo-choo/internal/logger"
)

var (
	ErrEmptyTarget  = errors.New("empty open target")
	ErrUnsafeTarget = errors.New("open target contains shell metacharacters")
)

// cmd.exe 가 명령 구분자나 변수로 해석하는 문자들.
const cmdMetacharacters = "&|<>^%\"()"

// Opener 는 플랫폼 기본 opener(xdg-open, open, rundll32 / cmd /c start)로 대상을 연다.
// PATH 에 있는 실행 파일 이름이면 그 프로그램을 직접 띄운다.
type Opener struct {
	goos     string
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

func NewOpener() *Opener {
	return &Opener{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Open 은 프로세스를 띄우기만 하고 종료를 기다리지 않는다.
func (o *Opener) Open(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return ErrEmptyTarget
	}

	name, args, err := o.command(target)
	if err != nil {
		return err
	}
	logger.InfoWithFields("desktop open", logger.Fields{
		"target":  target,
		"command": name,
	})
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return nil
}

func (o *Opener) command(target string) (string, []string, error) {
	if !isURL(target) {
		fields := strings.Fields(target)
		if path, err := o.lookPath(fields[0]); err == nil {
			return path, fields[1:], nil
		}
	}

	switch o.goos {
	case "darwin":
		if !isURL(target) {
			return "open", []string{"-a", target}, nil
		}
		return "open", []string{target}, nil
	case "windows":
		// URL 은 cmd.exe 를 거치지 않는다.
		if isURL(target) {
			return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
		}
		if strings.ContainsAny(target, cmdMetacharacters) {
			return "", nil, ErrUnsafeTarget
		}
		return "cmd", []string{"/c", "start", "", target}, nil
	default:
		return "xdg-open", []string{target}, nil
	}
}

func isURL(target string) bool {
	u, err := url.Parse(target)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// 좀비 프로세스가 남지 않도록 회수만 한다.
	go func() { _ = cmd.Wait() }()
	return nil
}
