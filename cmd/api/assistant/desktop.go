package assistant

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type desktopKind int

const (
	desktopYouTube desktopKind = iota + 1
	desktopSearch
	desktopOpen
)

type desktopAction struct {
	kind   desktopKind
	target string
}

var (
	youtubePattern = regexp.MustCompile(`^play (.+) on youtube$`)
	searchPattern  = regexp.MustCompile(`^search (?:for )?(.+)$`)
	openPCPattern  = regexp.MustCompile(`^open (.+?) (?:in|on) my (?:pc|computer|laptop)$`)
	openPattern    = regexp.MustCompile(`^open (.+)$`)
)

// parseDesktopAction 은 "play X on youtube", "search X", "open X in my pc", "open X" 형태를 인식한다.
func parseDesktopAction(text string) (desktopAction, bool) {
	text = trimPunctuation(text)
	if m := youtubePattern.FindStringSubmatch(text); m != nil {
		return desktopAction{kind: desktopYouTube, target: strings.TrimSpace(m[1])}, true
	}
	if m := searchPattern.FindStringSubmatch(text); m != nil {
		return desktopAction{kind: desktopSearch, target: strings.TrimSpace(m[1])}, true
	}
	if m := openPCPattern.FindStringSubmatch(text); m != nil {
		return desktopAction{kind: desktopOpen, target: strings.TrimSpace(m[1])}, true
	}
	if m := openPattern.FindStringSubmatch(text); m != nil {
		return desktopAction{kind: desktopOpen, target: strings.TrimSpace(m[1])}, true
	}
	return desktopAction{}, false
}

func (r *Responder) runDesktopAction(a desktopAction) string {
	switch a.kind {
	case desktopYouTube:
		u := "https://www.youtube.com/results?search_query=" + url.QueryEscape(a.target)
		return r.open(u, fmt.Sprintf("▶ Playing %s on YouTube.", a.target), a.target)
	case desktopSearch:
		u := "https://www.google.com/search?q=" + url.QueryEscape(a.target)
		return r.open(u, fmt.Sprintf("🔎 Searching the web for %s.", a.target), a.target)
	default:
		if target, ok := r.apps[a.target]; ok {
			return r.open(target, fmt.Sprintf("Opening %s.", a.target), a.target)
		}
		if looksLikeSite(a.target) {
			u := a.target
			if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
				u = "https://" + u
			}
			return r.open(u, fmt.Sprintf("Opening %s.", a.target), a.target)
		}
		return fmt.Sprintf("Sorry, I don't know how to open %s.", a.target)
	}
}

func (r *Responder) open(target, okReply, name string) string {
	if err := r.opener.Open(target); err != nil {
		return fmt.Sprintf("Could not open %s: %s", name, diagnostic(err))
	}
	return okReply
}

func looksLikeSite(s string) bool {
	return !strings.Contains(s, " ") && strings.Contains(s, ".")
}
