package assistant

import (
	"context"
	"fmt"
	"strings"
)

const searchNotFoundReply = "I couldn't find any relevant information on the web."

func defaultCannedReplies() map[string]string {
	return map[string]string{
		"hi":                           "Hi, how can I assist you?",
		"hello":                        "Hello, how can I assist you?",
		"tell me a joke":               "Why don’t skeletons fight each other? They don’t have the guts!",
		"how are you":                  "I’m just a bunch of code, but I’m feeling fantastic! Thanks for asking.",
		"who are you":                  "I’m Choo Choo, your friendly personal assistant!",
		"what is your name":            "My name is Choo Choo. I'm here to assist you!",
		"what can you do":              "I can check the weather, fetch news, tell you the date and time, tell jokes, and much more. Just ask!",
		"what is ai":                   "Artificial Intelligence is the simulation of human intelligence in machines designed to think and act like humans.",
		"tell me about yourself":       "I’m Choo Choo, your AI-powered assistant created to make your life easier and more fun!",
		"do you like me":               "Of course, I do! You’re my favorite person to chat with.",
		"tell me a fact":               "Did you know? Honey never spoils. Archaeologists have found pots of honey in ancient Egyptian tombs that are over 3,000 years old and still perfectly edible!",
		"calculate":                    "Sure! Tell me what you’d like me to calculate.",
		"how old are you":              "I’m timeless! But I’ve been here since you started me up.",
		"can you dance":                "I can’t dance, but I can definitely play some great music for you to dance to!",
		"why are you called choo choo": "Because I’m fast, reliable, and always on track to help you!",
	}
}

func (r *Responder) runCanned(_ context.Context, req request) (string, error) {
	if reply, ok := r.canned[req.text]; ok {
		return reply, nil
	}
	return "", ErrEmptyResult
}

// runSearch 는 마지막 단계다. 검색 제공자가 설정돼 있으면 실패하더라도 "찾지 못했다" 문구로 끝낸다.
func (r *Responder) runSearch(ctx context.Context, req request) (string, error) {
	if r.search == nil {
		return "", ErrNotConfigured
	}
	results, err := r.search.Search(ctx, req.raw, r.searchLimit)
	if err != nil {
		return searchNotFoundReply, nil
	}
	if out := formatSearchResults(results, r.searchLimit); out != "" {
		return out, nil
	}
	return searchNotFoundReply, nil
}

// formatSearchResults 는 스니펫이 있는 결과만 최대 limit 개 나열한다.
func formatSearchResults(results []SearchResult, limit int) string {
	var parts []string
	for _, res := range results {
		snippet := strings.TrimSpace(res.Snippet)
		if snippet == "" {
			continue
		}
		title := strings.TrimSpace(res.Title)
		if title == "" {
			title = "No title available"
		}
		parts = append(parts, fmt.Sprintf("Title: %s\nSnippet: %s", title, snippet))
		if limit > 0 && len(parts) >= limit {
			break
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "Here's what I found:\n\n" + strings.Join(parts, "\n\n")
}
