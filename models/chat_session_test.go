package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromMessage(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "short message", in: "hello there", want: "hello there"},
		{name: "long message", in: "what is the weather like in chennai today", want: "what is the weather like"},
		{name: "extra spaces", in: "  tell   me  a   joke  ", want: "tell me a joke"},
		{name: "blank", in: "   ", want: DefaultSessionTitle},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TitleFromMessage(tc.in))
		})
	}
}

func TestRecentMessages(t *testing.T) {
	now := time.Now()
	s := &ChatSession{Messages: []Message{
		{User: "1", Bot: "a", Timestamp: now},
		{User: "2", Bot: "b", Timestamp: now},
		{User: "3", Bot: "c", Timestamp: now},
	}}

	got := s.RecentMessages(2)
	assert.Len(t, got, 2)
	assert.Equal(t, "2", got[0].User)
	assert.Equal(t, "3", got[1].User)

	assert.Len(t, s.RecentMessages(10), 3)
	assert.Nil(t, s.RecentMessages(0))

	var empty *ChatSession
	assert.Nil(t, empty.RecentMessages(3))
}
