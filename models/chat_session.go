package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSessionTitle is the title of a session before its first message.
const DefaultSessionTitle = "New Chat"

const titleWordCount = 5

// Message is one (user, bot) exchange. Never modified after append.
type Message struct {
	User      string    `bson:"user" json:"user"`
	Bot       string    `bson:"bot" json:"bot"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// ChatSession holds the ordered exchanges of one user
// Collection: chat_sessions
type ChatSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title     string             `bson:"title" json:"title"`
	Messages  []Message          `bson:"messages" json:"messages"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// RecentMessages returns at most n trailing messages, oldest first.
func (s *ChatSession) RecentMessages(n int) []Message {
	if s == nil || n <= 0 || len(s.Messages) == 0 {
		return nil
	}
	if len(s.Messages) <= n {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

// TitleFromMessage derives a session title from the first five words of text.
func TitleFromMessage(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return DefaultSessionTitle
	}
	if len(words) > titleWordCount {
		words = words[:titleWordCount]
	}
	return strings.Join(words, " ")
}
