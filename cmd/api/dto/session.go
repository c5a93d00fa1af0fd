package dto

import "time"

// ChatMessageDTO 는 (사용자, 봇) 한 쌍의 대화다.
type ChatMessageDTO struct {
	User      string    `json:"user" example:"hi"`
	Bot       string    `json:"bot" example:"Hi, How Can I assist you.?"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatSessionDTO struct {
	ID        string           `json:"id" example:"665f1c2e9b1d4a0001a1b2c3"`
	Title     string           `json:"title" example:"New Chat"`
	Messages  []ChatMessageDTO `json:"messages,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ListSessionsResponse 는 세션 목록 페이지다. 목록에는 메시지가 포함되지 않는다.
type ListSessionsResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []ChatSessionDTO `json:"items"`
}
