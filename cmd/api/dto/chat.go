package dto

// TypedInputRequestDTO 는 채팅 입력 한 건이다. session_id 가 없으면 새 세션을 만든다.
type TypedInputRequestDTO struct {
	Text      string `json:"text" binding:"required" example:"what's the weather in Paris?"`
	SessionID string `json:"session_id,omitempty" example:"665f1c2e9b1d4a0001a1b2c3"`
}

type TypedInputResponseDTO struct {
	Text      string `json:"text" example:"what's the weather in Paris?"`
	Response  string `json:"response" example:"🌤 Weather Report for Paris, FR: ..."`
	SessionID string `json:"session_id,omitempty" example:"665f1c2e9b1d4a0001a1b2c3"`
	Intent    string `json:"intent" example:"weather"`
}

type TextToSpeechRequestDTO struct {
	Text      string `json:"text" binding:"required" example:"Hello there"`
	VoiceType string `json:"voice_type,omitempty" example:"female"`
	SessionID string `json:"session_id,omitempty" example:"665f1c2e9b1d4a0001a1b2c3"`
}
