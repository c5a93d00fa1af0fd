package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
// Message 는 화면에 그대로 보여줄 문구가 있을 때만 채운다.
type ErrorResponseDTO struct {
	Error   string `json:"error" example:"user_not_found"`
	Message string `json:"message,omitempty" example:"Oops, user does not exist."`
}

// MessageResponseDTO는 단순 메시지 응답 형식을 통일하기 위한 DTO이다.
type MessageResponseDTO struct {
	Message string `json:"message" example:"Text has been spoken."`
}
