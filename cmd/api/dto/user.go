package dto

type SignupRequestDTO struct {
	Name     string `json:"name" example:"Ada"`
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"s3cret!"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"s3cret!"`
}

// LoginResponseDTO 의 session_id 는 로그인 때 새로 만든 채팅 세션이다.
type LoginResponseDTO struct {
	RedirectURL string `json:"redirect_url" example:"/index"`
	SessionID   string `json:"session_id,omitempty" example:"665f1c2e9b1d4a0001a1b2c3"`
}

type UserProfileDTO struct {
	ID    string `json:"id" example:"665f1c2e9b1d4a0001a1b2c3"`
	Name  string `json:"name" example:"Ada"`
	Email string `json:"email" example:"ada@example.com"`
}
