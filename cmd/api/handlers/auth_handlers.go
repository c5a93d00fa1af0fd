package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"choo-choo/cmd/api/auth"
	"choo-choo/cmd/api/dto"
	"choo-choo/cmd/api/services"
	"choo-choo/internal/logger"
)

// 로그인 성공 후 프론트가 이동할 채팅 페이지.
const chatPagePath = "/index"

// SignupHandler godoc
// @Summary      회원가입
// @Description  이름, 이메일, 비밀번호로 계정을 만든다. 비밀번호는 bcrypt 해시로만 저장된다.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SignupRequestDTO  true  "signup request"
// @Success      200   {object}  dto.MessageResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO  "필수 값 누락"
// @Failure      409   {object}  dto.ErrorResponseDTO  "이미 가입된 이메일"
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /signup [post]
func SignupHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SignupRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		user, svcErr := authSvc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
		if svcErr != nil {
			writeServiceError(c, svcErr)
			return
		}

		logger.InfoWithFields("user signed up", logger.Fields{"user_id": user.ID.Hex()})
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "Account Created successful"})
	}
}

// LoginHandler godoc
// @Summary      로그인
// @Description  자격 증명을 확인하고 세션 쿠키를 심은 뒤 새 채팅 세션을 연다.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequestDTO  true  "login request"
// @Success      200   {object}  dto.LoginResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO  "비밀번호 불일치"
// @Failure      404   {object}  dto.ErrorResponseDTO  "없는 사용자"
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /login [post]
func LoginHandler(authSvc *services.AuthService, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		result, svcErr := authSvc.Login(c.Request.Context(), req.Email, req.Password)
		if svcErr != nil {
			writeServiceError(c, svcErr)
			return
		}

		auth.SetSessionCookie(c, result.Token, authSvc.SessionTTLSeconds(), secureCookie)
		c.JSON(http.StatusOK, dto.LoginResponseDTO{
			RedirectURL: chatPagePath,
			SessionID:   result.SessionID,
		})
	}
}

// LogoutHandler godoc
// @Summary      로그아웃
// @Description  세션 쿠키를 지운다.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Router       /logout [post]
func LogoutHandler(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.ClearSessionCookie(c, secureCookie)
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "logged out"})
	}
}
