package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"choo-choo/cmd/api/auth"
	"choo-choo/cmd/api/services"
	"choo-choo/cmd/api/trace"
	"choo-choo/internal/logger"
)

// RequireSession 은 세션 쿠키(또는 Bearer 헤더)의 JWT 를 검증한다.
// API 용이므로 실패하면 401 JSON 으로 끝낸다.
func RequireSession(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, authSvc); err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}
		c.Next()
	}
}

// RequirePageSession 은 RequireSession 과 같지만 실패하면 로그인 페이지로 보낸다.
func RequirePageSession(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, authSvc); err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, authSvc *services.AuthService) error {
	token, err := auth.ExtractToken(c)
	if err != nil {
		return err
	}

	identity, err := authSvc.Authenticate(token)
	if err != nil {
		logger.DebugWithFields("session token rejected", logger.Fields{
			"path":       c.Request.URL.Path,
			"error":      err.Error(),
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
		})
		return err
	}

	// 컨텍스트에 사용자 정보 저장
	c.Set(auth.ContextKeyUserID, identity.UserID)
	c.Set(auth.ContextKeyUserName, identity.Name)
	return nil
}
