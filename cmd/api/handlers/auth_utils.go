package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"choo-choo/cmd/api/auth"
	"choo-choo/cmd/api/dto"
	"choo-choo/cmd/api/services"
	"choo-choo/cmd/api/trace"
	"choo-choo/internal/logger"
)

// requireUserID 는 인증 미들웨어가 넣어 둔 사용자 ID 를 꺼낸다.
// 없으면 401 을 내려주고 false 를 반환한다.
func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(auth.ContextKeyUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "unauthorized"})
		return "", false
	}
	return userID, true
}

// writeServiceError 는 ServiceError 를 공통 에러 응답으로 내려준다. 5xx 는 원인을 로그로 남긴다.
func writeServiceError(c *gin.Context, err *services.ServiceError) {
	if err.StatusCode >= http.StatusInternalServerError {
		fields := logger.Fields{
			"path":       c.Request.URL.Path,
			"error_code": err.ErrorCode,
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
		}
		if err.Cause != nil {
			fields["error"] = err.Cause.Error()
		}
		logger.ErrorWithFields("request failed", fields)
	}
	c.JSON(err.StatusCode, dto.ErrorResponseDTO{Error: err.ErrorCode, Message: err.Message})
}
