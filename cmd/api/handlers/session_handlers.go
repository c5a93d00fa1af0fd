package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"choo-choo/cmd/api/dto"
	"choo-choo/cmd/api/services"
)

// ListSessionsHandler godoc
// @Summary      대화 세션 목록 조회
// @Description  사용자의 대화 세션 목록을 최근 것부터 페이지네이션하여 조회합니다. 메시지는 포함하지 않습니다.
// @Tags         chats
// @Security     SessionCookie
// @Produce      json
// @Param        page      query     int     false  "페이지 번호 (기본 1)"
// @Param        page_size query     int     false  "페이지 크기 (기본 20, 최대 100)"
// @Success      200       {object}  dto.ListSessionsResponse
// @Failure      401       {object}  dto.ErrorResponseDTO
// @Router       /api/chats [get]
func ListSessionsHandler(sessionSvc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

		resp, svcErr := sessionSvc.List(c.Request.Context(), userID, page, pageSize)
		if svcErr != nil {
			writeServiceError(c, svcErr)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// GetSessionHandler godoc
// @Summary      대화 세션 상세 조회
// @Description  특정 대화 세션의 상세 정보(메시지 목록 포함)를 조회합니다.
// @Tags         chats
// @Security     SessionCookie
// @Produce      json
// @Param        id   path      string  true  "세션 ID"
// @Success      200  {object}  dto.ChatSessionDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/chats/{id} [get]
func GetSessionHandler(sessionSvc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		session, svcErr := sessionSvc.Get(c.Request.Context(), userID, c.Param("id"))
		if svcErr != nil {
			writeServiceError(c, svcErr)
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

// DeleteSessionHandler godoc
// @Summary      대화 세션 삭제
// @Description  특정 대화 세션을 삭제하고 해당 세션의 음성 재생을 멈춥니다.
// @Tags         chats
// @Security     SessionCookie
// @Produce      json
// @Param        id   path      string  true  "세션 ID"
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/chats/{id} [delete]
func DeleteSessionHandler(sessionSvc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		if svcErr := sessionSvc.Delete(c.Request.Context(), userID, c.Param("id")); svcErr != nil {
			writeServiceError(c, svcErr)
			return
		}

		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "deleted"})
	}
}

// CreateSessionHandler godoc
// @Summary      대화 세션 생성
// @Description  빈 대화 세션을 생성합니다. (UI에서 '+ 새 채팅' 버튼 클릭 시)
// @Tags         chats
// @Security     SessionCookie
// @Produce      json
// @Success      200  {object}  dto.ChatSessionDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /api/chats [post]
func CreateSessionHandler(sessionSvc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		session, svcErr := sessionSvc.Create(c.Request.Context(), userID)
		if svcErr != nil {
			writeServiceError(c, svcErr)
			return
		}

		c.JSON(http.StatusOK, session)
	}
}
