package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"choo-choo/cmd/api/dto"
	"choo-choo/cmd/api/services"
	"choo-choo/cmd/api/speech"
)

// TypedInputHandler godoc
// @Summary      채팅 입력
// @Description  입력 한 건을 의도별 핸들러로 보내 응답을 받는다. session_id 가 없으면 새 세션을 만들어 돌려준다.
// @Description  응답 저장에 실패해도 응답은 그대로 내려간다.
// @Tags         chat
// @Security     SessionCookie
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TypedInputRequestDTO  true  "typed input"
// @Success      200   {object}  dto.TypedInputResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      404   {object}  dto.ErrorResponseDTO  "세션 없음"
// @Router       /api/typed-input [post]
func TypedInputHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var req dto.TypedInputRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		result, svcErr := chatSvc.Send(c.Request.Context(), userID, req.SessionID, req.Text)
		if svcErr != nil {
			writeServiceError(c, svcErr)
			return
		}

		c.JSON(http.StatusOK, dto.TypedInputResponseDTO{
			Text:      result.Text,
			Response:  result.Response,
			SessionID: result.SessionID,
			Intent:    result.Intent,
		})
	}
}

// TextToSpeechHandler godoc
// @Summary      텍스트 읽기
// @Description  서버 PC 의 스피커로 텍스트를 읽는다. 재생은 비동기이며 같은 세션의 이전 재생은 취소된다.
// @Description  session_id 는 호출한 사용자의 세션이어야 한다.
// @Tags         chat
// @Security     SessionCookie
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TextToSpeechRequestDTO  true  "tts request"
// @Success      200   {object}  dto.MessageResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      404   {object}  dto.ErrorResponseDTO  "세션 없음"
// @Failure      503   {object}  dto.ErrorResponseDTO  "TTS 비활성"
// @Router       /api/text-to-speech [post]
func TextToSpeechHandler(speechSvc *speech.Service, sessionSvc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var req dto.TextToSpeechRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		key := userID
		if req.SessionID != "" {
			// 다른 사용자의 세션 재생을 끊지 못하도록 소유권을 먼저 확인한다.
			if _, svcErr := sessionSvc.Get(c.Request.Context(), userID, req.SessionID); svcErr != nil {
				writeServiceError(c, svcErr)
				return
			}
			key = req.SessionID
		}
		if _, err := speechSvc.Speak(key, req.Text, req.VoiceType); err != nil {
			switch {
			case errors.Is(err, speech.ErrUnavailable):
				c.JSON(http.StatusServiceUnavailable, dto.ErrorResponseDTO{Error: "speech_unavailable"})
			case errors.Is(err, speech.ErrEmptyText):
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "empty_text"})
			default:
				c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "speech_failed"})
			}
			return
		}

		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "Text has been spoken."})
	}
}
