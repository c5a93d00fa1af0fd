package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"choo-choo/cmd/api/dto"
	"choo-choo/cmd/api/services"
)

// GetUserProfileHandler godoc
// @Summary      현재 로그인한 사용자 프로필 조회
// @Tags         users
// @Security     SessionCookie
// @Produce      json
// @Success      200  {object}  dto.UserProfileDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /api/me [get]
func GetUserProfileHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		user, svcErr := authSvc.Profile(c.Request.Context(), userID)
		if svcErr != nil {
			writeServiceError(c, svcErr)
			return
		}

		c.JSON(http.StatusOK, dto.UserProfileDTO{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
		})
	}
}
