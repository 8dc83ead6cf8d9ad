package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ryumonX/uangku/internal/core/ports/services"
	"github.com/ryumonX/uangku/internal/dto"
	"github.com/ryumonX/uangku/internal/platform/config"
)

// UserHandler serves the authenticated user's own account.
type UserHandler struct {
	userService portssvc.UserSvcFacade
	cfg         *config.Config
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us portssvc.UserSvcFacade, cfg *config.Config) *UserHandler {
	return &UserHandler{userService: us, cfg: cfg}
}

// RegisterUserRoutes sets up the account routes on the authenticated group.
func RegisterUserRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, cfg *config.Config) {
	h := NewUserHandler(us, cfg)

	users := rg.Group("/users")
	{
		users.GET("/me", h.Me)
		users.DELETE("/me", h.Deactivate)
	}
}

// Me godoc
// @Summary Current user profile
// @Description Returns the authenticated user's profile.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Deactivate godoc
// @Summary Deactivate account
// @Description Soft-deletes the authenticated user's account and revokes its refresh token.
// @Tags users
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [delete]
func (h *UserHandler) Deactivate(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	// Drop the refresh cookie as well; the stored token is already revoked.
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)

	c.Status(http.StatusNoContent)
}
