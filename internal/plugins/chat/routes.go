package chat

import (
	"github.com/labstack/echo/v4"

	"github.com/AmarTuli/Fred-AI/internal/plugins/auth"
)

// RegisterRoutes mounts the chat page and API. Both need a session.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	e.GET("/", h.Page, auth.RequireAuth(authService))
	e.POST("/api/chat", h.Chat, auth.RequireAuthAPI(authService))
}
