package settings

import (
	"github.com/labstack/echo/v4"

	"github.com/AmarTuli/Fred-AI/internal/middleware"
	"github.com/AmarTuli/Fred-AI/internal/plugins/auth"
)

// UpdatePaths are the script-called update endpoints. They carry their own
// CSRF check behind the session check, so the global CSRF middleware must
// skip them.
var UpdatePaths = []string{"/update_profile", "/update_wifi"}

// RegisterRoutes sets up the settings page and update endpoints. The page
// redirects anonymous browsers to /login; the update endpoints answer 401
// JSON because they are called from script.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	e.GET("/settings", h.Page, auth.RequireAuth(authService))

	api := auth.RequireAuthAPI(authService)
	csrf := middleware.CSRF()
	e.POST("/update_profile", h.UpdateProfile, api, csrf)
	e.POST("/update_wifi", h.UpdateWiFi, api, csrf)
}
