package auth

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all auth-related routes on the given Echo instance.
// Auth routes are public; OptionalAuth only lets the pages notice an
// existing session. RequireAuth/RequireAuthAPI are exported separately for
// other plugins to use on their routes.
func RegisterRoutes(e *echo.Echo, h *Handler, service AuthService) {
	optional := OptionalAuth(service)

	e.GET("/login", h.LoginForm, optional)
	e.POST("/login", h.Login)
	e.GET("/register", h.RegisterForm, optional)
	e.POST("/register", h.Register)

	e.GET("/logout", h.Logout)
	e.POST("/logout", h.Logout)
}
