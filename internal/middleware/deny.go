package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// DenyPaths answers 403 for the exact paths given, whatever the method or
// session. Used to make requests for environment files fail loudly instead
// of falling through to the login redirect.
func DenyPaths(paths ...string) echo.MiddlewareFunc {
	denied := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		denied[strings.TrimSuffix(p, "/")] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := strings.TrimSuffix(c.Request().URL.Path, "/")
			if _, ok := denied[path]; ok {
				slog.Warn("blocked request for protected path",
					slog.String("path", c.Request().URL.Path),
					slog.String("remote_ip", c.RealIP()),
				)
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
			}
			return next(c)
		}
	}
}
