package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AmarTuli/Fred-AI/internal/apperror"
)

// Context keys for storing session data in Echo context. Other plugins
// use these keys (via the exported getter functions below) to access
// the authenticated user's information.
const (
	contextKeySession = "auth_session"
	contextKeyUserID  = "auth_user_id"
	contextKeyToken   = "auth_token"
)

// RequireAuth returns middleware for browser pages. A missing or expired
// session redirects to /login.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return requireSession(service, func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/login")
	})
}

// RequireAuthAPI returns middleware for JSON endpoints. A missing or expired
// session gets 401 {"error": "Not authenticated"}.
func RequireAuthAPI(service AuthService) echo.MiddlewareFunc {
	return requireSession(service, func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	})
}

// OptionalAuth loads the session when one exists but lets anonymous
// requests through. Used on the auth pages so the layout knows who is
// signed in.
func OptionalAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := getSessionToken(c); token != "" {
				if session, err := service.ValidateSession(c.Request().Context(), token); err == nil {
					setSessionContext(c, token, session)
				}
			}
			return next(c)
		}
	}
}

// requireSession validates the session cookie and injects session data into
// the request context, delegating to deny when there is no valid session.
// Store failures are returned as-is so an outage is a 500, not a logout.
func requireSession(service AuthService, deny echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := getSessionToken(c)
			if token == "" {
				return deny(c)
			}

			session, err := service.ValidateSession(c.Request().Context(), token)
			if apperror.Is(err, apperror.TypeUnauthenticated) {
				// Invalid or expired session -- clear the stale cookie.
				clearSessionCookie(c)
				return deny(c)
			}
			if err != nil {
				return err
			}

			setSessionContext(c, token, session)
			return next(c)
		}
	}
}

func setSessionContext(c echo.Context, token string, session *Session) {
	c.Set(contextKeySession, session)
	c.Set(contextKeyUserID, session.UserID)
	c.Set(contextKeyToken, token)
}

// --- Exported getters for other plugins ---

// GetSession retrieves the authenticated session from the Echo context.
// Returns nil if the request is not authenticated (middleware not applied).
func GetSession(c echo.Context) *Session {
	session, ok := c.Get(contextKeySession).(*Session)
	if !ok {
		return nil
	}
	return session
}

// GetUserID retrieves the authenticated user's ID from the Echo context.
// Returns 0 if the request is not authenticated.
func GetUserID(c echo.Context) int64 {
	id, _ := c.Get(contextKeyUserID).(int64)
	return id
}

// GetSessionToken returns the token of the validated session, or empty.
func GetSessionToken(c echo.Context) string {
	token, _ := c.Get(contextKeyToken).(string)
	return token
}
