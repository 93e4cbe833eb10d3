package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AmarTuli/Fred-AI/internal/apperror"
	"github.com/AmarTuli/Fred-AI/internal/middleware"
)

// sessionCookieName is the HTTP cookie used to store the session token.
const sessionCookieName = "fredai_session"

// Handler handles HTTP requests for authentication (login, register, logout).
// Handlers are thin: they bind the request, call the service, and render the
// response. No business logic lives here.
type Handler struct {
	service    AuthService
	sessionTTL time.Duration
}

// NewHandler creates a new auth handler. sessionTTL sets the cookie Max-Age
// so the browser drops the cookie when Redis drops the session.
func NewHandler(service AuthService, sessionTTL time.Duration) *Handler {
	return &Handler{service: service, sessionTTL: sessionTTL}
}

// LoginForm renders the login page (GET /login).
func (h *Handler) LoginForm(c echo.Context) error {
	if GetSession(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var successMsg string
	if c.QueryParam("registered") == "1" {
		successMsg = "Account created. You can now log in."
	}

	return middleware.Render(c, http.StatusOK, LoginPage("", "", successMsg))
}

// Login processes the login form submission (POST /login).
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	token, _, err := h.service.Login(c.Request().Context(), LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if status, msg, ok := flashable(err); ok {
			return middleware.Render(c, status, LoginPage(req.Username, msg, ""))
		}
		return err
	}

	setSessionCookie(c, token, h.sessionTTL)
	return c.Redirect(http.StatusSeeOther, "/")
}

// RegisterForm renders the registration page (GET /register).
func (h *Handler) RegisterForm(c echo.Context) error {
	if GetSession(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return middleware.Render(c, http.StatusOK, RegisterPage(nil, ""))
}

// Register processes the registration form submission (POST /register).
// Success sends the user to the login page; the account is not signed in
// automatically.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	_, err := h.service.Register(c.Request().Context(), RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		Confirm:     req.Confirm,
		DisplayName: req.DisplayName,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Birthday:    req.Birthday,
		Email:       req.Email,
		Phone:       req.Phone,
		Avatar:      req.Avatar,
	})
	if err != nil {
		if status, msg, ok := flashable(err); ok {
			return middleware.Render(c, status, RegisterPage(&req, msg))
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

// Logout destroys the session and clears the cookie (GET or POST /logout).
func (h *Handler) Logout(c echo.Context) error {
	if token := getSessionToken(c); token != "" {
		// The cookie is cleared regardless.
		_ = h.service.DestroySession(c.Request().Context(), token)
	}

	clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// flashable reports whether err should be shown to the user as a form
// message. Client errors are; anything 5xx goes to the error handler.
func flashable(err error) (int, string, bool) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
		return appErr.Code, appErr.Message, true
	}
	return 0, "", false
}

// --- Cookie helpers ---

// getSessionToken reads the session token from the cookie.
func getSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie on the response. The cookie is
// HttpOnly (JS can't read it), Secure if behind TLS, and SameSite=Lax.
func setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	req := c.Request()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// clearSessionCookie removes the session cookie by setting MaxAge to -1.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
