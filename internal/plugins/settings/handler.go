package settings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AmarTuli/Fred-AI/internal/apperror"
	"github.com/AmarTuli/Fred-AI/internal/middleware"
	"github.com/AmarTuli/Fred-AI/internal/plugins/auth"
)

// SessionRefresher updates the profile fields cached in a session.
// Satisfied by auth.AuthService.
type SessionRefresher interface {
	RefreshProfile(ctx context.Context, token string, profile auth.SessionProfile) error
}

// Handler handles the settings page and its two JSON update endpoints.
type Handler struct {
	service  SettingsService
	sessions SessionRefresher
}

// NewHandler creates a new settings handler.
func NewHandler(service SettingsService, sessions SessionRefresher) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// updateResponse is the JSON body returned by both update endpoints.
type updateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Page renders the settings page (GET /settings).
func (h *Handler) Page(c echo.Context) error {
	profile, err := h.service.GetProfile(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, SettingsPage(profile))
}

// UpdateProfile saves profile fields (POST /update_profile). Accepts a form
// or JSON body.
func (h *Handler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	ctx := c.Request().Context()
	profile, err := h.service.UpdateProfile(ctx, auth.GetUserID(c), ProfileInput{
		DisplayName: req.DisplayName,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Birthday:    req.Birthday,
		Email:       req.Email,
		Phone:       req.Phone,
		Avatar:      req.Avatar,
		Theme:       req.Theme,
	})
	if err != nil {
		return err
	}

	// The profile is saved either way; a stale header only lasts until the
	// next login.
	if err := h.sessions.RefreshProfile(ctx, auth.GetSessionToken(c), auth.SessionProfile{
		DisplayName: profile.DisplayName,
		Avatar:      profile.Avatar,
		Theme:       profile.Theme,
	}); err != nil {
		slog.Warn("failed to refresh session after profile update",
			slog.Int64("user_id", profile.UserID),
			slog.Any("error", err),
		)
	}

	return c.JSON(http.StatusOK, updateResponse{Success: true, Message: "Profile updated successfully"})
}

// UpdateWiFi saves the WiFi network (POST /update_wifi). Accepts a form or
// JSON body.
func (h *Handler) UpdateWiFi(c echo.Context) error {
	var req UpdateWiFiRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	err := h.service.UpdateWiFi(c.Request().Context(), auth.GetUserID(c), WiFiInput{
		SSID:     req.SSID,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateResponse{Success: true, Message: "WiFi settings updated successfully"})
}
