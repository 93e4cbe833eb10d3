package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AmarTuli/Fred-AI/internal/middleware"
	"github.com/AmarTuli/Fred-AI/internal/plugins/auth"
	"github.com/AmarTuli/Fred-AI/internal/plugins/chat"
	"github.com/AmarTuli/Fred-AI/internal/plugins/settings"
	"github.com/AmarTuli/Fred-AI/internal/templates/layouts"
)

// RegisterRoutes wires every plugin and registers its routes. This is the
// single place where routes are aggregated.
//
// A misconfigured language-model provider is not fatal: chat logs a warning
// and answers from the canned phrase set.
func (a *App) RegisterRoutes(ctx context.Context) error {
	e := a.Echo

	// --- Public Routes (no auth required) ---

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
			"bot":    "Fred AI",
		})
	})

	// --- auth plugin ---
	userRepo := auth.NewUserRepository(a.DB)
	authService := auth.NewAuthService(userRepo, a.Redis, a.Config.Auth.SessionTTL)
	auth.RegisterRoutes(e, auth.NewHandler(authService, a.Config.Auth.SessionTTL), authService)

	middleware.LayoutInjector = injectLayout

	// --- settings plugin ---
	settingsService, err := settings.NewSettingsService(settings.NewProfileRepository(a.DB), a.Config.Auth.SecretKey)
	if err != nil {
		return fmt.Errorf("creating settings service: %w", err)
	}
	settings.RegisterRoutes(e, settings.NewHandler(settingsService, authService), authService)

	// --- chat plugin ---
	provider, err := chat.NewProvider(ctx, a.Config.AI)
	if err != nil {
		slog.Warn("language model unavailable, chat will use canned replies",
			slog.Any("error", err),
		)
		provider = chat.NewUnavailableProvider()
	} else if !a.Config.AI.Enabled() {
		slog.Warn("no language model configured, chat will use canned replies",
			slog.String("required", "AI_API_KEY or ARK_API_KEY, and AI_MODEL"),
		)
	}
	chatService := chat.NewChatService(provider, chat.WithTimeout(a.Config.AI.Timeout))
	chat.RegisterRoutes(e, chat.NewHandler(chatService), authService)

	return nil
}

// injectLayout copies the session user and request metadata into the
// context read by the layout.
func injectLayout(c echo.Context, ctx context.Context) context.Context {
	if session := auth.GetSession(c); session != nil {
		ctx = layouts.SetIsAuthenticated(ctx, true)
		ctx = layouts.SetUserID(ctx, session.UserID)
		ctx = layouts.SetUsername(ctx, session.Username)
		ctx = layouts.SetDisplayName(ctx, session.DisplayName)
		ctx = layouts.SetAvatar(ctx, session.Avatar)
		ctx = layouts.SetTheme(ctx, session.Theme)
	}
	ctx = layouts.SetCSRFToken(ctx, middleware.GetCSRFToken(c))
	ctx = layouts.SetActivePath(ctx, c.Path())
	ctx = layouts.SetRequestID(ctx, middleware.GetRequestID(c))
	return ctx
}
