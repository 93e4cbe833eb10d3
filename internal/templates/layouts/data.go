// data.go provides typed context helpers for passing layout data from
// handlers/middleware to templ components. Only simple types are stored, so
// this package never imports plugin types.
//
// Data flow: Handler/Middleware → Echo Context → LayoutInjector → Go Context → templ
package layouts

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey string

const (
	keyIsAuthenticated ctxKey = "layout_is_authenticated"
	keyUserID          ctxKey = "layout_user_id"
	keyUsername        ctxKey = "layout_username"
	keyDisplayName     ctxKey = "layout_display_name"
	keyAvatar          ctxKey = "layout_avatar"
	keyTheme           ctxKey = "layout_theme"
	keyCSRFToken       ctxKey = "layout_csrf_token"
	keyActivePath      ctxKey = "layout_active_path"
	keyRequestID       ctxKey = "layout_request_id"
)

// DefaultTheme is used for anonymous pages and users who never picked one.
const DefaultTheme = "light"

// --- Setters (called by the layout injector in app/routes.go) ---

// SetIsAuthenticated marks whether the current request has a valid session.
func SetIsAuthenticated(ctx context.Context, authed bool) context.Context {
	return context.WithValue(ctx, keyIsAuthenticated, authed)
}

// SetUserID stores the authenticated user's ID in context.
func SetUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, keyUserID, id)
}

// SetUsername stores the login name of the session user.
func SetUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, keyUsername, username)
}

// SetDisplayName stores the name shown in the header and chat greeting.
func SetDisplayName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyDisplayName, name)
}

// SetAvatar stores the user's avatar glyph.
func SetAvatar(ctx context.Context, avatar string) context.Context {
	return context.WithValue(ctx, keyAvatar, avatar)
}

// SetTheme stores the colour theme applied to <body>.
func SetTheme(ctx context.Context, theme string) context.Context {
	return context.WithValue(ctx, keyTheme, theme)
}

// SetCSRFToken stores the CSRF token for forms.
func SetCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, keyCSRFToken, token)
}

// SetActivePath stores the request path for nav highlighting.
func SetActivePath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, keyActivePath, path)
}

// SetRequestID stores the request id shown on error pages.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// --- Getters (called from templ components) ---

// IsAuthenticated returns true if the current request has a valid session.
func IsAuthenticated(ctx context.Context) bool {
	v, _ := ctx.Value(keyIsAuthenticated).(bool)
	return v
}

// GetUserID returns the session user's ID, or 0 when anonymous.
func GetUserID(ctx context.Context) int64 {
	v, _ := ctx.Value(keyUserID).(int64)
	return v
}

// GetUsername returns the session user's login name.
func GetUsername(ctx context.Context) string {
	v, _ := ctx.Value(keyUsername).(string)
	return v
}

// GetDisplayName returns the display name, falling back to the username.
func GetDisplayName(ctx context.Context) string {
	if v, _ := ctx.Value(keyDisplayName).(string); v != "" {
		return v
	}
	return GetUsername(ctx)
}

// GetAvatar returns the avatar glyph, or empty.
func GetAvatar(ctx context.Context) string {
	v, _ := ctx.Value(keyAvatar).(string)
	return v
}

// GetTheme returns the theme name, defaulting to DefaultTheme.
func GetTheme(ctx context.Context) string {
	if v, _ := ctx.Value(keyTheme).(string); v != "" {
		return v
	}
	return DefaultTheme
}

// GetCSRFToken returns the CSRF token for embedding in forms.
func GetCSRFToken(ctx context.Context) string {
	v, _ := ctx.Value(keyCSRFToken).(string)
	return v
}

// GetActivePath returns the current request path.
func GetActivePath(ctx context.Context) string {
	v, _ := ctx.Value(keyActivePath).(string)
	return v
}

// GetRequestID returns the request id, or empty.
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(keyRequestID).(string)
	return v
}
