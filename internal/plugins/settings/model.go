// Package settings manages the signed-in user's profile and saved WiFi
// network. Profile text is sanitized and validated here; WiFi passwords are
// encrypted before they reach the database.
package settings

import (
	"time"

	"github.com/AmarTuli/Fred-AI/internal/sanitize"
)

// Themes lists the colour themes the UI ships stylesheets for.
var Themes = []string{"light", "dark", "ocean", "forest", "sunset"}

// DefaultTheme is applied when a user never picked one.
const DefaultTheme = "light"

// birthdayLayout is the accepted birthday format (HTML date input).
const birthdayLayout = sanitize.DateLayout

// Profile is the settings view of a users row.
type Profile struct {
	UserID      int64      `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Birthday    *time.Time `json:"birthday,omitempty"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Avatar      string     `json:"avatar"`
	Theme       string     `json:"theme"`
	WiFiSSID    string     `json:"wifi_ssid"`

	// HasWiFiPassword reports whether a readable password is stored. The
	// password itself is never returned.
	HasWiFiPassword bool `json:"has_wifi_password"`

	// WiFiPasswordEncrypted is the raw column value. Never exposed.
	WiFiPasswordEncrypted []byte `json:"-"`

	UpdatedAt time.Time `json:"updated_at"`
}

// BirthdayString formats the birthday for a date input, or "" if unset.
func (p *Profile) BirthdayString() string {
	if p.Birthday == nil {
		return ""
	}
	return p.Birthday.Format(birthdayLayout)
}

// --- Request DTOs (bound from HTTP requests; form or JSON) ---

// UpdateProfileRequest is the body of POST /update_profile.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" form:"display_name"`
	FirstName   string `json:"first_name" form:"first_name"`
	LastName    string `json:"last_name" form:"last_name"`
	Birthday    string `json:"birthday" form:"birthday"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	Avatar      string `json:"avatar" form:"avatar"`
	Theme       string `json:"theme" form:"theme"`
}

// UpdateWiFiRequest is the body of POST /update_wifi.
type UpdateWiFiRequest struct {
	SSID     string `json:"wifi_ssid" form:"wifi_ssid"`
	Password string `json:"wifi_password" form:"wifi_password"`
}

// --- Service Input DTOs ---

// ProfileInput replaces every editable profile field. Empty DisplayName
// falls back to the username; empty Theme to DefaultTheme.
type ProfileInput struct {
	DisplayName string
	FirstName   string
	LastName    string
	Birthday    string
	Email       string
	Phone       string
	Avatar      string
	Theme       string
}

// WiFiInput updates the saved network. An empty Password keeps the stored
// one; an empty SSID and Password together forget the network.
type WiFiInput struct {
	SSID     string
	Password string
}
