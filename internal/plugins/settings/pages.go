package settings

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/AmarTuli/Fred-AI/internal/templates/layouts"
)

// SettingsPage renders the profile and WiFi forms. Both submit via
// /static/js/settings.js, which posts JSON with the CSRF header and shows
// the returned message in the form's status line.
func SettingsPage(p *Profile) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<h1>Settings</h1><div class="settings-grid">`)

		// Profile
		h.Raw(`<section class="card"><h2>Profile</h2>`)
		h.Raw(`<form id="profile-form" class="form js-settings-form" action="/update_profile">`)
		h.Rawf(`<p class="muted">Signed in as <strong>%s</strong></p>`, p.Username)
		h.Rawf(`<label>Display name<input type="text" name="display_name" value="%s" maxlength="100"></label>`, p.DisplayName)
		h.Raw(`<div class="form-row">`)
		h.Rawf(`<label>First name<input type="text" name="first_name" value="%s" maxlength="100"></label>`, p.FirstName)
		h.Rawf(`<label>Last name<input type="text" name="last_name" value="%s" maxlength="100"></label>`, p.LastName)
		h.Raw(`</div>`)
		h.Rawf(`<label>Birthday<input type="date" name="birthday" value="%s"></label>`, p.BirthdayString())
		h.Rawf(`<label>Email<input type="email" name="email" value="%s" maxlength="255"></label>`, p.Email)
		h.Rawf(`<label>Phone<input type="tel" name="phone" value="%s" maxlength="32"></label>`, p.Phone)
		h.Rawf(`<label>Avatar<input type="text" name="avatar" value="%s" maxlength="8" placeholder="🙂"></label>`, p.Avatar)

		h.Raw(`<label>Theme<select name="theme">`)
		for _, theme := range Themes {
			selected := ""
			if theme == p.Theme {
				selected = " selected"
			}
			h.Rawf(`<option value="%s"`+selected+`>%s</option>`, theme, titleCase(theme))
		}
		h.Raw(`</select></label>`)
		h.Raw(`<button type="submit" class="btn btn-primary">Save profile</button>`)
		h.Raw(`<p class="form-status" aria-live="polite"></p></form></section>`)

		// WiFi
		h.Raw(`<section class="card"><h2>WiFi</h2>`)
		h.Raw(`<form id="wifi-form" class="form js-settings-form" action="/update_wifi">`)
		h.Rawf(`<label>Network name (SSID)<input type="text" name="wifi_ssid" value="%s" maxlength="32"></label>`, p.WiFiSSID)
		placeholder := "Not set"
		if p.HasWiFiPassword {
			placeholder = "Saved. Leave blank to keep it"
		}
		h.Rawf(`<label>Password<input type="password" name="wifi_password" maxlength="63" autocomplete="new-password" placeholder="%s"></label>`, placeholder)
		h.Raw(`<button type="submit" class="btn btn-primary">Save WiFi</button>`)
		h.Raw(`<p class="form-status" aria-live="polite"></p></form></section>`)

		h.Raw(`</div><script src="/static/js/settings.js" defer></script>`)
		return h.Err()
	})
	return layouts.Base("Settings", body)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
