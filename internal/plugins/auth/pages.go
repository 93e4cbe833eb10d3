package auth

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/AmarTuli/Fred-AI/internal/templates/layouts"
)

// LoginPage renders the login form. username is echoed back after a failed
// attempt; the password never is.
func LoginPage(username, errMsg, successMsg string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<section class="card auth-card"><h1>🤖 Fred AI</h1><p class="muted">Log in to start chatting.</p>`)
		layouts.Flash(h, "error", errMsg)
		layouts.Flash(h, "success", successMsg)

		h.Raw(`<form method="post" action="/login" class="form">`)
		layouts.CSRFField(ctx, h)
		h.Rawf(`<label>Username<input type="text" name="username" value="%s" autocomplete="username" required autofocus></label>`, username)
		h.Raw(`<label>Password<input type="password" name="password" autocomplete="current-password" required></label>`)
		h.Raw(`<button type="submit" class="btn btn-primary">Log in</button></form>`)
		h.Raw(`<p class="muted">No account yet? <a href="/register">Register</a></p></section>`)
		return h.Err()
	})
	return layouts.Base("Log in", body)
}

// RegisterPage renders the registration form, refilled from req after a
// failed attempt. req may be nil.
func RegisterPage(req *RegisterRequest, errMsg string) templ.Component {
	if req == nil {
		req = &RegisterRequest{}
	}

	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<section class="card auth-card"><h1>Create your account</h1>`)
		layouts.Flash(h, "error", errMsg)

		h.Raw(`<form method="post" action="/register" class="form">`)
		layouts.CSRFField(ctx, h)
		h.Rawf(`<label>Username<input type="text" name="username" value="%s" minlength="3" maxlength="50" pattern="[A-Za-z0-9_.\-]+" autocomplete="username" required></label>`, req.Username)
		h.Rawf(`<label>Display name <span class="muted">(optional)</span><input type="text" name="display_name" value="%s" maxlength="100"></label>`, req.DisplayName)
		h.Raw(`<div class="form-row">`)
		h.Rawf(`<label>First name<input type="text" name="first_name" value="%s" maxlength="100"></label>`, req.FirstName)
		h.Rawf(`<label>Last name<input type="text" name="last_name" value="%s" maxlength="100"></label>`, req.LastName)
		h.Raw(`</div>`)
		h.Rawf(`<label>Email<input type="email" name="email" value="%s" autocomplete="email"></label>`, req.Email)
		h.Raw(`<div class="form-row">`)
		h.Rawf(`<label>Birthday<input type="date" name="birthday" value="%s"></label>`, req.Birthday)
		h.Rawf(`<label>Phone<input type="tel" name="phone" value="%s" maxlength="32" autocomplete="tel"></label>`, req.Phone)
		h.Rawf(`<label>Avatar<input type="text" name="avatar" value="%s" maxlength="8" placeholder="🙂"></label>`, req.Avatar)
		h.Raw(`</div>`)
		h.Raw(`<label>Password<input type="password" name="password" minlength="8" maxlength="128" autocomplete="new-password" required></label>`)
		h.Raw(`<label>Confirm password<input type="password" name="confirm_password" minlength="8" maxlength="128" autocomplete="new-password" required></label>`)
		h.Raw(`<button type="submit" class="btn btn-primary">Register</button></form>`)
		h.Raw(`<p class="muted">Already registered? <a href="/login">Log in</a></p></section>`)
		return h.Err()
	})
	return layouts.Base("Register", body)
}
