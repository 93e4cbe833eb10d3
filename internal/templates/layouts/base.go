package layouts

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HTML accumulates markup for a component and keeps the first write error,
// so render functions can emit a page without checking every write.
type HTML struct {
	w   io.Writer
	err error
}

// NewHTML wraps w for use inside a templ.ComponentFunc.
func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes trusted markup verbatim.
func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s with HTML escaping.
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Rawf formats trusted markup, escaping every argument.
func (h *HTML) Rawf(format string, args ...string) {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = templ.EscapeString(a)
	}
	h.Raw(fmt.Sprintf(format, escaped...))
}

// Component renders a nested component into the same writer.
func (h *HTML) Component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first error seen.
func (h *HTML) Err() error {
	return h.err
}

// CSRFField renders the hidden form input carrying the CSRF token.
func CSRFField(ctx context.Context, h *HTML) {
	h.Rawf(`<input type="hidden" name="csrf_token" value="%s">`, GetCSRFToken(ctx))
}

// Flash renders a dismissable alert. kind is "error" or "success".
func Flash(h *HTML, kind, message string) {
	if message == "" {
		return
	}
	h.Rawf(`<div class="flash flash-%s" role="alert">%s</div>`, kind, message)
}

// Base wraps body in the site shell: head, themed <body>, and the nav bar
// for signed-in users.
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Rawf(`<meta name="csrf-token" content="%s">`, GetCSRFToken(ctx))
		if title != "" {
			h.Rawf(`<title>%s · Fred AI</title>`, title)
		} else {
			h.Raw(`<title>Fred AI</title>`)
		}
		h.Raw(`<link rel="stylesheet" href="/static/css/app.css"></head>`)
		h.Rawf(`<body class="theme-%s">`, GetTheme(ctx))

		if IsAuthenticated(ctx) {
			renderNav(ctx, h)
		}

		h.Raw(`<main class="container">`)
		h.Component(ctx, body)
		h.Raw(`</main></body></html>`)
		return h.Err()
	})
}

func renderNav(ctx context.Context, h *HTML) {
	active := GetActivePath(ctx)
	link := func(href, label string) {
		class := "nav-link"
		if active == href {
			class += " active"
		}
		h.Rawf(`<a class="%s" href="%s">%s</a>`, class, href, label)
	}

	h.Raw(`<nav class="navbar"><span class="brand">🤖 Fred AI</span><div class="nav-links">`)
	link("/", "Chat")
	link("/settings", "Settings")
	h.Raw(`</div><div class="nav-user">`)
	if avatar := GetAvatar(ctx); avatar != "" {
		h.Rawf(`<span class="avatar">%s</span>`, avatar)
	}
	h.Rawf(`<span class="user-name">%s</span>`, GetDisplayName(ctx))
	h.Raw(`<form method="post" action="/logout" class="inline">`)
	CSRFField(ctx, h)
	h.Raw(`<button type="submit" class="btn-link">Log out</button></form></div></nav>`)
}
