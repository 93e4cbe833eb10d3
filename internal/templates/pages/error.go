// Package pages holds the site-wide pages that don't belong to a plugin.
package pages

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/AmarTuli/Fred-AI/internal/templates/layouts"
)

// ErrorPage renders a full error page for browser requests.
func ErrorPage(code int, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<section class="card error-page">`)
		h.Rawf(`<h1>%s</h1><p class="error-status">%s</p>`, strconv.Itoa(code), http.StatusText(code))
		h.Rawf(`<p>%s</p>`, message)
		if id := layouts.GetRequestID(ctx); id != "" {
			h.Rawf(`<p class="muted">Request ID: <code>%s</code></p>`, id)
		}
		h.Raw(`<a class="btn" href="/">Back to chat</a></section>`)
		return h.Err()
	})
	return layouts.Base(http.StatusText(code), body)
}
