package chat

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/AmarTuli/Fred-AI/internal/templates/layouts"
)

// ChatPage renders the conversation window. Messages are exchanged with
// /api/chat by /static/js/chat.js and never stored.
func ChatPage() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<section class="chat card">`)
		h.Raw(`<header class="chat-header"><span class="bot-avatar">🤖</span><div><h1>Fred AI</h1><p class="muted">Your friendly assistant</p></div></header>`)

		h.Raw(`<div id="messages" class="messages" aria-live="polite">`)
		h.Raw(`<div class="message bot"><div class="bubble">`)
		h.Rawf(`Hi %s! I'm Fred AI. Ask me anything.`, layouts.GetDisplayName(ctx))
		h.Raw(`</div></div></div>`)

		h.Raw(`<form id="chat-form" class="chat-form" autocomplete="off">`)
		h.Rawf(`<span class="user-avatar">%s</span>`, userGlyph(ctx))
		h.Raw(`<input id="chat-input" type="text" name="message" placeholder="Type your message..." required autofocus>`)
		h.Raw(`<button type="submit" class="btn btn-primary">Send</button></form>`)
		h.Raw(`</section><script src="/static/js/chat.js" defer></script>`)
		return h.Err()
	})
	return layouts.Base("Chat", body)
}

func userGlyph(ctx context.Context) string {
	if avatar := layouts.GetAvatar(ctx); avatar != "" {
		return avatar
	}
	return "🙂"
}
