package layouts

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestBase_AnonymousHasNoNav(t *testing.T) {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hello</p>")
		return err
	})

	out := render(t, context.Background(), Base("Log in", body))

	if strings.Contains(out, `<nav`) {
		t.Error("anonymous page should not render the nav bar")
	}
	if !strings.Contains(out, "<p>hello</p>") {
		t.Error("body not rendered")
	}
	if !strings.Contains(out, `class="theme-light"`) {
		t.Error("expected default theme class")
	}
}

func TestBase_EscapesUserData(t *testing.T) {
	ctx := SetIsAuthenticated(context.Background(), true)
	ctx = SetDisplayName(ctx, `<script>x</script>`)
	ctx = SetTheme(ctx, "dark")
	ctx = SetCSRFToken(ctx, "tok")

	out := render(t, ctx, Base("Chat", nil))

	if strings.Contains(out, "<script>x</script>") {
		t.Error("display name must be escaped")
	}
	if !strings.Contains(out, `class="theme-dark"`) {
		t.Error("expected user theme class")
	}
	if !strings.Contains(out, `name="csrf_token" value="tok"`) {
		t.Error("logout form should carry the CSRF token")
	}
}

func TestGetDisplayName_FallsBackToUsername(t *testing.T) {
	ctx := SetUsername(context.Background(), "alice")
	if got := GetDisplayName(ctx); got != "alice" {
		t.Errorf("GetDisplayName = %q, want alice", got)
	}
}
