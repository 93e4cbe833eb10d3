// Package sanitize cleans user-supplied profile fields before they are
// stored. Profile fields are rendered back into pages and into the chat
// header, so they must never carry HTML. Registration and the settings page
// share these rules.
package sanitize

import (
	"errors"
	"html"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// DateLayout is the accepted date format, as sent by an HTML date input.
const DateLayout = "2006-01-02"

// maxPhoneLen matches the users.phone column.
const maxPhoneLen = 32

var (
	ErrDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrFutureDate = errors.New("date cannot be in the future")
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared strict policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text removes every HTML element from input and trims surrounding space.
// bluemonday escapes the surviving text (& becomes &amp;), so the result is
// unescaped once more; templates escape again on output.
func Text(input string) string {
	if input == "" {
		return ""
	}
	cleaned := getPolicy().Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// Email trims and lowercases an address and reports whether it is a bare
// address (no display name). Empty input is valid and returns "".
func Email(input string) (string, bool) {
	addr := strings.ToLower(strings.TrimSpace(input))
	if addr == "" {
		return "", true
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return addr, false
	}
	return addr, true
}

// PastDate parses an optional DateLayout date that must not be after now.
// Empty input returns nil.
func PastDate(input string, now time.Time) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	parsed, err := time.Parse(DateLayout, input)
	if err != nil {
		return nil, ErrDateFormat
	}
	if parsed.After(now) {
		return nil, ErrFutureDate
	}
	return &parsed, nil
}

// Phone strips HTML from input and reports whether the rest is empty or
// made of digits and the separators " +-().", at most 32 bytes.
func Phone(input string) (string, bool) {
	phone := Text(input)
	if len(phone) > maxPhoneLen {
		return phone, false
	}
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
		case strings.ContainsRune(" +-().", r):
		default:
			return phone, false
		}
	}
	return phone, true
}
