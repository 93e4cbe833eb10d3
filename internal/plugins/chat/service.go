package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/AmarTuli/Fred-AI/internal/apperror"
)

// errEmptyCompletion marks a provider answer with no text.
var errEmptyCompletion = errors.New("provider returned an empty completion")

// RandSource picks phrase indexes. Implementations must be safe for
// concurrent use when shared across requests.
type RandSource interface {
	IntN(n int) int
}

// globalRand uses the math/rand/v2 top-level generator, which is safe for
// concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }

// ChatService resolves a user message into a reply.
type ChatService interface {
	// Resolve returns the provider's answer, or a canned reply when the
	// provider fails. An empty message is MissingInput and never reaches
	// the provider.
	Resolve(ctx context.Context, message string) (*Reply, error)
}

// chatService implements ChatService.
type chatService struct {
	provider Provider
	rand     RandSource
	phrases  Phrases
	timeout  time.Duration
}

// Option customizes a chat service.
type Option func(*chatService)

// WithRandSource replaces the phrase picker, e.g. with a fixed source in
// tests.
func WithRandSource(r RandSource) Option {
	return func(s *chatService) { s.rand = r }
}

// WithPhrases replaces the fallback phrase table.
func WithPhrases(p Phrases) Option {
	return func(s *chatService) { s.phrases = p }
}

// WithTimeout bounds each provider call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *chatService) { s.timeout = d }
}

// NewChatService creates a chat service around provider.
func NewChatService(provider Provider, opts ...Option) ChatService {
	s := &chatService{
		provider: provider,
		rand:     globalRand{},
		phrases:  DefaultPhrases,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve implements ChatService.
func (s *chatService) Resolve(ctx context.Context, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.NewMissingInput("No message provided")
	}

	text, err := s.complete(ctx, message)
	if err == nil {
		return &Reply{Text: text, Status: StatusSuccess}, nil
	}

	category := Categorize(message)
	slog.Warn("language model unavailable, using fallback reply",
		slog.String("category", string(category)),
		slog.Any("error", err),
	)

	text, err = s.fallback(category)
	if err != nil {
		return nil, apperror.NewInternalDescribed(err)
	}
	return &Reply{Text: text, Status: StatusFallback}, nil
}

// complete asks the provider, bounded by the configured timeout.
func (s *chatService) complete(ctx context.Context, message string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.provider.Complete(ctx, personaPrompt, message)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}

// fallback picks a phrase from the category's list uniformly at random.
func (s *chatService) fallback(category Category) (string, error) {
	phrases := s.phrases[category]
	if len(phrases) == 0 {
		return "", fmt.Errorf("no fallback phrases for category %q", category)
	}
	return phrases[s.rand.IntN(len(phrases))], nil
}
