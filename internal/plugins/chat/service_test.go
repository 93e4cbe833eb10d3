package chat

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AmarTuli/Fred-AI/internal/apperror"
)

// --- Mock Provider ---

// mockProvider implements Provider for testing.
type mockProvider struct {
	completeFn func(ctx context.Context, system, user string) (string, error)
	calls      atomic.Int32
}

func (m *mockProvider) Complete(ctx context.Context, system, user string) (string, error) {
	m.calls.Add(1)
	if m.completeFn != nil {
		return m.completeFn(ctx, system, user)
	}
	return "", ErrProviderUnavailable
}

// fixedRand always returns the same index, clamped to n.
type fixedRand int

func (f fixedRand) IntN(n int) int {
	return min(int(f), n-1)
}

func TestResolve_ProviderSuccess(t *testing.T) {
	var gotSystem, gotUser string
	provider := &mockProvider{
		completeFn: func(_ context.Context, system, user string) (string, error) {
			gotSystem, gotUser = system, user
			return "Paris is the capital of France.", nil
		},
	}
	svc := NewChatService(provider)

	reply, err := svc.Resolve(context.Background(), "  What is the capital of France?  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Status != StatusSuccess || reply.Text != "Paris is the capital of France." {
		t.Errorf("unexpected reply %+v", reply)
	}
	if gotSystem != personaPrompt {
		t.Error("expected persona prompt as system message")
	}
	if gotUser != "What is the capital of France?" {
		t.Errorf("user message = %q", gotUser)
	}
}

func TestResolve_EmptyMessage(t *testing.T) {
	for _, msg := range []string{"", "   ", "\n\t"} {
		provider := &mockProvider{}
		svc := NewChatService(provider)

		reply, err := svc.Resolve(context.Background(), msg)
		if reply != nil {
			t.Errorf("expected no reply for %q", msg)
		}
		if !apperror.Is(err, apperror.TypeMissingInput) {
			t.Errorf("expected missing_input for %q, got %v", msg, err)
		}
		if apperror.SafeMessage(err) != "No message provided" {
			t.Errorf("unexpected message %q", apperror.SafeMessage(err))
		}
		if provider.calls.Load() != 0 {
			t.Errorf("provider called for %q", msg)
		}
	}
}

func TestResolve_FallbackOnProviderFailure(t *testing.T) {
	failures := map[string]error{
		"unavailable": ErrProviderUnavailable,
		"network":     errors.New("dial tcp: connection refused"),
		"auth":        errors.New("401 invalid api key"),
	}

	for name, failure := range failures {
		t.Run(name, func(t *testing.T) {
			provider := &mockProvider{
				completeFn: func(context.Context, string, string) (string, error) {
					return "", failure
				},
			}
			svc := NewChatService(provider)

			reply, err := svc.Resolve(context.Background(), "hello")
			if err != nil {
				t.Fatalf("provider failures must not surface: %v", err)
			}
			if reply.Status != StatusFallback {
				t.Errorf("status = %q, want %q", reply.Status, StatusFallback)
			}
			if !slices.Contains(DefaultPhrases[CategoryGreeting], reply.Text) {
				t.Errorf("reply %q is not a greeting phrase", reply.Text)
			}
		})
	}
}

func TestResolve_EmptyCompletionFallsBack(t *testing.T) {
	provider := &mockProvider{
		completeFn: func(context.Context, string, string) (string, error) {
			return "   ", nil
		},
	}
	svc := NewChatService(provider)

	reply, err := svc.Resolve(context.Background(), "thanks!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Status != StatusFallback || !slices.Contains(DefaultPhrases[CategoryThanks], reply.Text) {
		t.Errorf("unexpected reply %+v", reply)
	}
}

func TestResolve_TimeoutFallsBack(t *testing.T) {
	provider := &mockProvider{
		completeFn: func(ctx context.Context, _, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	svc := NewChatService(provider, WithTimeout(10*time.Millisecond))

	reply, err := svc.Resolve(context.Background(), "write a python function")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Status != StatusFallback || !slices.Contains(DefaultPhrases[CategoryCoding], reply.Text) {
		t.Errorf("unexpected reply %+v", reply)
	}
}

func TestResolve_InjectedRandSource(t *testing.T) {
	svc := NewChatService(NewUnavailableProvider(), WithRandSource(fixedRand(1)))

	for i := 0; i < 5; i++ {
		reply, err := svc.Resolve(context.Background(), "hey")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply.Text != DefaultPhrases[CategoryGreeting][1] {
			t.Errorf("expected the second greeting, got %q", reply.Text)
		}
	}
}

func TestResolve_EmptyCategoryIsInternalError(t *testing.T) {
	svc := NewChatService(NewUnavailableProvider(), WithPhrases(Phrases{
		CategoryGreeting: {"Hello from Fred AI"},
	}))

	reply, err := svc.Resolve(context.Background(), "bananas")
	if reply != nil {
		t.Error("expected no reply")
	}
	if !apperror.Is(err, apperror.TypeInternal) {
		t.Fatalf("expected internal_error, got %v", err)
	}
	if apperror.SafeMessage(err) != `no fallback phrases for category "default"` {
		t.Errorf("expected the failure description, got %q", apperror.SafeMessage(err))
	}
}

func TestResolve_ConcurrentFallback(t *testing.T) {
	svc := NewChatService(NewUnavailableProvider())
	ctx := context.Background()

	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		go func() {
			reply, err := svc.Resolve(ctx, "hello")
			if err == nil && !slices.Contains(DefaultPhrases[CategoryGreeting], reply.Text) {
				err = errors.New("unexpected phrase " + reply.Text)
			}
			errs <- err
		}()
	}
	for i := 0; i < 50; i++ {
		if err := <-errs; err != nil {
			t.Error(err)
		}
	}
}
