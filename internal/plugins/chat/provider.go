package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/AmarTuli/Fred-AI/internal/config"
)

// ErrProviderUnavailable is returned by a provider that was never
// configured. The resolver treats it like any other provider failure.
var ErrProviderUnavailable = errors.New("language model provider is not configured")

// Provider produces a completion for one system prompt and one user message.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// einoProvider adapts an eino chat model to Provider.
type einoProvider struct {
	model       model.BaseChatModel
	maxTokens   int
	temperature float32
}

// NewEinoProvider wraps an existing eino chat model. maxTokens and
// temperature are sent as per-call options.
func NewEinoProvider(m model.BaseChatModel, maxTokens int, temperature float32) Provider {
	return &einoProvider{model: m, maxTokens: maxTokens, temperature: temperature}
}

// NewProvider builds the Ark-backed provider from config. When the API key
// or model is missing it returns an unavailable provider instead of an
// error, so the server still starts and chat answers from the fallback
// table.
func NewProvider(ctx context.Context, cfg config.AIConfig) (Provider, error) {
	if !cfg.Enabled() {
		return NewUnavailableProvider(), nil
	}

	maxTokens := cfg.MaxTokens
	temperature := cfg.Temperature
	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		Region:      cfg.Region,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("creating ark chat model: %w", err)
	}

	return NewEinoProvider(chatModel, cfg.MaxTokens, cfg.Temperature), nil
}

// Complete sends the persona prompt and the user's message and returns the
// assistant's text.
func (p *einoProvider) Complete(ctx context.Context, system, user string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}

	resp, err := p.model.Generate(ctx, messages,
		model.WithMaxTokens(p.maxTokens),
		model.WithTemperature(p.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("generating completion: %w", err)
	}
	if resp == nil {
		return "", errors.New("provider returned no message")
	}

	return resp.Content, nil
}

// unavailableProvider fails every call with ErrProviderUnavailable.
type unavailableProvider struct{}

// NewUnavailableProvider returns a provider that always fails.
func NewUnavailableProvider() Provider {
	return unavailableProvider{}
}

func (unavailableProvider) Complete(context.Context, string, string) (string, error) {
	return "", ErrProviderUnavailable
}
