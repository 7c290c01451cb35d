// Package llm constructs the generative model client and the plumbing
// around calling it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imkonsowa/rera-insights/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOllama   = "ollama"
)

var (
	ErrMissingAPIKey    = errors.New("model api key is not configured")
	ErrUnknownProvider  = errors.New("unknown model provider")
	ErrModelUnavailable = errors.New("model client unavailable")
)

// ConfigError reports a model configuration problem found while building the client.
type ConfigError struct {
	Provider string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("model config (%s): %v", e.Provider, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// New builds the model client for the configured provider. A googleai
// provider without an API key fails here with a *ConfigError.
func New(ctx context.Context, cfg config.Model) (llms.Model, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch provider {
	case "", ProviderGoogleAI:
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, &ConfigError{Provider: ProviderGoogleAI, Err: ErrMissingAPIKey}
		}

		model, err := googleai.New(
			ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Name),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create googleai client: %w", err)
		}

		return model, nil
	case ProviderOllama:
		model, err := ollama.New(
			ollama.WithServerURL(cfg.OllamaAddress()),
			ollama.WithModel(cfg.Name),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}

		return model, nil
	default:
		return nil, &ConfigError{Provider: provider, Err: ErrUnknownProvider}
	}
}
