package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"newsbridge/internal/domain/entity"
	"newsbridge/pkg/config"
)

// Provider names accepted in ASSISTANT_PROVIDER.
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Config holds provider tuning shared by all implementations.
type Config struct {
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Validate checks the provider tuning.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadConfig reads provider tuning from the environment for the named
// provider, falling back to per-provider model defaults.
func LoadConfig(provider string) Config {
	model := config.GetEnvString("ASSISTANT_MODEL", "")
	if model == "" {
		switch provider {
		case ProviderOpenAI:
			model = "gpt-3.5-turbo"
		default:
			model = string(anthropic.ModelClaudeSonnet4_5_20250929)
		}
	}
	return Config{
		Model:     model,
		MaxTokens: config.GetEnvInt("ASSISTANT_MAX_TOKENS", 1024),
		Timeout:   config.GetEnvDuration("ASSISTANT_TIMEOUT", 60*time.Second),
	}
}

// Provider is what every implementation in this package satisfies.
type Provider interface {
	Reply(ctx context.Context, history []entity.ChatMessage, message string) (string, error)
}

// FromEnv builds the provider selected by ASSISTANT_PROVIDER. Claude and
// OpenAI need their respective API keys; a missing key or the value "none"
// yields the canned provider so the widget still works in development.
func FromEnv(logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	provider := config.GetEnvString("ASSISTANT_PROVIDER", ProviderClaude)
	cfg := LoadConfig(provider)

	switch provider {
	case ProviderClaude:
		if key := config.GetEnvString("ANTHROPIC_API_KEY", ""); key != "" {
			return NewClaude(key, cfg, logger)
		}
		logger.Warn("ANTHROPIC_API_KEY not set, chat runs with canned replies")
	case ProviderOpenAI:
		if key := config.GetEnvString("OPENAI_API_KEY", ""); key != "" {
			return NewOpenAI(key, cfg, logger)
		}
		logger.Warn("OPENAI_API_KEY not set, chat runs with canned replies")
	case ProviderNone:
	default:
		logger.Warn("unknown assistant provider, chat runs with canned replies",
			slog.String("provider", provider))
	}
	return NewNoOp()
}
