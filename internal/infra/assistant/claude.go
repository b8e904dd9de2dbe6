package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"newsbridge/internal/domain/entity"
	"newsbridge/internal/resilience/circuitbreaker"
	"newsbridge/internal/resilience/retry"
	"newsbridge/internal/utils/text"
)

// Claude answers chat messages through Anthropic's API. Calls go through a
// circuit breaker and retry logic so a degraded provider surfaces as a
// fallback reply instead of a hung widget.
type Claude struct {
	client  anthropic.Client
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
	config  Config
	logger  *slog.Logger
}

// NewClaude creates a Claude provider with the given API key.
func NewClaude(apiKey string, cfg Config, logger *slog.Logger) *Claude {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("initialized claude assistant",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &Claude{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		breaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retry:   retry.AssistantConfig(),
		config:  cfg,
		logger:  logger,
	}
}

// Reply generates an assistant reply for the message given the conversation
// so far.
func (c *Claude) Reply(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result string
	retryErr := retry.WithBackoff(ctx, c.retry, func() error {
		cbResult, err := c.breaker.Execute(func() (interface{}, error) {
			return c.doReply(ctx, history, message)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				c.logger.Warn("claude api circuit breaker open, request rejected",
					slog.String("state", c.breaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("claude reply failed after retries: %w", retryErr)
	}
	return result, nil
}

func (c *Claude) doReply(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
	requestID := uuid.New().String()
	prompt := buildPrompt(history, message)

	c.logger.InfoContext(ctx, "requesting assistant reply",
		slog.String("request_id", requestID),
		slog.String("provider", "claude"),
		slog.Int("history_length", len(history)),
		slog.Int("prompt_length", text.CountRunes(prompt)))

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorContext(ctx, "assistant reply failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		recordCall("claude", "error", duration)
		return "", fmt.Errorf("claude api error: %w", err)
	}
	if len(resp.Content) == 0 {
		recordCall("claude", "empty", duration)
		return "", fmt.Errorf("claude api returned empty response")
	}
	block, ok := resp.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		recordCall("claude", "bad_type", duration)
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	c.logger.InfoContext(ctx, "assistant reply completed",
		slog.String("request_id", requestID),
		slog.Int("reply_length", text.CountRunes(block.Text)),
		slog.Duration("duration", duration))
	recordCall("claude", "ok", duration)
	return block.Text, nil
}
