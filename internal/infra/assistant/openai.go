package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"newsbridge/internal/domain/entity"
	"newsbridge/internal/resilience/circuitbreaker"
	"newsbridge/internal/resilience/retry"
	"newsbridge/internal/utils/text"
)

// OpenAI answers chat messages through OpenAI's chat completion API, with
// the same breaker and retry wrapping as the Claude provider.
type OpenAI struct {
	client  *openai.Client
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
	config  Config
	logger  *slog.Logger
}

// NewOpenAI creates an OpenAI provider with the given API key.
func NewOpenAI(apiKey string, cfg Config, logger *slog.Logger) *OpenAI {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("initialized openai assistant",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &OpenAI{
		client:  openai.NewClient(apiKey),
		breaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retry:   retry.AssistantConfig(),
		config:  cfg,
		logger:  logger,
	}
}

// Reply generates an assistant reply for the message given the conversation
// so far.
func (o *OpenAI) Reply(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	var result string
	retryErr := retry.WithBackoff(ctx, o.retry, func() error {
		cbResult, err := o.breaker.Execute(func() (interface{}, error) {
			return o.doReply(ctx, history, message)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				o.logger.Warn("openai api circuit breaker open, request rejected",
					slog.String("state", o.breaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("openai reply failed after retries: %w", retryErr)
	}
	return result, nil
}

func (o *OpenAI) doReply(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleAssistant
		if msg.Role == entity.RoleUser {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: truncate(message, maxMessageChars),
	})

	o.logger.InfoContext(ctx, "requesting assistant reply",
		slog.String("provider", "openai"),
		slog.Int("history_length", len(history)))

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages:  messages,
	})
	duration := time.Since(start)

	if err != nil {
		o.logger.ErrorContext(ctx, "assistant reply failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		recordCall("openai", "error", duration)
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		recordCall("openai", "empty", duration)
		return "", fmt.Errorf("openai api returned empty response")
	}

	reply := resp.Choices[0].Message.Content
	o.logger.InfoContext(ctx, "assistant reply completed",
		slog.Int("reply_length", text.CountRunes(reply)),
		slog.Duration("duration", duration))
	recordCall("openai", "ok", duration)
	return reply, nil
}
