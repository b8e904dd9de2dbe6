// Package chat manages assistant conversations for the in-page chat widget.
// A transcript is append-only: user messages show up immediately and a failed
// assistant reply becomes a visible fallback message instead of an error, so
// the conversation never loses or reorders entries.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsbridge/internal/domain/entity"
)

// Fallback is shown as the assistant's reply when the provider fails.
const Fallback = "Sorry, I encountered an error processing your message. Please try again."

// Welcome opens every new conversation.
const Welcome = "Hello! I'm your NewsBridge assistant. I can help you understand news articles, provide context about current events, and answer questions about the platform. How can I help you today?"

// Responder produces an assistant reply for a message given the prior
// conversation.
type Responder interface {
	Reply(ctx context.Context, history []entity.ChatMessage, message string) (string, error)
}

// Transcript is an append-only conversation log.
type Transcript struct {
	mu       sync.RWMutex
	messages []entity.ChatMessage
}

// NewTranscript starts a conversation seeded with the welcome message.
func NewTranscript() *Transcript {
	t := &Transcript{}
	t.append(entity.RoleAssistant, Welcome)
	return t
}

// Messages returns a snapshot of the conversation in order.
func (t *Transcript) Messages() []entity.ChatMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]entity.ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len reports the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

func (t *Transcript) append(role entity.ChatRole, content string) entity.ChatMessage {
	msg := entity.ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	t.mu.Lock()
	t.messages = append(t.messages, msg)
	t.mu.Unlock()
	return msg
}

// Service sends user messages to a Responder and records both sides of the
// exchange in the transcript.
type Service struct {
	responder Responder
	logger    *slog.Logger
}

// NewService builds a chat Service.
func NewService(responder Responder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{responder: responder, logger: logger}
}

// Send appends the user's message to the transcript, asks the responder for
// a reply and appends that too. A provider failure yields the fallback reply
// rather than an error: the user message stays in the transcript and the
// conversation remains usable.
func (s *Service) Send(ctx context.Context, t *Transcript, message string) (entity.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return entity.ChatMessage{}, ErrEmptyMessage
	}

	history := t.Messages()
	t.append(entity.RoleUser, message)

	reply, err := s.responder.Reply(ctx, history, message)
	if err != nil {
		s.logger.Warn("assistant reply failed, using fallback",
			slog.String("error", err.Error()))
		recordReply("fallback")
		return t.append(entity.RoleAssistant, Fallback), nil
	}

	recordReply("ok")
	return t.append(entity.RoleAssistant, reply), nil
}

// Answer is the stateless variant used by the HTTP endpoint, where the
// browser keeps the transcript. The fallback behavior matches Send.
func (s *Service) Answer(ctx context.Context, history []entity.ChatMessage, message string) (entity.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return entity.ChatMessage{}, ErrEmptyMessage
	}

	reply, err := s.responder.Reply(ctx, history, message)
	if err != nil {
		s.logger.Warn("assistant reply failed, using fallback",
			slog.String("error", err.Error()))
		recordReply("fallback")
		reply = Fallback
	} else {
		recordReply("ok")
	}

	return entity.ChatMessage{
		ID:        uuid.New().String(),
		Role:      entity.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	}, nil
}
