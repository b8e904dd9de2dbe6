package assistant

import (
	"context"

	"newsbridge/internal/domain/entity"
)

// NoOp is a provider that returns a canned reply. Used in development and
// when no API key is configured.
type NoOp struct{}

// NewNoOp creates a NoOp provider.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Reply returns a fixed acknowledgment regardless of input.
func (n *NoOp) Reply(_ context.Context, _ []entity.ChatMessage, _ string) (string, error) {
	return "The assistant is not configured on this deployment, so I can't answer questions right now.", nil
}
