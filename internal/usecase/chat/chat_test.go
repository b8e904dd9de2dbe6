package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"newsbridge/internal/domain/entity"
)

type stubResponder struct {
	reply   string
	err     error
	history []entity.ChatMessage
	message string
}

func (s *stubResponder) Reply(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
	s.history = history
	s.message = message
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestService(r Responder) *Service {
	return NewService(r, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewTranscriptStartsWithWelcome(t *testing.T) {
	tr := NewTranscript()
	msgs := tr.Messages()
	if len(msgs) != 1 {
		t.Fatalf("new transcript has %d messages, want 1", len(msgs))
	}
	if msgs[0].Role != entity.RoleAssistant || msgs[0].Content != Welcome {
		t.Errorf("opening message = %+v", msgs[0])
	}
	if msgs[0].ID == "" || msgs[0].Timestamp.IsZero() {
		t.Error("opening message missing id or timestamp")
	}
}

func TestSendAppendsBothSides(t *testing.T) {
	responder := &stubResponder{reply: "Here is some context."}
	svc := newTestService(responder)
	tr := NewTranscript()

	reply, err := svc.Send(context.Background(), tr, "What happened in Geneva?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Role != entity.RoleAssistant || reply.Content != "Here is some context." {
		t.Errorf("reply = %+v", reply)
	}

	msgs := tr.Messages()
	if len(msgs) != 3 {
		t.Fatalf("transcript has %d messages, want welcome + user + assistant", len(msgs))
	}
	if msgs[1].Role != entity.RoleUser || msgs[1].Content != "What happened in Geneva?" {
		t.Errorf("user turn = %+v", msgs[1])
	}
	if responder.message != "What happened in Geneva?" {
		t.Errorf("responder got message %q", responder.message)
	}
	// History passed to the responder excludes the message being sent.
	if len(responder.history) != 1 {
		t.Errorf("responder history has %d messages, want 1", len(responder.history))
	}
}

func TestSendFailureAppendsFallback(t *testing.T) {
	responder := &stubResponder{err: errors.New("provider down")}
	svc := newTestService(responder)
	tr := NewTranscript()

	reply, err := svc.Send(context.Background(), tr, "hello")
	if err != nil {
		t.Fatalf("Send must not fail when the provider does: %v", err)
	}
	if reply.Content != Fallback {
		t.Errorf("reply = %q, want fallback", reply.Content)
	}

	msgs := tr.Messages()
	if len(msgs) != 3 {
		t.Fatalf("transcript has %d messages, want 3", len(msgs))
	}
	if msgs[1].Role != entity.RoleUser {
		t.Error("user message dropped on provider failure")
	}
	if msgs[2].Content != Fallback {
		t.Errorf("last message = %q, want fallback", msgs[2].Content)
	}
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	svc := newTestService(&stubResponder{reply: "x"})
	tr := NewTranscript()

	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Send(context.Background(), tr, input); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Send(%q) error = %v, want ErrEmptyMessage", input, err)
		}
	}
	if tr.Len() != 1 {
		t.Errorf("rejected input still appended: %d messages", tr.Len())
	}
}

func TestAnswerStateless(t *testing.T) {
	responder := &stubResponder{reply: "stateless reply"}
	svc := newTestService(responder)

	history := []entity.ChatMessage{
		{Role: entity.RoleAssistant, Content: Welcome},
		{Role: entity.RoleUser, Content: "earlier question"},
	}
	reply, err := svc.Answer(context.Background(), history, "follow-up")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if reply.Content != "stateless reply" || reply.Role != entity.RoleAssistant {
		t.Errorf("reply = %+v", reply)
	}
	if len(responder.history) != 2 {
		t.Errorf("history not forwarded: %d messages", len(responder.history))
	}
}

func TestAnswerFallsBack(t *testing.T) {
	svc := newTestService(&stubResponder{err: errors.New("boom")})
	reply, err := svc.Answer(context.Background(), nil, "hello")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if reply.Content != Fallback {
		t.Errorf("reply = %q, want fallback", reply.Content)
	}
}

func TestTranscriptMessagesIsSnapshot(t *testing.T) {
	tr := NewTranscript()
	snapshot := tr.Messages()
	tr.append(entity.RoleUser, "later")
	if len(snapshot) != 1 {
		t.Error("snapshot changed after append")
	}
}
