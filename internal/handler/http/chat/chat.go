// Package chat exposes the chat widget's single endpoint. The browser owns
// the visible transcript; each request carries the prior history so the
// server stays stateless across turns.
package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"newsbridge/internal/domain/entity"
	hhttp "newsbridge/internal/handler/http"
	"newsbridge/internal/handler/http/respond"
	"newsbridge/internal/observability/logging"
	"newsbridge/internal/usecase/chat"
)

// request is the browser's chat turn payload.
type request struct {
	Message string        `json:"message"`
	History []wireMessage `json:"history"`
}

// wireMessage is a history entry as the browser sends it. Only role and
// content matter for prompting; IDs and timestamps stay client-side.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// response carries the assistant's reply message.
type response struct {
	Reply entity.ChatMessage `json:"reply"`
}

// Handler serves POST /api/chat.
type Handler struct {
	Chat   *chat.Service
	Logger *slog.Logger
}

// Register wires the chat route onto the mux behind the given rate
// limiter; assistant calls are the most expensive thing this server does.
func Register(mux *http.ServeMux, svc *chat.Service, limiter *hhttp.RateLimiter, logger *slog.Logger) {
	mux.Handle("POST /api/chat", limiter.Limit(Handler{Chat: svc, Logger: logger}))
}

// ServeHTTP handles one chat turn. Provider failures never surface as HTTP
// errors; the service substitutes the fallback reply instead.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errMalformedBody)
		return
	}

	history := make([]entity.ChatMessage, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, entity.ChatMessage{
			Role:    entity.ParseChatRole(m.Role),
			Content: m.Content,
		})
	}

	reply, err := h.Chat.Answer(ctx, history, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			respond.Error(w, http.StatusBadRequest, err)
			return
		}
		logger.Error("chat turn failed", slog.String("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, response{Reply: reply})
}

var errMalformedBody = errors.New("invalid request body: JSON object required")
