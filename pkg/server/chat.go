package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/workwAIse/alex-web/pkg/domain"
	"github.com/workwAIse/alex-web/pkg/sanitize"
)

type chatRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"threadId"`
}

// handleChat bridges one chat turn to the upstream assistant and streams the
// reply back as server-sent events. The event order is fixed: thread.id
// first, then sanitized text.delta events, at most one terminal error, and
// always the [DONE] sentinel, even when the run fails mid-stream.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.provider == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, errors.New(
			"assistant is not configured: set OPENAI_API_KEY and OPENAI_ASSISTANT_ID, then restart"))
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	// The request context carries through every upstream call, so a visitor
	// closing the tab aborts the run instead of leaving it consuming upstream
	// resources.
	ctx := r.Context()
	requestID := uuid.New().String()

	// Reuse the caller's thread or create a new one. A stale threadId is not
	// validated here; the run itself will fail and surface in-band.
	threadID := req.ThreadID
	if threadID == "" {
		var err error
		threadID, err = s.provider.CreateThread(ctx)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, fmt.Errorf("create thread: %w", err))
			return
		}
	}

	if err := s.provider.AddMessage(ctx, threadID, req.Message); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, fmt.Errorf("add message: %w", err))
		return
	}

	run, err := s.provider.StreamRun(ctx, threadID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, fmt.Errorf("start run: %w", err))
		return
	}
	defer run.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.errorResponse(w, http.StatusInternalServerError, errors.New("streaming unsupported"))
		return
	}

	// Headers are sent now; every failure past this point must go in-band.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sse := &sseWriter{w: w, flusher: flusher}
	defer sse.done()

	// First event: the thread ID, so the client can follow up even if the
	// run fails immediately after.
	sse.event(domain.StreamEvent{Type: domain.EventThreadID, ThreadID: threadID})

	slog.Debug("chat stream started", "request_id", requestID, "thread_id", threadID)

	var buf sanitize.Buffer
	for run.Next() {
		if cleaned := sanitize.Strip(run.Current(), &buf); cleaned != "" {
			sse.event(domain.StreamEvent{Type: domain.EventTextDelta, Text: cleaned})
		}
	}
	if err := run.Err(); err != nil {
		slog.Error("chat stream failed", "request_id", requestID, "thread_id", threadID, "error", err)
		sse.event(domain.StreamEvent{Type: domain.EventError, Message: err.Error()})
		return
	}

	slog.Debug("chat stream finished", "request_id", requestID, "thread_id", threadID)
}

// sseWriter frames stream events as `data: <json>` SSE records and flushes
// after every record so deltas reach the browser as they happen.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (sw *sseWriter) event(e domain.StreamEvent) {
	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("encode stream event", "error", err)
		return
	}
	fmt.Fprintf(sw.w, "data: %s\n\n", data)
	sw.flusher.Flush()
}

func (sw *sseWriter) done() {
	fmt.Fprintf(sw.w, "data: %s\n\n", domain.DoneSentinel)
	sw.flusher.Flush()
}
