package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	hackrx "github.com/lavesh00/HackRx-6"
)

type handler struct {
	pipeline hackrx.Pipeline
}

func newHandler(p hackrx.Pipeline) *handler {
	return &handler{pipeline: p}
}

type runRequest struct {
	Documents string   `json:"documents"`
	Questions []string `json:"questions"`
}

type runResponse struct {
	Answers []string `json:"answers"`
}

// POST /api/v1/hackrx/run
// Indexes the document and answers every question against it.
func (h *handler) handleRun(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	answers, err := h.pipeline.ProcessDocumentQueries(ctx, req.Documents, req.Questions)
	if err != nil {
		switch {
		case errors.Is(err, hackrx.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, hackrx.ErrDocumentNotFound):
			writeError(w, http.StatusUnprocessableEntity, "document could not be fetched")
		case errors.Is(err, hackrx.ErrUnsupportedFormat):
			writeError(w, http.StatusUnsupportedMediaType, "unsupported document format")
		case errors.Is(err, hackrx.ErrParsingFailed):
			writeError(w, http.StatusUnprocessableEntity, "document could not be parsed")
		case errors.Is(err, hackrx.ErrQuotaExhausted):
			writeError(w, http.StatusTooManyRequests, "daily token quota exhausted")
		case errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusGatewayTimeout, "processing timed out")
		default:
			slog.Error("run failed", "error", err)
			writeError(w, http.StatusInternalServerError, "processing failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, runResponse{Answers: answers})
}

// DELETE /api/v1/documents/{id}
func (h *handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "document id is required")
		return
	}
	if err := h.pipeline.RemoveDocument(r.Context(), id); err != nil {
		slog.Error("delete document failed", "doc", id, "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// GET /stats
func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.pipeline.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
