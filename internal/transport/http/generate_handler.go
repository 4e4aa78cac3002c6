package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"programming-quiz/internal/domain"
	"programming-quiz/internal/wire"
)

// Generator produces a validated batch; app.GenerationService satisfies it.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error)
}

// GenerateHandler serves POST /generate-quiz-question.
type GenerateHandler struct {
	generator Generator
	log       *slog.Logger
}

func NewGenerateHandler(generator Generator, logger *slog.Logger) *GenerateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateHandler{generator: generator, log: logger}
}

func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body wire.Request
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		h.log.Warn("invalid generation request body", "error", err)
		writeJSON(w, http.StatusInternalServerError, wire.ErrorBody{Error: "Invalid request body", Details: err.Error()})
		return
	}

	questions, err := h.generator.Generate(r.Context(), domain.GenerationRequest{
		Difficulty: body.Difficulty,
		Count:      body.Count,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCount):
			writeJSON(w, http.StatusBadRequest, wire.ErrorBody{Error: "Invalid count", Details: err.Error()})
			return
		case errors.Is(err, domain.ErrInvalidDifficulty):
			writeJSON(w, http.StatusBadRequest, wire.ErrorBody{Error: "Invalid difficulty", Details: err.Error()})
			return
		}
		genErr := domain.AsGenerationError(err)
		details := genErr.Kind.String()
		if genErr.Err != nil {
			details = genErr.Err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, wire.ErrorBody{Error: genErr.Message, Details: details})
		return
	}
	writeJSON(w, http.StatusOK, wire.FromDomain(questions))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
