package app

import (
	"context"
	"fmt"
	"log/slog"

	"programming-quiz/internal/domain"
)

// QuestionSource produces question batches (LLM, question bank, remote function, caches).
type QuestionSource interface {
	Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error)
}

// QuestionSourceFunc adapts a function to QuestionSource.
type QuestionSourceFunc func(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error)

func (f QuestionSourceFunc) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
	return f(ctx, req)
}

// GenerationService is the use case behind the generation function: it bounds the
// request, calls the configured source chain and normalizes every failure.
type GenerationService struct {
	source QuestionSource
	log    *slog.Logger
}

func NewGenerationService(source QuestionSource, logger *slog.Logger) *GenerationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationService{source: source, log: logger}
}

// Generate returns exactly req.Count questions. Errors are always *domain.GenerationError,
// except domain.ErrInvalidCount for out-of-range requests.
func (s *GenerationService) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		s.log.Warn("rejected generation request", "count", req.Count, "error", err)
		return nil, err
	}
	if s.source == nil {
		err := domain.ConfigurationError("no question source configured", nil)
		s.log.Error("generation failed", "kind", err.Kind.String(), "error", err)
		return nil, err
	}

	questions, err := s.source.Generate(ctx, req)
	if err != nil {
		genErr := domain.AsGenerationError(err)
		s.log.Error("generation failed", "kind", genErr.Kind.String(), "difficulty", req.Difficulty, "count", req.Count, "error", genErr)
		return nil, genErr
	}
	if len(questions) < req.Count {
		genErr := domain.MalformedResponseError(fmt.Sprintf("expected %d questions, got %d", req.Count, len(questions)), nil)
		s.log.Error("generation failed", "kind", genErr.Kind.String(), "error", genErr)
		return nil, genErr
	}
	if len(questions) > req.Count {
		s.log.Warn("truncating oversized batch", "requested", req.Count, "received", len(questions))
		questions = questions[:req.Count]
	}
	s.log.Info("generated questions", "difficulty", req.Difficulty, "count", len(questions))
	return questions, nil
}
