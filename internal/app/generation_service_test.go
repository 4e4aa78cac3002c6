package app_test

import (
	"context"
	"errors"
	"testing"

	"programming-quiz/internal/app"
	"programming-quiz/internal/domain"
)

func TestGenerationServiceAppliesDefaults(t *testing.T) {
	source := &stubSource{questions: makeQuestions(domain.DefaultCount)}
	service := app.NewGenerationService(source, discardLogger())

	questions, err := service.Generate(context.Background(), domain.GenerationRequest{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != domain.DefaultCount {
		t.Fatalf("expected %d questions, got %d", domain.DefaultCount, len(questions))
	}
	if source.lastReq.Difficulty != domain.DefaultDifficulty || source.lastReq.Count != domain.DefaultCount {
		t.Fatalf("unexpected defaults %+v", source.lastReq)
	}
}

func TestGenerationServiceRejectsCount(t *testing.T) {
	source := &stubSource{}
	service := app.NewGenerationService(source, discardLogger())
	for _, count := range []int{-1, domain.MaxCount + 1} {
		if _, err := service.Generate(context.Background(), domain.GenerationRequest{Count: count}); !errors.Is(err, domain.ErrInvalidCount) {
			t.Fatalf("count %d: expected ErrInvalidCount, got %v", count, err)
		}
	}
	if source.calls != 0 {
		t.Fatalf("source must not be called for invalid requests")
	}
}

func TestGenerationServiceShapesBatchSize(t *testing.T) {
	service := app.NewGenerationService(&stubSource{questions: makeQuestions(5)}, discardLogger())
	questions, err := service.Generate(context.Background(), domain.GenerationRequest{Count: 3})
	if err != nil || len(questions) != 3 {
		t.Fatalf("expected truncation to 3, got %d err=%v", len(questions), err)
	}

	_, err = service.Generate(context.Background(), domain.GenerationRequest{Count: 8})
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != domain.KindMalformedResponse {
		t.Fatalf("expected malformed response for short batch, got %v", err)
	}
}

func TestGenerationServiceNormalizesErrors(t *testing.T) {
	service := app.NewGenerationService(&stubSource{err: errors.New("boom")}, discardLogger())
	_, err := service.Generate(context.Background(), domain.GenerationRequest{Count: 1})
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != domain.KindUpstream {
		t.Fatalf("expected upstream GenerationError, got %v", err)
	}

	unconfigured := app.NewGenerationService(nil, discardLogger())
	_, err = unconfigured.Generate(context.Background(), domain.GenerationRequest{Count: 1})
	if !errors.As(err, &genErr) || genErr.Kind != domain.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
