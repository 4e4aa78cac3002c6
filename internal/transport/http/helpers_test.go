package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"programming-quiz/internal/app"
	"programming-quiz/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// makeQuestions returns n questions whose correct labels cycle A, B, C, D.
func makeQuestions(n int) []domain.Question {
	out := make([]domain.Question, n)
	for i := range out {
		q, err := domain.NewQuestion(
			fmt.Sprintf("Topic %d", i+1),
			fmt.Sprintf("Prompt %d", i+1),
			[4]string{"alpha", "beta", "gamma", "delta"},
			domain.Labels[i%4],
		)
		if err != nil {
			panic(err)
		}
		out[i] = q
	}
	return out
}

type countingSource struct {
	calls atomic.Int32
	err   error
}

func (s *countingSource) Generate(_ context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return makeQuestions(req.Count), nil
}

var _ app.QuestionSource = (*countingSource)(nil)
