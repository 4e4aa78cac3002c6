package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"programming-quiz/internal/domain"
	"programming-quiz/internal/wire"
)

// QuestionSource generates batches (LLM, remote function).
type QuestionSource interface {
	Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error)
}

// Archive stores generated batches in the questions table.
type Archive struct {
	pool *pgxpool.Pool
}

func NewArchive(pool *pgxpool.Pool) *Archive {
	return &Archive{pool: pool}
}

// Save inserts every question of a batch under a fresh batch id.
func (a *Archive) Save(ctx context.Context, difficulty string, questions []domain.Question) (uuid.UUID, error) {
	batchID := uuid.New()
	batch := &pgx.Batch{}
	for _, q := range questions {
		options, err := json.Marshal(wire.FromDomain([]domain.Question{q}).Questions[0].Options)
		if err != nil {
			return uuid.Nil, fmt.Errorf("marshal options: %w", err)
		}
		batch.Queue(
			`INSERT INTO questions (id, batch_id, difficulty, topic, prompt, options, answer) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), batchID, difficulty, q.Topic, q.Prompt, string(options), string(q.Correct),
		)
	}

	results := a.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range questions {
		if _, err := results.Exec(); err != nil {
			return uuid.Nil, fmt.Errorf("archive question: %w", err)
		}
	}
	return batchID, nil
}

// ArchivingSource records every batch produced by next. Archive failures are logged
// and do not fail the request.
type ArchivingSource struct {
	next    QuestionSource
	archive *Archive
	log     *slog.Logger
}

func NewArchivingSource(next QuestionSource, archive *Archive, logger *slog.Logger) *ArchivingSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchivingSource{next: next, archive: archive, log: logger}
}

func (s *ArchivingSource) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
	questions, err := s.next.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	batchID, err := s.archive.Save(ctx, req.Difficulty, questions)
	if err != nil {
		s.log.Error("archive batch failed", "difficulty", req.Difficulty, "count", len(questions), "error", err)
		return questions, nil
	}
	s.log.Debug("archived batch", "batch_id", batchID.String(), "count", len(questions))
	return questions, nil
}
