package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"programming-quiz/internal/domain"
	"programming-quiz/internal/wire"
)

// Bank serves batches drawn at random from archived questions.
type Bank struct {
	pool *pgxpool.Pool
}

func NewBank(pool *pgxpool.Pool) *Bank {
	return &Bank{pool: pool}
}

func (b *Bank) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
	req = req.WithDefaults()
	rows, err := b.pool.Query(ctx,
		`SELECT topic, prompt, options, answer FROM questions WHERE difficulty = $1 ORDER BY random() LIMIT $2`,
		req.Difficulty, req.Count)
	if err != nil {
		return nil, domain.UpstreamError("query question bank", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0, req.Count)
	for rows.Next() {
		var (
			wq      wire.Question
			options []byte
		)
		if err := rows.Scan(&wq.Topic, &wq.Question, &options, &wq.Answer); err != nil {
			return nil, domain.UpstreamError("scan question bank", err)
		}
		wq.Options = &wire.Options{}
		if err := json.Unmarshal(options, wq.Options); err != nil {
			return nil, domain.MalformedResponseError("decode stored options", err)
		}
		q, err := wire.ToDomain(len(questions), wq)
		if err != nil {
			return nil, domain.MalformedResponseError("invalid stored question", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.UpstreamError("read question bank", err)
	}
	if len(questions) < req.Count {
		return nil, domain.ConfigurationError(
			fmt.Sprintf("question bank has %d %s questions, need %d", len(questions), req.Difficulty, req.Count), nil)
	}
	return questions, nil
}
