// Package wire holds the JSON shapes exchanged with the question generation
// function and the all-or-nothing validation applied to incoming batches.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"programming-quiz/internal/domain"
)

var (
	// ErrNotJSON means the payload could not be parsed at all.
	ErrNotJSON = errors.New("invalid JSON format")
	// ErrMissingQuestions means the payload has no questions array.
	ErrMissingQuestions = errors.New("invalid questions format: expected array of questions")
)

// FieldError reports the first invalid element of a batch.
type FieldError struct {
	Index int
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid question format at index %d: missing or invalid %s", e.Index, e.Field)
}

// Options is the label-keyed option object used on the wire.
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

func (o Options) texts() [4]string {
	return [4]string{o.A, o.B, o.C, o.D}
}

// Question is the wire form of a single question.
type Question struct {
	Topic    string   `json:"topic"`
	Question string   `json:"question"`
	Options  *Options `json:"options"`
	Answer   string   `json:"answer"`
}

// Batch is the success body of the generation function.
type Batch struct {
	Questions []Question `json:"questions"`
}

// ErrorBody is the failure body of the generation function.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Request is the generation function's request body.
type Request struct {
	Difficulty string `json:"difficulty,omitempty"`
	Count      int    `json:"count,omitempty"`
}

// FromDomain converts validated questions to their wire form.
func FromDomain(questions []domain.Question) Batch {
	out := Batch{Questions: make([]Question, 0, len(questions))}
	for _, q := range questions {
		out.Questions = append(out.Questions, Question{
			Topic:    q.Topic,
			Question: q.Prompt,
			Options: &Options{
				A: q.Options[0].Text,
				B: q.Options[1].Text,
				C: q.Options[2].Text,
				D: q.Options[3].Text,
			},
			Answer: string(q.Correct),
		})
	}
	return out
}

// DecodeBatch parses and validates a batch. Any invalid element rejects the whole batch.
func DecodeBatch(data []byte) ([]domain.Question, error) {
	var envelope struct {
		Questions json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	raw := bytes.TrimSpace(envelope.Questions)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrMissingQuestions
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, ErrMissingQuestions
	}

	questions := make([]domain.Question, 0, len(elements))
	for i, element := range elements {
		var wq Question
		if err := json.Unmarshal(element, &wq); err != nil {
			return nil, &FieldError{Index: i, Field: "question object"}
		}
		q, err := ToDomain(i, wq)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// ToDomain validates element i of a batch and converts it.
func ToDomain(i int, wq Question) (domain.Question, error) {
	switch {
	case wq.Topic == "":
		return domain.Question{}, &FieldError{Index: i, Field: "topic"}
	case wq.Question == "":
		return domain.Question{}, &FieldError{Index: i, Field: "question"}
	case wq.Options == nil:
		return domain.Question{}, &FieldError{Index: i, Field: "options"}
	case wq.Answer == "":
		return domain.Question{}, &FieldError{Index: i, Field: "answer"}
	}
	texts := wq.Options.texts()
	for idx, text := range texts {
		if text == "" {
			return domain.Question{}, &FieldError{Index: i, Field: "options." + string(domain.Labels[idx])}
		}
	}
	answer, err := domain.ParseLabel(wq.Answer)
	if err != nil {
		return domain.Question{}, &FieldError{Index: i, Field: "answer"}
	}
	return domain.NewQuestion(wq.Topic, wq.Question, texts, answer)
}
