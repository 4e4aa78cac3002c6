package domain

import (
	"strings"
	"unicode"
)

// Label identifies one of the four answer options. The zero Label means unanswered.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"

	Unanswered Label = ""
)

// Labels lists the option labels in display order.
var Labels = [4]Label{LabelA, LabelB, LabelC, LabelD}

// ParseLabel accepts "a".."d" in any case, with surrounding whitespace.
func ParseLabel(raw string) (Label, error) {
	l := Label(strings.ToUpper(strings.TrimSpace(raw)))
	if !l.Valid() {
		return Unanswered, ErrInvalidLabel
	}
	return l, nil
}

// Valid reports whether l is one of A, B, C, D.
func (l Label) Valid() bool {
	return l.Index() >= 0
}

// Index returns the position of l in Labels, or -1.
func (l Label) Index() int {
	for i, candidate := range Labels {
		if candidate == l {
			return i
		}
	}
	return -1
}

// Option is a single labelled answer.
type Option struct {
	Label Label  `json:"label"`
	Text  string `json:"text"`
}

// Question is a multiple-choice question with exactly four options ordered A..D.
type Question struct {
	Topic   string    `json:"topic"`
	Prompt  string    `json:"prompt"`
	Options [4]Option `json:"options"`
	Correct Label     `json:"correct"`
}

// NewQuestion builds a question from option texts given in A..D order.
func NewQuestion(topic, prompt string, texts [4]string, correct Label) (Question, error) {
	if !correct.Valid() {
		return Question{}, ErrInvalidLabel
	}
	q := Question{Topic: topic, Prompt: prompt, Correct: correct}
	for i, label := range Labels {
		q.Options[i] = Option{Label: label, Text: texts[i]}
	}
	return q, nil
}

// Option returns the option carrying label l.
func (q Question) Option(l Label) (Option, bool) {
	i := l.Index()
	if i < 0 {
		return Option{}, false
	}
	return q.Options[i], true
}

// CorrectOption returns the option marked as the right answer.
func (q Question) CorrectOption() Option {
	opt, _ := q.Option(q.Correct)
	return opt
}

// IsCorrect reports whether answer matches the correct label. Unanswered is never correct.
func (q Question) IsCorrect(answer Label) bool {
	return answer != Unanswered && answer == q.Correct
}

const (
	DefaultDifficulty = "beginner"
	DefaultCount      = 15
	MaxCount          = 50
	MaxDifficultyLen  = 32
)

// GenerationRequest asks a question source for a batch.
type GenerationRequest struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// WithDefaults fills an empty difficulty and a zero count.
func (r GenerationRequest) WithDefaults() GenerationRequest {
	if strings.TrimSpace(r.Difficulty) == "" {
		r.Difficulty = DefaultDifficulty
	}
	if r.Count == 0 {
		r.Count = DefaultCount
	}
	return r
}

// Validate checks the count bounds and that difficulty is a short plain word or phrase.
func (r GenerationRequest) Validate() error {
	if r.Count < 1 || r.Count > MaxCount {
		return ErrInvalidCount
	}
	if len(r.Difficulty) > MaxDifficultyLen {
		return ErrInvalidDifficulty
	}
	for _, ch := range r.Difficulty {
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != ' ' && ch != '-' && ch != '_' {
			return ErrInvalidDifficulty
		}
	}
	return nil
}

// DefaultTopics are the subjects questions are distributed across.
var DefaultTopics = []string{
	"Basic data structures (arrays, lists, variables)",
	"Basic JavaScript (variables, loops, functions)",
	"Basic logic (if statements, comparisons)",
}
