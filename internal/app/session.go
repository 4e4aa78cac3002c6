package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"programming-quiz/internal/domain"
)

// Phase is the coarse lifecycle state of a Session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseLoading
	PhaseInProgress
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseLoading:
		return "loading"
	case PhaseInProgress:
		return "in_progress"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of session state handed to render functions.
type Snapshot struct {
	Phase     Phase
	Questions []domain.Question
	Answers   []domain.Label
	Position  int
	Pending   domain.Label
	Revealed  bool
}

// Total is the batch size N.
func (s Snapshot) Total() int { return len(s.Questions) }

// Current returns the question at Position, if any.
func (s Snapshot) Current() (domain.Question, bool) {
	if s.Position < 0 || s.Position >= len(s.Questions) {
		return domain.Question{}, false
	}
	return s.Questions[s.Position], true
}

// CurrentScore counts correct answers before Position, plus the current question once revealed.
func (s Snapshot) CurrentScore() int {
	limit := s.Position
	if s.Revealed {
		limit++
	}
	return countCorrect(s.Questions, s.Answers, limit)
}

// FinalScore counts correct answers across the whole batch.
func (s Snapshot) FinalScore() int {
	return countCorrect(s.Questions, s.Answers, len(s.Questions))
}

func countCorrect(questions []domain.Question, answers []domain.Label, limit int) int {
	if limit > len(answers) {
		limit = len(answers)
	}
	score := 0
	for i := 0; i < limit; i++ {
		if questions[i].IsCorrect(answers[i]) {
			score++
		}
	}
	return score
}

// Session is a single user's quiz run. It owns all quiz state and is the only writer of it.
type Session struct {
	source  QuestionSource
	request domain.GenerationRequest
	log     *slog.Logger

	mu        sync.Mutex
	phase     Phase
	questions []domain.Question
	answers   []domain.Label
	position  int
	pending   domain.Label
	revealed  bool
}

// NewSession creates an empty session that draws batches of req.Count questions from source.
func NewSession(source QuestionSource, req domain.GenerationRequest, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{source: source, request: req.WithDefaults(), log: logger}
}

// Start requests one batch and moves the session to InProgress. On failure the session
// returns to NotStarted with nothing stored and a *domain.GenerationError is returned.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.phase {
	case PhaseNotStarted:
	case PhaseLoading:
		s.mu.Unlock()
		return domain.ErrStartInFlight
	default:
		phase := s.phase
		s.mu.Unlock()
		return fmt.Errorf("start from %s: %w", phase, domain.ErrInvalidPhase)
	}
	s.phase = PhaseLoading
	req := s.request
	s.mu.Unlock()

	questions, err := s.source.Generate(ctx, req)
	if err == nil && len(questions) != req.Count {
		err = domain.MalformedResponseError(
			fmt.Sprintf("expected %d questions, got %d", req.Count, len(questions)), nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.resetLocked()
		genErr := domain.AsGenerationError(err)
		s.log.Error("quiz start failed", "kind", genErr.Kind.String(), "error", genErr)
		return genErr
	}
	s.questions = questions
	s.answers = make([]domain.Label, len(questions))
	s.position = 0
	s.pending = domain.Unanswered
	s.revealed = false
	s.phase = PhaseInProgress
	s.log.Info("quiz started", "questions", len(questions), "difficulty", req.Difficulty)
	return nil
}

// SelectOption stores a pending choice for the current question.
func (s *Session) SelectOption(label domain.Label) error {
	if !label.Valid() {
		return domain.ErrInvalidLabel
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress {
		return fmt.Errorf("select from %s: %w", s.phase, domain.ErrInvalidPhase)
	}
	if s.revealed {
		return domain.ErrAlreadyRevealed
	}
	s.pending = label
	return nil
}

// SubmitAnswer commits the pending choice for the current question and reveals it.
// Submitting again after reveal records the same answer.
func (s *Session) SubmitAnswer() (domain.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress {
		return domain.Unanswered, fmt.Errorf("submit from %s: %w", s.phase, domain.ErrInvalidPhase)
	}
	if s.pending == domain.Unanswered {
		return domain.Unanswered, domain.ErrNoPendingChoice
	}
	s.answers[s.position] = s.pending
	s.revealed = true
	return s.pending, nil
}

// NextQuestion advances past a revealed question, completing the quiz after the last one.
func (s *Session) NextQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress {
		return fmt.Errorf("next from %s: %w", s.phase, domain.ErrInvalidPhase)
	}
	if !s.revealed {
		return domain.ErrNotRevealed
	}
	if s.position < len(s.questions)-1 {
		s.position++
		s.pending = domain.Unanswered
		s.revealed = false
		return nil
	}
	s.phase = PhaseComplete
	s.log.Info("quiz complete", "score", countCorrect(s.questions, s.answers, len(s.questions)), "total", len(s.questions))
	return nil
}

// Restart clears the session back to NotStarted.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress && s.phase != PhaseComplete {
		return fmt.Errorf("restart from %s: %w", s.phase, domain.ErrInvalidPhase)
	}
	s.resetLocked()
	return nil
}

// Phase returns the current lifecycle state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CurrentScore is the running score; see Snapshot.CurrentScore.
func (s *Session) CurrentScore() int {
	return s.Snapshot().CurrentScore()
}

// FinalScore is the score over all questions. It is only meaningful once complete.
func (s *Session) FinalScore() int {
	return s.Snapshot().FinalScore()
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Phase:    s.phase,
		Position: s.position,
		Pending:  s.pending,
		Revealed: s.revealed,
	}
	if s.questions != nil {
		snap.Questions = append([]domain.Question(nil), s.questions...)
		snap.Answers = append([]domain.Label(nil), s.answers...)
	}
	return snap
}

func (s *Session) resetLocked() {
	s.phase = PhaseNotStarted
	s.questions = nil
	s.answers = nil
	s.position = 0
	s.pending = domain.Unanswered
	s.revealed = false
}
