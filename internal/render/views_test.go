package render

import (
	"bytes"
	"strings"
	"testing"

	"programming-quiz/internal/app"
	"programming-quiz/internal/domain"
)

func TestOptionStateFor(t *testing.T) {
	cases := []struct {
		label, selected domain.Label
		revealed        bool
		want            OptionState
	}{
		{domain.LabelA, domain.Unanswered, false, OptionDefault},
		{domain.LabelA, domain.LabelA, false, OptionSelected},
		{domain.LabelB, domain.LabelA, false, OptionDefault},
		{domain.LabelB, domain.LabelA, true, OptionCorrect},
		{domain.LabelA, domain.LabelA, true, OptionIncorrect},
		{domain.LabelC, domain.LabelA, true, OptionDefault},
		{domain.LabelB, domain.LabelB, true, OptionCorrect},
	}
	for _, tc := range cases {
		if got := OptionStateFor(tc.label, tc.selected, tc.revealed, domain.LabelB); got != tc.want {
			t.Fatalf("OptionStateFor(%s, %s, %v) = %s, want %s", tc.label, tc.selected, tc.revealed, got, tc.want)
		}
	}
}

func TestQuestionViewHeaderAndAction(t *testing.T) {
	snap := snapshot([]domain.Label{domain.Unanswered, domain.Unanswered, domain.Unanswered}, 2)
	snap.Pending = domain.LabelA

	view, ok := Question(snap, English)
	if !ok {
		t.Fatalf("expected current question")
	}
	if view.Header != "Question 3 of 3 • Topic 3" {
		t.Fatalf("unexpected header %q", view.Header)
	}
	if !view.CanSubmit || view.ActionLabel != English.SubmitLabel {
		t.Fatalf("expected submit action, got %+v", view)
	}

	snap.Revealed = true
	view, _ = Question(snap, Spanish)
	if view.ActionLabel != Spanish.ViewResultsLabel || view.CanSubmit {
		t.Fatalf("expected view results on last revealed question, got %+v", view)
	}
	if !strings.HasPrefix(view.Header, "Pregunta 3 de 3") {
		t.Fatalf("expected spanish header, got %q", view.Header)
	}
}

func TestQuestionViewSkipsUndefinedTopic(t *testing.T) {
	snap := snapshot([]domain.Label{domain.Unanswered}, 0)
	snap.Questions[0].Topic = "undefined"
	view, _ := Question(snap, English)
	if view.Header != "Question 1 of 1" || view.Topic != "" {
		t.Fatalf("expected topic omitted, got %q / %q", view.Header, view.Topic)
	}
}

func TestProgressView(t *testing.T) {
	snap := snapshot([]domain.Label{domain.LabelA, domain.LabelB, domain.Unanswered, domain.Unanswered}, 1)
	snap.Revealed = true

	view := Progress(snap, English)
	if view.Percent != 25 {
		t.Fatalf("expected 25%%, got %d", view.Percent)
	}
	if view.Score != 2 || view.ScoreLabel != "Score: 2/2" {
		t.Fatalf("unexpected score %d %q", view.Score, view.ScoreLabel)
	}
}

func TestResultsScenario(t *testing.T) {
	// correct labels A, B, C; user answers A, D, C
	snap := snapshot([]domain.Label{domain.LabelA, domain.LabelD, domain.LabelC}, 2)
	snap.Phase = app.PhaseComplete
	snap.Revealed = true

	view := Results(snap, English)
	if view.Score != 2 || view.Total != 3 || view.Percent != 67 {
		t.Fatalf("unexpected score %d/%d %d%%", view.Score, view.Total, view.Percent)
	}
	if view.Tier != TierFair || view.Message != English.TierMessages[TierFair] {
		t.Fatalf("expected fair tier, got %s %q", view.Tier, view.Message)
	}
	second := view.Review[1]
	if second.Correct || second.UserAnswer != domain.LabelD || second.CorrectAnswer != domain.LabelB {
		t.Fatalf("expected question 2 marked incorrect with D vs B, got %+v", second)
	}
	states := map[domain.Label]OptionState{}
	for _, opt := range second.Options {
		states[opt.Label] = opt.State
	}
	if states[domain.LabelB] != OptionCorrect || states[domain.LabelD] != OptionIncorrect || states[domain.LabelA] != OptionDefault {
		t.Fatalf("unexpected review option states %v", states)
	}
}

func TestTierBands(t *testing.T) {
	for pct, want := range map[int]Tier{100: TierExcellent, 80: TierExcellent, 79: TierFair, 60: TierFair, 59: TierPoor, 0: TierPoor} {
		if got := TierFor(pct); got != want {
			t.Fatalf("TierFor(%d) = %s, want %s", pct, got, want)
		}
	}
}

func TestAnswerFeedback(t *testing.T) {
	q := snapshot([]domain.Label{domain.Unanswered, domain.Unanswered}, 0).Questions[1]
	if n := AnswerFeedback(q, domain.LabelB, English); n.Title != English.CorrectTitle {
		t.Fatalf("expected correct notice, got %+v", n)
	}
	n := AnswerFeedback(q, domain.LabelA, English)
	if n.Variant != "destructive" || n.Description != "The correct answer is B: option B2" {
		t.Fatalf("unexpected incorrect notice %+v", n)
	}
}

func TestScreenForPhases(t *testing.T) {
	empty := app.Snapshot{Phase: app.PhaseLoading}
	screen := ScreenFor(empty, 15, English)
	if screen.Welcome == nil || !screen.Welcome.Loading || screen.Welcome.StartLabel != English.LoadingLabel {
		t.Fatalf("expected loading welcome screen, got %+v", screen)
	}
	if screen.Welcome.Meta != "15 questions • AI-generated • Immediate feedback" {
		t.Fatalf("unexpected meta %q", screen.Welcome.Meta)
	}

	inProgress := ScreenFor(snapshot([]domain.Label{domain.Unanswered}, 0), 1, English)
	if inProgress.Question == nil || inProgress.Progress == nil || inProgress.Results != nil {
		t.Fatalf("expected question and progress, got %+v", inProgress)
	}
}

func TestCatalogFor(t *testing.T) {
	if CatalogFor("es-MX").Lang != "es" || CatalogFor("ES").Lang != "es" {
		t.Fatalf("expected spanish catalog")
	}
	if CatalogFor("fr").Lang != "en" || CatalogFor("").Lang != "en" {
		t.Fatalf("expected english fallback")
	}
}

func TestWriteResultsMarksAnswers(t *testing.T) {
	snap := snapshot([]domain.Label{domain.LabelA, domain.LabelD, domain.LabelC}, 2)
	snap.Phase = app.PhaseComplete
	var buf bytes.Buffer
	WriteResults(&buf, Results(snap, English), English)
	out := buf.String()
	if !strings.Contains(out, "2/3 (67%)") {
		t.Fatalf("missing summary in %q", out)
	}
	if !strings.Contains(out, "D. option D2  Your answer") || !strings.Contains(out, "B. option B2  ✓ Correct") {
		t.Fatalf("missing review marks in %q", out)
	}
}

// snapshot builds an in-progress snapshot whose question i has correct label A, B, C, D cycling.
func snapshot(answers []domain.Label, position int) app.Snapshot {
	questions := make([]domain.Question, len(answers))
	for i := range answers {
		n := string(rune('1' + i))
		q, _ := domain.NewQuestion("Topic "+n, "Prompt "+n,
			[4]string{"option A" + n, "option B" + n, "option C" + n, "option D" + n}, domain.Labels[i%4])
		questions[i] = q
	}
	return app.Snapshot{
		Phase:     app.PhaseInProgress,
		Questions: questions,
		Answers:   answers,
		Position:  position,
	}
}
