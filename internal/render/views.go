// Package render turns session snapshots into view models for the front-ends.
// Everything here is a pure function of app.Snapshot and a Catalog.
package render

import (
	"fmt"
	"math"

	"programming-quiz/internal/app"
	"programming-quiz/internal/domain"
)

// OptionState is the visual state of a single answer option.
type OptionState string

const (
	OptionDefault   OptionState = "default"
	OptionSelected  OptionState = "selected"
	OptionCorrect   OptionState = "correct"
	OptionIncorrect OptionState = "incorrect"
)

// OptionStateFor derives the state of option label. Before reveal only the selection shows;
// after reveal the correct option and a wrong selection are marked.
func OptionStateFor(label, selected domain.Label, revealed bool, correct domain.Label) OptionState {
	if !revealed {
		if selected != domain.Unanswered && label == selected {
			return OptionSelected
		}
		return OptionDefault
	}
	if label == correct {
		return OptionCorrect
	}
	if label == selected {
		return OptionIncorrect
	}
	return OptionDefault
}

type OptionView struct {
	Label domain.Label `json:"label"`
	Text  string       `json:"text"`
	State OptionState  `json:"state"`
}

type QuestionView struct {
	Number      int          `json:"number"`
	Total       int          `json:"total"`
	Header      string       `json:"header"`
	Topic       string       `json:"topic,omitempty"`
	Prompt      string       `json:"prompt"`
	Options     []OptionView `json:"options"`
	Revealed    bool         `json:"revealed"`
	CanSubmit   bool         `json:"canSubmit"`
	ActionLabel string       `json:"actionLabel"`
}

// Question renders the current question, or false when there is none.
func Question(snap app.Snapshot, cat Catalog) (QuestionView, bool) {
	q, ok := snap.Current()
	if !ok {
		return QuestionView{}, false
	}
	view := QuestionView{
		Number:    snap.Position + 1,
		Total:     snap.Total(),
		Prompt:    q.Prompt,
		Revealed:  snap.Revealed,
		CanSubmit: !snap.Revealed && snap.Pending != domain.Unanswered,
		Options:   optionViews(q, snap.Pending, snap.Revealed),
	}
	view.Header = fmt.Sprintf(cat.QuestionHeader, view.Number, view.Total)
	if q.Topic != "" && q.Topic != "undefined" {
		view.Topic = q.Topic
		view.Header += " • " + q.Topic
	}
	switch {
	case !snap.Revealed:
		view.ActionLabel = cat.SubmitLabel
	case snap.Position < snap.Total()-1:
		view.ActionLabel = cat.NextLabel
	default:
		view.ActionLabel = cat.ViewResultsLabel
	}
	return view, true
}

func optionViews(q domain.Question, selected domain.Label, revealed bool) []OptionView {
	views := make([]OptionView, 0, len(q.Options))
	for _, opt := range q.Options {
		views = append(views, OptionView{
			Label: opt.Label,
			Text:  opt.Text,
			State: OptionStateFor(opt.Label, selected, revealed, q.Correct),
		})
	}
	return views
}

type ProgressView struct {
	Current    int    `json:"current"`
	Total      int    `json:"total"`
	Percent    int    `json:"percent"`
	Score      int    `json:"score"`
	Label      string `json:"label"`
	ScoreLabel string `json:"scoreLabel"`
}

// Progress reports position/N as a percentage alongside the running score.
func Progress(snap app.Snapshot, cat Catalog) ProgressView {
	total := snap.Total()
	view := ProgressView{
		Current: snap.Position + 1,
		Total:   total,
		Score:   snap.CurrentScore(),
		Label:   cat.ProgressLabel,
	}
	view.Percent = percent(snap.Position, total)
	view.ScoreLabel = fmt.Sprintf(cat.ScoreLabel, view.Score, view.Current)
	return view
}

// Tier is the qualitative band of a final score.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// TierFor bands a percentage at 80 and 60.
func TierFor(pct int) Tier {
	switch {
	case pct >= 80:
		return TierExcellent
	case pct >= 60:
		return TierFair
	default:
		return TierPoor
	}
}

type ReviewItem struct {
	Number        int          `json:"number"`
	Header        string       `json:"header"`
	Prompt        string       `json:"prompt"`
	UserAnswer    domain.Label `json:"userAnswer"`
	UserText      string       `json:"userText"`
	CorrectAnswer domain.Label `json:"correctAnswer"`
	CorrectText   string       `json:"correctText"`
	Correct       bool         `json:"correct"`
	Options       []OptionView `json:"options"`
}

type ResultsView struct {
	Title        string       `json:"title"`
	Score        int          `json:"score"`
	Total        int          `json:"total"`
	Percent      int          `json:"percent"`
	Tier         Tier         `json:"tier"`
	Message      string       `json:"message"`
	RestartLabel string       `json:"restartLabel"`
	ReviewTitle  string       `json:"reviewTitle"`
	Review       []ReviewItem `json:"review"`
}

// Results renders the final score and a per-question review.
func Results(snap app.Snapshot, cat Catalog) ResultsView {
	score := snap.FinalScore()
	total := snap.Total()
	view := ResultsView{
		Title:        cat.ResultsTitle,
		Score:        score,
		Total:        total,
		Percent:      percent(score, total),
		RestartLabel: cat.RestartLabel,
		ReviewTitle:  cat.ReviewTitle,
		Review:       make([]ReviewItem, 0, total),
	}
	view.Tier = TierFor(view.Percent)
	view.Message = cat.TierMessages[view.Tier]

	for i, q := range snap.Questions {
		var answer domain.Label
		if i < len(snap.Answers) {
			answer = snap.Answers[i]
		}
		item := ReviewItem{
			Number:        i + 1,
			Header:        fmt.Sprintf(cat.ReviewHeader, i+1),
			Prompt:        q.Prompt,
			UserAnswer:    answer,
			UserText:      cat.Unanswered,
			CorrectAnswer: q.Correct,
			CorrectText:   q.CorrectOption().Text,
			Correct:       q.IsCorrect(answer),
			Options:       optionViews(q, answer, true),
		}
		if q.Topic != "" && q.Topic != "undefined" {
			item.Header += " • " + q.Topic
		}
		if opt, ok := q.Option(answer); ok {
			item.UserText = opt.Text
		}
		view.Review = append(view.Review, item)
	}
	return view
}

// Notice is a transient notification (toast).
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// AnswerFeedback reports whether answer was right for q.
func AnswerFeedback(q domain.Question, answer domain.Label, cat Catalog) Notice {
	if q.IsCorrect(answer) {
		return Notice{Title: cat.CorrectTitle, Description: cat.CorrectBody, Variant: "default"}
	}
	correct := q.CorrectOption()
	return Notice{
		Title:       cat.IncorrectTitle,
		Description: fmt.Sprintf(cat.IncorrectBody, correct.Label, correct.Text),
		Variant:     "destructive",
	}
}

func StartedNotice(cat Catalog) Notice {
	return Notice{Title: cat.StartedTitle, Description: cat.StartedBody, Variant: "default"}
}

func StartFailedNotice(cat Catalog) Notice {
	return Notice{Title: cat.StartFailedTitle, Description: cat.StartFailedBody, Variant: "destructive"}
}

type WelcomeView struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
	Meta        string   `json:"meta"`
	StartLabel  string   `json:"startLabel"`
	Loading     bool     `json:"loading"`
}

// Screen is everything a front-end needs to draw the current phase.
type Screen struct {
	Phase    string        `json:"phase"`
	Welcome  *WelcomeView  `json:"welcome,omitempty"`
	Question *QuestionView `json:"question,omitempty"`
	Progress *ProgressView `json:"progress,omitempty"`
	Results  *ResultsView  `json:"results,omitempty"`
}

// ScreenFor picks the view for the snapshot's phase. count is the configured batch size,
// shown on the welcome screen before any question exists.
func ScreenFor(snap app.Snapshot, count int, cat Catalog) Screen {
	screen := Screen{Phase: snap.Phase.String()}
	switch snap.Phase {
	case app.PhaseNotStarted, app.PhaseLoading:
		w := &WelcomeView{
			Title:       cat.Title,
			Description: cat.Description,
			Topics:      domain.DefaultTopics,
			Meta:        fmt.Sprintf(cat.Meta, count),
			StartLabel:  cat.StartLabel,
			Loading:     snap.Phase == app.PhaseLoading,
		}
		if w.Loading {
			w.StartLabel = cat.LoadingLabel
		}
		screen.Welcome = w
	case app.PhaseInProgress:
		if q, ok := Question(snap, cat); ok {
			screen.Question = &q
		}
		p := Progress(snap, cat)
		screen.Progress = &p
	case app.PhaseComplete:
		r := Results(snap, cat)
		screen.Results = &r
	}
	return screen
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
