package render

import (
	"fmt"
	"io"
	"strings"
)

var stateMarks = map[OptionState]string{
	OptionDefault:   "   ",
	OptionSelected:  "[>]",
	OptionCorrect:   "[✓]",
	OptionIncorrect: "[✗]",
}

// WriteWelcome prints the title screen.
func WriteWelcome(w io.Writer, v WelcomeView) {
	fmt.Fprintln(w, v.Title)
	fmt.Fprintf(w, "%s\n\n", v.Description)
	for _, topic := range v.Topics {
		fmt.Fprintf(w, " - %s\n", topic)
	}
	fmt.Fprintf(w, "\n%s\n", v.Meta)
}

// WriteQuestion prints a question view for a terminal.
func WriteQuestion(w io.Writer, v QuestionView) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, v.Header)
	fmt.Fprintf(w, "%s\n\n", v.Prompt)
	for _, opt := range v.Options {
		fmt.Fprintf(w, "%s %s. %s\n", stateMarks[opt.State], opt.Label, opt.Text)
	}
	fmt.Fprintln(w)
}

// WriteProgress prints a one-line progress bar with the running score.
func WriteProgress(w io.Writer, v ProgressView) {
	const width = 20
	filled := v.Percent * width / 100
	fmt.Fprintf(w, "%s [%s%s] %d%%  %s\n", v.Label,
		strings.Repeat("#", filled), strings.Repeat("-", width-filled), v.Percent, v.ScoreLabel)
}

// WriteNotice prints a notice as a two-line block.
func WriteNotice(w io.Writer, n Notice) {
	fmt.Fprintf(w, "%s\n%s\n", n.Title, n.Description)
}

// WriteResults prints the summary and the review of every question.
func WriteResults(w io.Writer, v ResultsView, cat Catalog) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, v.Title)
	fmt.Fprintf(w, "%d/%d (%d%%)\n%s\n\n", v.Score, v.Total, v.Percent, v.Message)
	fmt.Fprintln(w, v.ReviewTitle)
	for _, item := range v.Review {
		mark := "✗"
		if item.Correct {
			mark = "✓"
		}
		fmt.Fprintf(w, "\n%s %s\n%s\n", mark, item.Header, item.Prompt)
		for _, opt := range item.Options {
			suffix := ""
			switch opt.State {
			case OptionCorrect:
				suffix = "  " + cat.CorrectMark
			case OptionIncorrect:
				suffix = "  " + cat.YourAnswerMark
			}
			fmt.Fprintf(w, "   %s. %s%s\n", opt.Label, opt.Text, suffix)
		}
	}
}
