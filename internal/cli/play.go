package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"programming-quiz/internal/app"
	"programming-quiz/internal/config"
	"programming-quiz/internal/domain"
	"programming-quiz/internal/infra/logger"
	"programming-quiz/internal/render"
)

// NewPlayCmd runs a quiz session in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		difficulty string
		count      int
		lang       string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			log := logger.New(cmd.ErrOrStderr(), cfg.Log.Format, firstNonEmpty(cfg.Log.Level, "warn"))

			st, err := buildStack(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer st.Close()

			req := domain.GenerationRequest{
				Difficulty: firstNonEmpty(difficulty, cfg.Quiz.Difficulty),
				Count:      count,
			}
			if req.Count == 0 {
				req.Count = cfg.Quiz.Count
			}
			cat := render.CatalogFor(firstNonEmpty(lang, cfg.Quiz.Language))
			session := app.NewSession(st.service, req, log)
			return play(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), session, req.WithDefaults().Count, cat, log)
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "question difficulty (default from config or beginner)")
	cmd.Flags().IntVar(&count, "count", 0, "number of questions (default from config or 15)")
	cmd.Flags().StringVar(&lang, "lang", "", "interface language: en or es")
	return cmd
}

// play drives session from line-oriented input until the player declines a restart or input ends.
// A failed start shows a notice and returns to the welcome screen.
func play(ctx context.Context, in io.Reader, out io.Writer, session *app.Session, count int, cat render.Catalog, log *slog.Logger) error {
	scanner := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		screen := render.ScreenFor(session.Snapshot(), count, cat)
		render.WriteWelcome(out, *screen.Welcome)
		fmt.Fprintf(out, "\n[Enter] %s\n", screen.Welcome.StartLabel)
		if _, ok := readLine(); !ok {
			return nil
		}
		fmt.Fprintln(out, cat.LoadingLabel)

		if err := session.Start(ctx); err != nil {
			log.Warn("start failed", "error", err)
			render.WriteNotice(out, render.StartFailedNotice(cat))
			fmt.Fprintln(out)
			continue
		}
		render.WriteNotice(out, render.StartedNotice(cat))

		for session.Phase() == app.PhaseInProgress {
			snap := session.Snapshot()
			render.WriteProgress(out, render.Progress(snap, cat))
			view, _ := render.Question(snap, cat)
			render.WriteQuestion(out, view)

			fmt.Fprint(out, "A/B/C/D> ")
			line, ok := readLine()
			if !ok {
				return nil
			}
			label, err := domain.ParseLabel(line)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if err := session.SelectOption(label); err != nil {
				return err
			}
			answer, err := session.SubmitAnswer()
			if err != nil {
				return err
			}

			snap = session.Snapshot()
			q, _ := snap.Current()
			render.WriteNotice(out, render.AnswerFeedback(q, answer, cat))
			view, _ = render.Question(snap, cat)
			fmt.Fprintf(out, "[Enter] %s\n", view.ActionLabel)
			if _, ok := readLine(); !ok {
				return nil
			}
			if err := session.NextQuestion(); err != nil {
				return err
			}
		}

		render.WriteResults(out, render.Results(session.Snapshot(), cat), cat)
		fmt.Fprintf(out, "\n%s? [y/N] ", cat.RestartLabel)
		line, ok := readLine()
		if !ok || !strings.EqualFold(line, "y") {
			return nil
		}
		if err := session.Restart(); err != nil {
			return err
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
