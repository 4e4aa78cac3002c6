package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"programming-quiz/internal/app"
	"programming-quiz/internal/config"
	"programming-quiz/internal/domain"
)

func TestBaseSourceRequiresBackends(t *testing.T) {
	cases := map[string]func(*config.Config){
		"bank":    func(c *config.Config) { c.Generator.Source = "bank" },
		"remote":  func(c *config.Config) { c.Generator.Source = "remote" },
		"unknown": func(c *config.Config) { c.Generator.Source = "carrier-pigeon" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			var cfg config.Config
			mutate(&cfg)
			if _, err := baseSource(cfg, nil, quietLogger()); err == nil {
				t.Fatalf("expected error for source %q", cfg.Generator.Source)
			}
		})
	}
}

func TestBuildStackWithoutAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	var cfg config.Config
	cfg.Cache.TTL = "0"

	st, err := buildStack(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("build stack: %v", err)
	}
	defer st.Close()

	_, err = st.service.Generate(context.Background(), domain.GenerationRequest{Count: 3})
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != domain.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(genErr.Error(), "GEMINI_API_KEY") {
		t.Fatalf("expected api key hint, got %q", genErr.Error())
	}
}

func TestDefaultCacheGivesFreshBatchPerStart(t *testing.T) {
	calls := 0
	source := app.QuestionSourceFunc(func(_ context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
		calls++
		out := make([]domain.Question, req.Count)
		for i := range out {
			out[i], _ = domain.NewQuestion("Loops", fmt.Sprintf("batch %d q %d", calls, i),
				[4]string{"for", "if", "return", "var"}, domain.LabelA)
		}
		return out, nil
	})
	cached, ttl := cachedSource(config.Config{}, nil, source, quietLogger())
	if ttl != 0 {
		t.Fatalf("expected batch storing off by default, ttl=%s", ttl)
	}
	service := app.NewGenerationService(cached, quietLogger())
	req := domain.GenerationRequest{Count: 1}

	session := app.NewSession(service, req, quietLogger())
	first := startedPrompt(t, session)
	if err := session.SelectOption(domain.LabelA); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := session.SubmitAnswer(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := session.NextQuestion(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if err := session.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	afterRestart := startedPrompt(t, session)
	other := startedPrompt(t, app.NewSession(service, req, quietLogger()))

	if first == afterRestart || afterRestart == other || calls != 3 {
		t.Fatalf("expected a fresh batch per start, got %q %q %q calls=%d", first, afterRestart, other, calls)
	}
}

func startedPrompt(t *testing.T, session *app.Session) string {
	t.Helper()
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	q, _ := session.Snapshot().Current()
	return q.Prompt
}

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"start", "migrate", "play", "generate"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("expected %s command, got %v %v", name, cmd, err)
		}
	}
}
