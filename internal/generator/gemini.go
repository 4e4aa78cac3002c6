// Package generator asks an LLM for question batches and validates what comes back.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"programming-quiz/internal/domain"
	"programming-quiz/internal/wire"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultModel   = "gemini-2.0-flash"
)

// Config holds model connection and sampling settings. Zero values take defaults.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	TopK        int
	TopP        float64
	MaxTokens   int
	Timeout     time.Duration
	Topics      []string
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	if c.TopK == 0 {
		c.TopK = 40
	}
	if c.TopP == 0 {
		c.TopP = 0.95
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 4096
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	if len(c.Topics) == 0 {
		c.Topics = domain.DefaultTopics
	}
	return c
}

// Gemini generates batches through an OpenAI-compatible chat completion endpoint.
type Gemini struct {
	cfg Config
	llm llms.Model
	log *slog.Logger
}

// New builds the generator. A missing API key is not an error here: every Generate call
// then fails with a configuration error, so the process keeps serving.
func New(cfg Config, logger *slog.Logger) (*Gemini, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	g := &Gemini{cfg: cfg, log: logger}
	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not configured; generation requests will fail")
		return g, nil
	}
	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	g.llm = llm
	return g, nil
}

func (g *Gemini) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
	if g.llm == nil {
		return nil, domain.ConfigurationError("GEMINI_API_KEY not configured", nil)
	}
	req = req.WithDefaults()

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	prompt := BuildPrompt(req.Difficulty, req.Count, g.cfg.Topics)
	text, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(g.cfg.Temperature),
		llms.WithTopK(g.cfg.TopK),
		llms.WithTopP(g.cfg.TopP),
		llms.WithMaxTokens(g.cfg.MaxTokens),
	)
	if err != nil {
		g.log.Error("llm request failed", "model", g.cfg.Model, "error", err)
		return nil, domain.UpstreamError("Gemini API error", err)
	}
	if strings.TrimSpace(text) == "" {
		g.log.Error("llm returned no content", "model", g.cfg.Model)
		return nil, domain.MalformedResponseError("No content generated from Gemini API", nil)
	}

	questions, err := wire.DecodeBatch([]byte(StripFences(text)))
	if err != nil {
		g.log.Error("llm output rejected", "error", err, "generated", text)
		return nil, domain.MalformedResponseError("Invalid questions from AI response", err)
	}
	return questions, nil
}
