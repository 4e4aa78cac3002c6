package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"programming-quiz/internal/domain"
	"programming-quiz/internal/wire"
)

// Client calls a remote generation function and validates its response.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{url: url, http: &http.Client{Timeout: timeout}}
}

func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
	if c.url == "" {
		return nil, domain.ConfigurationError("remote generation url not configured", nil)
	}
	payload, err := json.Marshal(wire.Request{Difficulty: req.Difficulty, Count: req.Count})
	if err != nil {
		return nil, domain.ConfigurationError("encode generation request", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.ConfigurationError("build generation request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, domain.UpstreamError("generation function unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.UpstreamError("read generation response", err)
	}
	if resp.StatusCode != http.StatusOK {
		var envelope wire.ErrorBody
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			return nil, domain.UpstreamError(envelope.Error, fmt.Errorf("status %d: %s", resp.StatusCode, envelope.Details))
		}
		return nil, domain.UpstreamError("generation function failed", fmt.Errorf("status %d", resp.StatusCode))
	}

	questions, err := wire.DecodeBatch(body)
	if err != nil {
		return nil, domain.MalformedResponseError("invalid questions from generation function", err)
	}
	return questions, nil
}
