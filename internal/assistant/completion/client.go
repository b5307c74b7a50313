// Package completion wraps the Gemini API behind a small interface so the
// chat pipeline can be tested without network access.
package completion

import (
	"context"
	"sync"
	"time"

	"google.golang.org/genai"

	"shoestore-assistant/internal/common/errors"
	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/common/metrics"
)

// Client produces a completion for an assembled prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiClient talks to the Gemini API. The underlying connection is
// created lazily on first use so a missing key surfaces as a per-request
// error instead of failing startup.
type GeminiClient struct {
	apiKey  string
	model   string
	timeout time.Duration
	log     logger.Logger

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGeminiClient(apiKey, model string, timeout time.Duration, log logger.Logger) *GeminiClient {
	return &GeminiClient{apiKey: apiKey, model: model, timeout: timeout, log: log}
}

func (g *GeminiClient) init(ctx context.Context) error {
	g.once.Do(func() {
		if g.apiKey == "" {
			g.initErr = errors.NewCompletionUnavailableError("no API key configured")
			return
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			g.initErr = errors.NewCompletionUnavailableError(err.Error())
			return
		}
		g.client = client
		g.log.Info("completion client initialized", map[string]interface{}{"model": g.model})
	})
	return g.initErr
}

func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := g.init(ctx); err != nil {
		return "", err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", errors.NewCompletionFailedError(err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.NewCompletionFailedError(nil)
	}
	return text, nil
}
