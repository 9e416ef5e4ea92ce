// internal/llm/client.go
package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	genai "google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model replies with no candidates.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// Completer is the text-completion contract consumed by the pipeline: one
// prompt in, one text response or an error out. No streaming, no multi-turn
// state.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli    *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiClient creates a client bound to one model.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model, logger: logger}, nil
}

// Complete sends a single prompt and returns the model's text response.
func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("LLM request", "model", g.model, "prompt_bytes", len(prompt))

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
