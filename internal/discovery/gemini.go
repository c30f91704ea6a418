package discovery

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/MithunXcpu/value-calculator/internal/config"
)

const defaultModel = "gemini-2.5-flash"

// GeminiCompleter sends prompts to the Gemini API.
type GeminiCompleter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiCompleter(ctx context.Context, cfg config.LLM) (*GeminiCompleter, error) {
	const op = "discovery.NewGeminiCompleter"

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: api key is not set", op)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &GeminiCompleter{client: client, model: model, timeout: cfg.Timeout}, nil
}

func (g *GeminiCompleter) Complete(ctx context.Context, p Prompt) (string, error) {
	const op = "discovery.GeminiCompleter.Complete"

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
	}
	if p.MaxTokens > 0 {
		cfg.MaxOutputTokens = p.MaxTokens
	}
	if p.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	if p.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: p.System}},
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.User), cfg)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return result.Text(), nil
}
