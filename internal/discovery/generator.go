package discovery

import (
	"context"
	"time"

	"github.com/MithunXcpu/value-calculator/internal/config"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

const (
	fallbackProductName     = "Unknown Product"
	fallbackDescription     = "Product description not available. Please enter manually."
	fallbackFeatureCount    = 6
	fallbackBaselineHours   = 8
	defaultPeopleAffected   = 5
	analysisContentChars    = 5000
	analysisFeaturesInclude = 15
)

type ContentGenerator interface {
	Mode() Mode
	Analyze(ctx context.Context, content ScrapedContent) (ProductAnalysis, error)
	// GenerateUseCases returns draft stages and the name of the matched industry profile.
	GenerateUseCases(ctx context.Context, product ProductAnalysis, roles []storage.Role) ([]storage.Stage, string, error)
	GenerateRationale(ctx context.Context, stage storage.Stage, product ProductAnalysis) (string, error)
}

// Prompt is one single-turn completion request.
type Prompt struct {
	System    string
	User      string
	MaxTokens int32
	JSON      bool
}

type Completer interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// NewGenerator picks the LLM generator when an API key is configured and a
// completer is available, the benchmark template generator otherwise.
func NewGenerator(cfg config.LLM, completer Completer) ContentGenerator {
	if cfg.APIKey != "" && completer != nil {
		return NewLLMGenerator(completer)
	}
	return NewTemplateGenerator()
}

func clock() time.Time { return time.Now().UTC() }
