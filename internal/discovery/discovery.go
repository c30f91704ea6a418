// Package discovery turns a product web page into a draft business case: it
// scrapes the page, summarizes the product and proposes use-case stages, either
// through an LLM or from curated industry benchmarks.
package discovery

import (
	"errors"
	"time"
)

var (
	ErrInvalidURL          = errors.New("invalid url")
	ErrUpstreamStatus      = errors.New("upstream returned non-success status")
	ErrUnparseableResponse = errors.New("failed to parse AI response")
)

type Mode string

const (
	ModeAI       Mode = "ai"
	ModeFallback Mode = "fallback"
)

type ScrapedContent struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Headings    []string `json:"headings"`
	Features    []string `json:"features"`
}

type ProductAnalysis struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	TargetUsers []string  `json:"targetUsers"`
	PainPoints  []string  `json:"painPoints"`
	SourceURL   string    `json:"sourceUrl,omitempty"`
	AnalyzedAt  time.Time `json:"analyzedAt"`
}

func (p *ProductAnalysis) normalize() {
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.TargetUsers == nil {
		p.TargetUsers = []string{}
	}
	if p.PainPoints == nil {
		p.PainPoints = []string{}
	}
}
