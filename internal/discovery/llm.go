package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MithunXcpu/value-calculator/internal/benchmarks"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

const (
	analyzeSystem = `You are a product analyst. Given scraped website content, extract a structured analysis of the product/service. Be concise and specific. Return ONLY valid JSON with no markdown formatting.`

	useCasesSystem = `You are a business value consultant specializing in ROI analysis. Generate realistic use cases showing how a product saves time and money. Each use case should describe a specific workflow, not a generic benefit. Return ONLY valid JSON with no markdown formatting.`

	rationaleSystem = `You are a business value consultant. Write a concise, data-driven rationale for a specific use case in an ROI analysis. The rationale should be 2-3 sentences, cite industry benchmarks, and be persuasive for a CFO audience. Return plain text only, no JSON.`
)

// LLMGenerator asks a language model for the analysis, use cases and rationale.
type LLMGenerator struct {
	completer Completer
	fallback  *TemplateGenerator
	now       func() time.Time
}

func NewLLMGenerator(completer Completer) *LLMGenerator {
	return &LLMGenerator{completer: completer, fallback: NewTemplateGenerator(), now: clock}
}

func (g *LLMGenerator) Mode() Mode { return ModeAI }

func (g *LLMGenerator) Analyze(ctx context.Context, content ScrapedContent) (ProductAnalysis, error) {
	const op = "discovery.LLMGenerator.Analyze"

	text, err := g.completer.Complete(ctx, Prompt{
		System:    analyzeSystem,
		User:      analyzePrompt(content),
		MaxTokens: 1024,
		JSON:      true,
	})
	if err != nil {
		return ProductAnalysis{}, fmt.Errorf("%s: %w", op, err)
	}

	var analysis ProductAnalysis
	if err := parseObject(text, &analysis); err != nil {
		return ProductAnalysis{}, fmt.Errorf("%s: %w", op, err)
	}

	analysis.SourceURL = content.URL
	analysis.AnalyzedAt = g.now()
	analysis.normalize()

	return analysis, nil
}

type rawUseCase struct {
	Name            string                   `json:"name"`
	Workflow        string                   `json:"workflow"`
	Assumptions     string                   `json:"assumptions"`
	Rationale       string                   `json:"rationale"`
	RoleAllocations []storage.RoleAllocation `json:"roleAllocations"`
	PeopleAffected  int                      `json:"peopleAffected"`
}

func (g *LLMGenerator) GenerateUseCases(ctx context.Context, product ProductAnalysis, roles []storage.Role) ([]storage.Stage, string, error) {
	const op = "discovery.LLMGenerator.GenerateUseCases"

	profile, list := benchmarks.Relevant(productText(product), benchmarks.DefaultRelevant)

	text, err := g.completer.Complete(ctx, Prompt{
		System:    useCasesSystem,
		User:      useCasesPrompt(product, roles, citations(list)),
		MaxTokens: 2048,
		JSON:      true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	var cases []rawUseCase
	if err := parseArray(text, &cases); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	known := make(map[string]bool, len(roles))
	for _, r := range roles {
		known[r.ID] = true
	}

	stages := make([]storage.Stage, 0, len(cases))
	for _, uc := range cases {
		people := uc.PeopleAffected
		if people <= 0 {
			people = defaultPeopleAffected
		}

		// models occasionally invent role ids
		allocations := make([]storage.RoleAllocation, 0, len(uc.RoleAllocations))
		for _, a := range uc.RoleAllocations {
			if known[a.RoleID] {
				allocations = append(allocations, a)
			}
		}

		stages = append(stages, storage.Stage{
			ID:              uuid.NewString(),
			Name:            uc.Name,
			Workflow:        uc.Workflow,
			Assumptions:     uc.Assumptions,
			Rationale:       uc.Rationale,
			RoleAllocations: allocations,
			PeopleAffected:  people,
		})
	}

	return stages, profile.Name, nil
}

func (g *LLMGenerator) GenerateRationale(ctx context.Context, stage storage.Stage, product ProductAnalysis) (string, error) {
	const op = "discovery.LLMGenerator.GenerateRationale"

	_, list := benchmarks.Relevant(rationaleText(stage, product), benchmarks.DefaultRelevant)

	text, err := g.completer.Complete(ctx, Prompt{
		System:    rationaleSystem,
		User:      rationalePrompt(stage, product, citations(list)),
		MaxTokens: 256,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return g.fallback.GenerateRationale(ctx, stage, product)
	}

	return text, nil
}

func citations(list []benchmarks.Benchmark) string {
	lines := make([]string, len(list))
	for i, b := range list {
		lines[i] = "- " + benchmarks.Citation(b)
	}
	return strings.Join(lines, "\n")
}

func analyzePrompt(c ScrapedContent) string {
	var parts []string
	if c.Title != "" {
		parts = append(parts, "Title: "+c.Title)
	}
	if c.Description != "" {
		parts = append(parts, "Description: "+c.Description)
	}
	if len(c.Headings) > 0 {
		parts = append(parts, "Headings: "+strings.Join(c.Headings, ", "))
	}
	if len(c.Features) > 0 {
		features := c.Features
		if len(features) > analysisFeaturesInclude {
			features = features[:analysisFeaturesInclude]
		}
		parts = append(parts, "Listed features: "+strings.Join(features, "; "))
	}
	if c.Content != "" {
		parts = append(parts, "Page content: "+truncate(c.Content, analysisContentChars))
	}

	return `Analyze this product/service from its website content and return a JSON object with these fields:
{
  "name": "Product name",
  "description": "One-paragraph description of what the product does and who it's for",
  "features": ["Feature 1", "Feature 2", ...],  // 4-8 key features
  "targetUsers": ["User type 1", "User type 2", ...],  // 3-5 target user personas
  "painPoints": ["Pain point 1", "Pain point 2", ...]  // 3-5 problems the product solves
}

Website content:
` + strings.Join(parts, "\n\n")
}

func useCasesPrompt(p ProductAnalysis, roles []storage.Role, benchmarkInfo string) string {
	available := make([]string, len(roles))
	ids := make([]string, len(roles))
	for i, r := range roles {
		available[i] = fmt.Sprintf("%s ($%g/hr)", r.Label, r.HourlyRate)
		ids[i] = fmt.Sprintf("%q for %s", r.ID, r.Label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate 4-6 use cases for %q as JSON.\n\n", p.Name)
	fmt.Fprintf(&b, "Product: %s\n", p.Description)
	fmt.Fprintf(&b, "Features: %s\n", strings.Join(p.Features, ", "))
	fmt.Fprintf(&b, "Target users: %s\n", strings.Join(p.TargetUsers, ", "))
	fmt.Fprintf(&b, "Pain points: %s\n\n", strings.Join(p.PainPoints, ", "))
	fmt.Fprintf(&b, "Available roles: %s\n\n", strings.Join(available, ", "))
	fmt.Fprintf(&b, "Industry benchmarks for context:\n%s\n\n", benchmarkInfo)
	b.WriteString(`Return a JSON array of use cases:
[
  {
    "name": "Use Case Name",
    "workflow": "Brief description of the workflow",
    "assumptions": "Key assumption about current process",
    "rationale": "Data-driven rationale citing benchmarks where relevant. 2-3 sentences.",
    "roleAllocations": [
      { "roleId": "ROLE_ID", "baseline": HOURS_PER_WEEK_BEFORE, "gain": PERCENTAGE_REDUCTION }
    ],
    "peopleAffected": NUMBER_OF_PEOPLE
  }
]

`)
	fmt.Fprintf(&b, "Use these exact roleIds: %s\n\n", strings.Join(ids, ", "))
	b.WriteString(`Guidelines:
- baseline = weekly hours spent on this task BEFORE the tool (realistic: 2-20 hrs)
- gain = percentage reduction (realistic: 20-60% based on benchmarks)
- peopleAffected = how many people do this task (realistic: 1-50)
- rationale should cite specific benchmark data where relevant`)

	return b.String()
}

func rationalePrompt(s storage.Stage, p ProductAnalysis, benchmarkInfo string) string {
	return fmt.Sprintf(`Write a rationale for this use case:

Use case: %s
Workflow: %s
Current assumptions: %s
Product: %s - %s

Industry benchmarks:
%s

Write 2-3 sentences of data-driven rationale. Cite specific benchmark numbers. Be concrete, not vague.`,
		s.Name, s.Workflow, s.Assumptions, p.Name, p.Description, benchmarkInfo)
}
