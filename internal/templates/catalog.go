package templates

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

var ErrTemplateNotFound = errors.New("template not found")

type Catalog struct {
	templates []Template
}

func NewCatalog(extra ...Template) *Catalog {
	return &Catalog{templates: append(Builtin(), extra...)}
}

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// LoadCatalog returns the built-in templates followed by the ones declared in the
// YAML file at path. An empty path yields the built-ins only.
func LoadCatalog(path string) (*Catalog, error) {
	const op = "templates.LoadCatalog"

	if path == "" {
		return NewCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: parse %s: %w", op, path, err)
	}

	for i, t := range file.Templates {
		if t.Name == "" {
			return nil, fmt.Errorf("%s: template #%d has no name", op, i+1)
		}
		if len(t.Assumptions.Roles) == 0 {
			return nil, fmt.Errorf("%s: template %q has no roles", op, t.Name)
		}
		if err := checkTemplate(t); err != nil {
			return nil, fmt.Errorf("%s: template %q: %w", op, t.Name, err)
		}
		if t.Assumptions.LoadedMultiplier <= 0 {
			file.Templates[i].Assumptions.LoadedMultiplier = defaultLoadedMultiplier
		}
		if t.Assumptions.HoursPerWeek <= 0 {
			file.Templates[i].Assumptions.HoursPerWeek = defaultHoursPerWeek
		}
		if t.Assumptions.Currency == "" {
			file.Templates[i].Assumptions.Currency = storage.CurrencyUSD
		}
	}

	return NewCatalog(file.Templates...), nil
}

// checkTemplate rejects numbers no calculator could be built from. Gains must
// already sit in [0, 100).
func checkTemplate(t Template) error {
	if !validNumber(t.Assumptions.AnnualToolCost) {
		return fmt.Errorf("annual_tool_cost must be a non-negative number")
	}
	for _, r := range t.Assumptions.Roles {
		if !validNumber(r.HourlyRate) {
			return fmt.Errorf("role %q: hourly_rate must be a non-negative number", r.Label)
		}
	}
	for _, s := range t.Stages {
		for _, a := range s.RoleAllocations {
			if !validNumber(a.Baseline) {
				return fmt.Errorf("stage %q: baseline must be a non-negative number", s.Name)
			}
			if !validNumber(a.Gain) || a.Gain >= 100 {
				return fmt.Errorf("stage %q: gain must be in [0, 100)", s.Name)
			}
		}
	}
	return nil
}

func validNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func (c *Catalog) List() []Template {
	return c.templates
}

func (c *Catalog) Instantiate(idx int, now time.Time) (*storage.Calculator, error) {
	if idx < 0 || idx >= len(c.templates) {
		return nil, fmt.Errorf("templates.Instantiate: %w: index %d", ErrTemplateNotFound, idx)
	}
	return c.templates[idx].instantiate(now), nil
}
