package calculator

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

// MaxGain is the ceiling gains are clamped to. A gain of 100 or more would mean
// negative "after" hours, so it is pulled just below 100 at entry.
const MaxGain = 99.9

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateAssumptions rejects non-finite or out-of-range model inputs and fills
// missing role ids and currency in place.
func ValidateAssumptions(a *storage.Assumptions) error {
	if len(a.Roles) == 0 {
		return invalid("at least one role is required")
	}

	seen := make(map[string]bool, len(a.Roles))
	for i := range a.Roles {
		if err := validateRole(&a.Roles[i]); err != nil {
			return err
		}
		if seen[a.Roles[i].ID] {
			return invalid("duplicate role id %q", a.Roles[i].ID)
		}
		seen[a.Roles[i].ID] = true
	}

	if !finite(a.HoursPerWeek) || a.HoursPerWeek < 0 {
		return invalid("hoursPerWeek must be a non-negative number")
	}
	if !finite(a.LoadedMultiplier) || a.LoadedMultiplier <= 0 {
		return invalid("loadedMultiplier must be greater than zero")
	}
	if !finite(a.AnnualToolCost) || a.AnnualToolCost < 0 {
		return invalid("annualToolCost must be a non-negative number")
	}

	switch a.Currency {
	case storage.CurrencyUSD, storage.CurrencyGBP, storage.CurrencyEUR:
	case "":
		a.Currency = storage.CurrencyUSD
	default:
		return invalid("unsupported currency %q", a.Currency)
	}

	return nil
}

func validateRole(r *storage.Role) error {
	r.Label = strings.TrimSpace(r.Label)
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if !finite(r.HourlyRate) || r.HourlyRate < 0 {
		return invalid("role %q: hourlyRate must be a non-negative number", r.Label)
	}
	return nil
}

// ValidateStage checks baselines, clamps gains into [0, MaxGain] and keeps
// peopleAffected positive. A missing stage id is generated.
func ValidateStage(s *storage.Stage) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.RoleAllocations == nil {
		s.RoleAllocations = []storage.RoleAllocation{}
	}

	for i := range s.RoleAllocations {
		a := &s.RoleAllocations[i]
		if !finite(a.Baseline) || a.Baseline < 0 {
			return invalid("stage %q: baseline must be a non-negative number", s.Name)
		}
		if !finite(a.Gain) {
			return invalid("stage %q: gain must be a number", s.Name)
		}
		a.Gain = clampGain(a.Gain)
	}

	if s.PeopleAffected < 1 {
		s.PeopleAffected = 1
	}

	return nil
}

func clampGain(g float64) float64 {
	switch {
	case g < 0:
		return 0
	case g > MaxGain:
		return MaxGain
	default:
		return g
	}
}

func validateCalculator(c *storage.Calculator) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return invalid("name is required")
	}
	if err := ValidateAssumptions(&c.Assumptions); err != nil {
		return err
	}
	if c.Stages == nil {
		c.Stages = []storage.Stage{}
	}
	for i := range c.Stages {
		if err := ValidateStage(&c.Stages[i]); err != nil {
			return err
		}
	}
	c.SchemaVersion = storage.CurrentSchemaVersion
	return nil
}

func validDiscountRate(rate float64) bool {
	return finite(rate) && rate > -1
}
