// Package roi is the financial model: per-stage savings, the portfolio summary,
// time-value metrics and discount-rate sensitivity. Every function is pure and
// total; edge cases collapse to zero or a sentinel instead of an error.
package roi

import "github.com/MithunXcpu/value-calculator/internal/storage"

type RoleResult struct {
	RoleID    string  `json:"roleId"`
	Baseline  float64 `json:"baseline"`
	After     float64 `json:"after"`
	Saved     float64 `json:"saved"`
	CostSaved float64 `json:"costSaved"`
}

type StageCalculation struct {
	RoleResults []RoleResult `json:"roleResults"`
	TotalSaved  float64      `json:"totalSaved"`
	CostSaved   float64      `json:"costSaved"`
}

type Summary struct {
	TotalBaseline   float64 `json:"totalBaseline"`
	TotalAfter      float64 `json:"totalAfter"`
	TotalSavedHours float64 `json:"totalSavedHours"`
	TotalCostSaved  float64 `json:"totalCostSaved"`
	ROI             float64 `json:"roi"`
	PaybackMonths   float64 `json:"paybackMonths"`
	CostOfDelay     float64 `json:"costOfDelay"`
	Year1           float64 `json:"year1"`
	Year2           float64 `json:"year2"`
	Year3           float64 `json:"year3"`
}

// CalculateStage computes hours and cost saved for every allocation of the stage.
// An allocation whose role is missing from the assumptions still counts its hours
// but is costed at a zero rate.
func CalculateStage(stage storage.Stage, assumptions storage.Assumptions) StageCalculation {
	calc := StageCalculation{RoleResults: make([]RoleResult, 0, len(stage.RoleAllocations))}

	for _, alloc := range stage.RoleAllocations {
		var rate float64
		if role, ok := assumptions.RoleByID(alloc.RoleID); ok {
			rate = role.HourlyRate
		}

		after := alloc.Baseline * (1 - alloc.Gain/100)
		saved := alloc.Baseline - after
		costSaved := saved * rate * assumptions.LoadedMultiplier

		calc.RoleResults = append(calc.RoleResults, RoleResult{
			RoleID:    alloc.RoleID,
			Baseline:  alloc.Baseline,
			After:     after,
			Saved:     saved,
			CostSaved: costSaved,
		})
		calc.TotalSaved += saved
		calc.CostSaved += costSaved
	}

	return calc
}

// CalculateSummary folds all stages into portfolio totals and the three-year ramp.
func CalculateSummary(stages []storage.Stage, assumptions storage.Assumptions) Summary {
	var s Summary

	for _, stage := range stages {
		calc := CalculateStage(stage, assumptions)
		for _, r := range calc.RoleResults {
			s.TotalBaseline += r.Baseline
			s.TotalAfter += r.After
		}
		s.TotalSavedHours += calc.TotalSaved
		s.TotalCostSaved += calc.CostSaved
	}

	if assumptions.AnnualToolCost > 0 {
		s.ROI = s.TotalCostSaved / assumptions.AnnualToolCost
	}
	if s.TotalCostSaved > 0 {
		s.PaybackMonths = assumptions.AnnualToolCost / s.TotalCostSaved * 12
	}
	s.CostOfDelay = s.TotalCostSaved / 12

	s.Year1 = s.TotalCostSaved * RampFactor(1)
	s.Year2 = s.TotalCostSaved * RampFactor(2)
	s.Year3 = s.TotalCostSaved * RampFactor(3)

	return s
}
