package roi

import "github.com/MithunXcpu/value-calculator/internal/storage"

var DefaultSensitivityRates = []float64{0.05, 0.08, 0.10, 0.12, 0.15, 0.20}

type SensitivityPoint struct {
	Rate            float64 `json:"rate"`
	NPV             float64 `json:"npv"`
	IRR             float64 `json:"irr"`
	BreakEvenMonths int     `json:"breakEvenMonths"`
}

// SensitivityAnalysis evaluates the advanced metrics once per discount rate.
// Empty rates fall back to DefaultSensitivityRates.
func SensitivityAnalysis(stages []storage.Stage, assumptions storage.Assumptions, rates []float64) []SensitivityPoint {
	if len(rates) == 0 {
		rates = DefaultSensitivityRates
	}

	summary := CalculateSummary(stages, assumptions)
	points := make([]SensitivityPoint, len(rates))
	for i, rate := range rates {
		points[i] = SensitivityAt(summary.TotalCostSaved, assumptions.AnnualToolCost, rate)
	}
	return points
}

// SensitivityAt evaluates a single rate for an already summarized savings stream.
func SensitivityAt(annualSavings, annualCost, rate float64) SensitivityPoint {
	m := metricsFor(annualSavings, annualCost, rate)
	return SensitivityPoint{
		Rate:            rate,
		NPV:             m.NPV,
		IRR:             m.IRR,
		BreakEvenMonths: m.BreakEvenMonths,
	}
}
