package roi

import (
	"math"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

const (
	DefaultDiscountRate      = 0.10
	DefaultImplementationPct = 0.15
	DefaultTrainingPct       = 0.05

	// HorizonYears is the projection length used for NPV, IRR and TCO.
	HorizonYears = 5

	// BreakEvenCapMonths bounds the monthly break-even walk.
	BreakEvenCapMonths = 60
	// BreakEvenNever is returned when savings can never cover the cost.
	BreakEvenNever = math.MaxInt

	irrLow        = -0.5
	irrHigh       = 10.0
	irrTolerance  = 0.0001
	irrIterations = 100
)

// rampFactors models adoption: partial efficiency in year one, full in year two,
// compounding process maturity afterwards.
var rampFactors = [...]float64{0.70, 1.00, 1.07, 1.10, 1.12}

// RampFactor returns the annual ramp multiplier. Years past the table reuse the last factor.
func RampFactor(year int) float64 {
	idx := year - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(rampFactors)-1 {
		idx = len(rampFactors) - 1
	}
	return rampFactors[idx]
}

// monthlyRamp only models the first three annual tiers.
func monthlyRamp(month int) float64 {
	switch {
	case month <= 12:
		return 0.70
	case month <= 24:
		return 1.00
	default:
		return 1.07
	}
}

type AdvancedMetrics struct {
	NPV             float64 `json:"npv"`
	IRR             float64 `json:"irr"`
	TCO             float64 `json:"tco"`
	BreakEvenMonths int     `json:"breakEvenMonths"`
	Year4           float64 `json:"year4"`
	Year5           float64 `json:"year5"`
}

// CalculateNPV discounts the ramped net cash flow of each year t in 1..years.
// There is no separate initial-outlay term.
func CalculateNPV(annualSavings, annualCost, discountRate float64, years int) float64 {
	var npv float64
	for t := 1; t <= years; t++ {
		cashFlow := annualSavings*RampFactor(t) - annualCost
		npv += cashFlow / math.Pow(1+discountRate, float64(t))
	}
	return npv
}

// CalculateIRR bisects the discount rate in [-0.5, 10] until NPV is within tolerance of zero.
// Without both a savings and a cost stream the rate is undefined and 0 is returned.
func CalculateIRR(annualSavings, annualCost float64, years int) float64 {
	if annualSavings <= 0 || annualCost <= 0 {
		return 0
	}

	low, high := irrLow, irrHigh
	var mid float64
	for i := 0; i < irrIterations; i++ {
		mid = (low + high) / 2
		npv := CalculateNPV(annualSavings, annualCost, mid, years)
		if math.Abs(npv) < irrTolerance {
			return mid
		}
		if npv > 0 {
			low = mid
		} else {
			high = mid
		}
	}

	return mid
}

// CalculateTCO is recurring cost over the horizon plus one-time onboarding,
// both onboarding parts expressed as a share of a single year's cost.
func CalculateTCO(annualCost float64, years int, implementationPct, trainingPct float64) float64 {
	return annualCost*float64(years) + annualCost*implementationPct + annualCost*trainingPct
}

func CalculateDefaultTCO(annualCost float64, years int) float64 {
	return CalculateTCO(annualCost, years, DefaultImplementationPct, DefaultTrainingPct)
}

// CalculateBreakEven walks month by month until cumulative ramped savings cover the
// upfront onboarding cost plus the accrued tool cost. The result is in [1, 60], or
// BreakEvenNever when there are no savings.
func CalculateBreakEven(annualSavings, annualCost, implementationPct, trainingPct float64) int {
	if annualSavings <= 0 {
		return BreakEvenNever
	}

	monthlyCost := annualCost / 12
	cumulativeCost := annualCost * (implementationPct + trainingPct)
	var cumulativeSavings float64

	for month := 1; month <= BreakEvenCapMonths; month++ {
		cumulativeSavings += annualSavings * monthlyRamp(month) / 12
		cumulativeCost += monthlyCost
		if cumulativeSavings >= cumulativeCost {
			return month
		}
	}

	return BreakEvenCapMonths
}

func CalculateDefaultBreakEven(annualSavings, annualCost float64) int {
	return CalculateBreakEven(annualSavings, annualCost, DefaultImplementationPct, DefaultTrainingPct)
}

// CalculateAdvancedMetrics uses the summary's annual cost saved as the savings stream
// and the tool cost as the cost stream over a five year horizon.
func CalculateAdvancedMetrics(stages []storage.Stage, assumptions storage.Assumptions, discountRate float64) AdvancedMetrics {
	summary := CalculateSummary(stages, assumptions)
	return metricsFor(summary.TotalCostSaved, assumptions.AnnualToolCost, discountRate)
}

func metricsFor(annualSavings, annualCost, discountRate float64) AdvancedMetrics {
	return AdvancedMetrics{
		NPV:             CalculateNPV(annualSavings, annualCost, discountRate, HorizonYears),
		IRR:             CalculateIRR(annualSavings, annualCost, HorizonYears),
		TCO:             CalculateDefaultTCO(annualCost, HorizonYears),
		BreakEvenMonths: CalculateDefaultBreakEven(annualSavings, annualCost),
		Year4:           annualSavings * RampFactor(4),
		Year5:           annualSavings * RampFactor(5),
	}
}
