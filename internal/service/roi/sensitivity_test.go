package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

func TestSensitivityAnalysis_DefaultRates(t *testing.T) {
	assumptions := oneRoleAssumptions(100, 1, 20000)
	stages := []storage.Stage{stageWith("s1", storage.RoleAllocation{RoleID: "r1", Baseline: 1000, Gain: 50})}

	points := SensitivityAnalysis(stages, assumptions, nil)

	require.Len(t, points, len(DefaultSensitivityRates))
	for i, p := range points {
		assert.Equal(t, DefaultSensitivityRates[i], p.Rate)
		m := CalculateAdvancedMetrics(stages, assumptions, p.Rate)
		assert.InDelta(t, m.NPV, p.NPV, 1e-9)
		assert.InDelta(t, m.IRR, p.IRR, 1e-12)
		assert.Equal(t, m.BreakEvenMonths, p.BreakEvenMonths)
	}
}

func TestSensitivityAnalysis_NPVFallsAsRateRises(t *testing.T) {
	assumptions := oneRoleAssumptions(100, 1, 20000)
	stages := []storage.Stage{stageWith("s1", storage.RoleAllocation{RoleID: "r1", Baseline: 1000, Gain: 50})}

	points := SensitivityAnalysis(stages, assumptions, nil)

	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i].NPV, points[i-1].NPV, "rate %v", points[i].Rate)
		assert.Equal(t, points[0].IRR, points[i].IRR)
	}
}

func TestSensitivityAnalysis_CustomRates(t *testing.T) {
	points := SensitivityAnalysis(nil, oneRoleAssumptions(1, 1, 1000), []float64{0, 0.5})

	require.Len(t, points, 2)
	assert.InDelta(t, -5000.0, points[0].NPV, 1e-9)
	assert.Equal(t, BreakEvenNever, points[1].BreakEvenMonths)
}
