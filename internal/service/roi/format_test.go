package roi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

func TestFormatIRR(t *testing.T) {
	assert.Equal(t, "25%", FormatIRR(0.25))
	assert.Equal(t, "0%", FormatIRR(0))
	assert.Equal(t, "999%", FormatIRR(9.99))
	assert.Equal(t, ">999%", FormatIRR(9.991))
	assert.Equal(t, ">999%", FormatIRR(math.Inf(1)))
	assert.Equal(t, ">999%", FormatIRR(math.NaN()))
}

func TestFormatBreakEven(t *testing.T) {
	assert.Equal(t, "7 mo", FormatBreakEven(7))
	assert.Equal(t, "60+ mo", FormatBreakEven(60))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234,567", FormatCurrency(1234567.4, storage.CurrencyUSD))
	assert.Equal(t, "£650", FormatCurrency(650, storage.CurrencyGBP))
	assert.Equal(t, "€1,000", FormatCurrency(999.5, storage.CurrencyEUR))
	assert.Equal(t, "$-12,500", FormatCurrency(-12500, storage.CurrencyUSD))
	assert.Equal(t, "$100", FormatCurrency(100, storage.Currency("JPY")))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "12.5", FormatNumber(12.5, 1))
	assert.Equal(t, "3", FormatNumber(2.6, 0))
	assert.Equal(t, "1%", FormatPercent(0.013))
}
