package roi

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

const irrDisplayCap = 9.99

var currencySymbols = map[storage.Currency]string{
	storage.CurrencyUSD: "$",
	storage.CurrencyGBP: "£",
	storage.CurrencyEUR: "€",
}

// FormatIRR renders a decimal rate as a whole percentage; rates the bisection
// cannot bound are shown as ">999%".
func FormatIRR(irr float64) string {
	if math.IsNaN(irr) || math.IsInf(irr, 0) || irr > irrDisplayCap {
		return ">999%"
	}
	return decimal.NewFromFloat(irr*100).StringFixed(0) + "%"
}

func FormatBreakEven(months int) string {
	if months >= BreakEvenCapMonths {
		return fmt.Sprintf("%d+ mo", BreakEvenCapMonths)
	}
	return fmt.Sprintf("%d mo", months)
}

// FormatCurrency rounds to whole units and groups thousands. Unknown currencies use "$".
func FormatCurrency(value float64, currency storage.Currency) string {
	sym, ok := currencySymbols[currency]
	if !ok {
		sym = "$"
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return sym + "0"
	}
	return sym + groupThousands(decimal.NewFromFloat(value).Round(0).StringFixed(0))
}

func FormatNumber(value float64, decimals int32) string {
	return decimal.NewFromFloat(value).StringFixed(decimals)
}

func FormatPercent(ratio float64) string {
	return decimal.NewFromFloat(ratio*100).StringFixed(0) + "%"
}

func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
