package generate_excel

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	"github.com/MithunXcpu/value-calculator/internal/service/roi"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

const (
	sheetSummary     = "Summary"
	sheetStages      = "Stages"
	sheetSensitivity = "Sensitivity"
)

type CalculatorEvaluator interface {
	Get(ctx context.Context, id string) (*storage.Calculator, error)
	Evaluate(ctx context.Context, calc *storage.Calculator, discountRate float64, rates []float64) (calculator.Evaluation, error)
}

type GenerateExcelService struct {
	calculators CalculatorEvaluator
}

func NewGenerateService(calculators CalculatorEvaluator) *GenerateExcelService {
	return &GenerateExcelService{calculators: calculators}
}

// GenerateExcel builds the business-case workbook for one calculator and returns
// it together with a suggested file name.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, id string, discountRate float64) ([]byte, string, error) {
	const op = "service.generate_excel.GenerateExcel"

	calc, err := g.calculators.Get(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	ev, err := g.calculators.Evaluate(ctx, calc, discountRate, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	data, err := Workbook(calc, ev)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return data, FileName(calc.Name), nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func FileName(name string) string {
	base := strings.Trim(unsafeFileChars.ReplaceAllString(name, "-"), "-")
	if base == "" {
		base = "business-case"
	}
	return base + ".xlsx"
}

// Workbook renders the Summary, Stages and Sensitivity sheets.
func Workbook(calc *storage.Calculator, ev calculator.Evaluation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetStages, sheetSensitivity} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, err
	}

	writeSummary(f, calc, ev)
	writeStages(f, calc, ev)
	writeSensitivity(f, ev)

	for _, sheet := range []string{sheetSummary, sheetStages, sheetSensitivity} {
		cols, _ := f.GetCols(sheet)
		last := cellName(len(cols), 1)
		_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
		_ = f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
	_ = f.SetColWidth(sheetSummary, "A", "A", 28)
	_ = f.SetColWidth(sheetSummary, "B", "C", 18)
	_ = f.SetColWidth(sheetStages, "A", "A", 30)
	_ = f.SetColWidth(sheetStages, "B", "H", 14)
	_ = f.SetColWidth(sheetSensitivity, "A", "D", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, calc *storage.Calculator, ev calculator.Evaluation) {
	sum, adv, d := ev.Summary, ev.Advanced, ev.Display

	rows := [][]any{
		{"Metric", "Value", "Display"},
		{"Calculator", calc.Name, ""},
		{"Currency", string(calc.Assumptions.Currency), ""},
		{"Annual tool cost", calc.Assumptions.AnnualToolCost, roi.FormatCurrency(calc.Assumptions.AnnualToolCost, calc.Assumptions.Currency)},
		{"Baseline hours", sum.TotalBaseline, ""},
		{"Hours after", sum.TotalAfter, ""},
		{"Hours saved", sum.TotalSavedHours, ""},
		{"Annual savings", sum.TotalCostSaved, d.TotalCostSaved},
		{"ROI", sum.ROI, d.ROI},
		{"Payback (months)", sum.PaybackMonths, d.PaybackMonths},
		{"Cost of delay (monthly)", sum.CostOfDelay, d.CostOfDelay},
		{"Discount rate", ev.DiscountRate, roi.FormatPercent(ev.DiscountRate)},
		{"NPV (5 years)", adv.NPV, d.NPV},
		{"IRR", adv.IRR, d.IRR},
		{"TCO (5 years)", adv.TCO, d.TCO},
		{"Break-even", breakEvenValue(adv.BreakEvenMonths), d.BreakEven},
	}
	for i, v := range []float64{sum.Year1, sum.Year2, sum.Year3, adv.Year4, adv.Year5} {
		rows = append(rows, []any{fmt.Sprintf("Year %d", i+1), v, d.Years[i]})
	}

	writeRows(f, sheetSummary, rows)
}

func writeStages(f *excelize.File, calc *storage.Calculator, ev calculator.Evaluation) {
	rows := [][]any{{"Stage", "Role", "Hourly rate", "Baseline", "Gain %", "After", "Saved", "Cost saved"}}

	for i, st := range calc.Stages {
		result := ev.Stages[i]
		for j, rr := range result.RoleResults {
			label, rate := rr.RoleID, 0.0
			if role, ok := calc.Assumptions.RoleByID(rr.RoleID); ok {
				label, rate = role.Label, role.HourlyRate
			}
			rows = append(rows, []any{st.Name, label, rate, rr.Baseline, st.RoleAllocations[j].Gain, rr.After, rr.Saved, rr.CostSaved})
		}
		rows = append(rows, []any{st.Name + " total", "", "", "", "", "", result.TotalSaved, result.CostSaved})
	}

	writeRows(f, sheetStages, rows)
}

func writeSensitivity(f *excelize.File, ev calculator.Evaluation) {
	rows := [][]any{{"Discount rate", "NPV", "IRR", "Break-even (months)"}}
	for _, p := range ev.Sensitivity {
		rows = append(rows, []any{p.Rate, p.NPV, p.IRR, breakEvenValue(p.BreakEvenMonths)})
	}

	writeRows(f, sheetSensitivity, rows)
}

// breakEvenValue keeps the "never" sentinel out of the sheet.
func breakEvenValue(months int) any {
	if months >= roi.BreakEvenCapMonths {
		return roi.FormatBreakEven(months)
	}
	return months
}

func writeRows(f *excelize.File, sheet string, rows [][]any) {
	for r, row := range rows {
		for c, v := range row {
			_ = f.SetCellValue(sheet, cellName(c+1, r+1), v)
		}
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
