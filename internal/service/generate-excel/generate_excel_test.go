package generate_excel

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MithunXcpu/value-calculator/internal/config"
	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	"github.com/MithunXcpu/value-calculator/internal/storage"
	"github.com/MithunXcpu/value-calculator/internal/templates"
)

var testTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type MockCalculatorEvaluator struct {
	mock.Mock
}

func (m *MockCalculatorEvaluator) Get(ctx context.Context, id string) (*storage.Calculator, error) {
	args := m.Called(ctx, id)

	var calc *storage.Calculator
	if args.Get(0) != nil {
		calc = args.Get(0).(*storage.Calculator)
	}
	return calc, args.Error(1)
}

func (m *MockCalculatorEvaluator) Evaluate(ctx context.Context, calc *storage.Calculator, discountRate float64, rates []float64) (calculator.Evaluation, error) {
	args := m.Called(ctx, calc, discountRate, rates)
	return args.Get(0).(calculator.Evaluation), args.Error(1)
}

func riskCalculator(t *testing.T) (*storage.Calculator, calculator.Evaluation) {
	t.Helper()

	calc, err := templates.NewCatalog().Instantiate(0, testTime)
	require.NoError(t, err)

	svc := calculator.New(slog.Default(), nil, templates.NewCatalog(), config.Engine{})
	ev, err := svc.Evaluate(context.Background(), calc, 0.10, nil)
	require.NoError(t, err)

	return calc, ev
}

func TestWorkbook(t *testing.T) {
	calc, ev := riskCalculator(t)

	data, err := Workbook(calc, ev)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Stages", "Sensitivity"}, f.GetSheetList())

	name, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Risk Management Calculator", name)

	label, err := f.GetCellValue("Summary", "A8")
	require.NoError(t, err)
	assert.Equal(t, "Annual savings", label)
	display, err := f.GetCellValue("Summary", "C8")
	require.NoError(t, err)
	assert.Equal(t, ev.Display.TotalCostSaved, display)

	stageRows, err := f.GetRows("Stages")
	require.NoError(t, err)
	// header + 8 stages x (2 roles + total)
	assert.Len(t, stageRows, 1+8*3)
	assert.Equal(t, "Identify Existing Risks", stageRows[1][0])
	assert.Equal(t, "General Counsel", stageRows[1][1])
	assert.Equal(t, "Identify Existing Risks total", stageRows[3][0])

	sensRows, err := f.GetRows("Sensitivity")
	require.NoError(t, err)
	assert.Len(t, sensRows, 1+len(ev.Sensitivity))
	assert.Equal(t, "Discount rate", sensRows[0][0])
}

func TestWorkbook_NoSavings(t *testing.T) {
	calc := templates.NewWizard(testTime)
	svc := calculator.New(slog.Default(), nil, templates.NewCatalog(), config.Engine{})
	ev, err := svc.Evaluate(context.Background(), calc, 0.10, []float64{0.1})
	require.NoError(t, err)

	data, err := Workbook(calc, ev)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	be, err := f.GetCellValue("Sensitivity", "D2")
	require.NoError(t, err)
	assert.Equal(t, "60+ mo", be)
}

func TestGenerateExcel(t *testing.T) {
	calc, ev := riskCalculator(t)

	calcs := new(MockCalculatorEvaluator)
	calcs.On("Get", mock.Anything, "calc-1").Return(calc, nil)
	calcs.On("Evaluate", mock.Anything, calc, 0.12, []float64(nil)).Return(ev, nil)

	data, name, err := NewGenerateService(calcs).GenerateExcel(context.Background(), "calc-1", 0.12)
	require.NoError(t, err)

	assert.NotEmpty(t, data)
	assert.Equal(t, "Risk-Management-Calculator.xlsx", name)
	calcs.AssertExpectations(t)
}

func TestGenerateExcel_NotFound(t *testing.T) {
	calcs := new(MockCalculatorEvaluator)
	calcs.On("Get", mock.Anything, "nope").Return(nil, storage.ErrCalculatorNotFound)

	_, _, err := NewGenerateService(calcs).GenerateExcel(context.Background(), "nope", 0.1)
	assert.ErrorIs(t, err, storage.ErrCalculatorNotFound)
	calcs.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Q3-rollout-v2.xlsx", FileName("Q3 rollout / v2"))
	assert.Equal(t, "business-case.xlsx", FileName("  "))
}
