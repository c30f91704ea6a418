package report

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MithunXcpu/value-calculator/internal/config"
	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	"github.com/MithunXcpu/value-calculator/internal/storage"
	"github.com/MithunXcpu/value-calculator/internal/templates"
)

type MockDashboardProvider struct {
	mock.Mock
}

func (m *MockDashboardProvider) Dashboard(ctx context.Context, id string, discountRate float64) (*calculator.Dashboard, error) {
	args := m.Called(ctx, id, discountRate)

	var d *calculator.Dashboard
	if args.Get(0) != nil {
		d = args.Get(0).(*calculator.Dashboard)
	}
	return d, args.Error(1)
}

func dashboard(t *testing.T, settings storage.WhiteLabelSettings) *calculator.Dashboard {
	t.Helper()

	calc, err := templates.NewCatalog().Instantiate(1, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	svc := calculator.New(slog.Default(), nil, templates.NewCatalog(), config.Engine{})
	ev, err := svc.Evaluate(context.Background(), calc, 0.10, nil)
	require.NoError(t, err)

	return &calculator.Dashboard{Calculator: calc, Settings: settings, Evaluation: ev}
}

func TestMarkdown(t *testing.T) {
	d := dashboard(t, storage.DefaultWhiteLabelSettings())

	md := Markdown(d)

	assert.True(t, strings.HasPrefix(md, "# Software ROI Calculator\n"))
	assert.Contains(t, md, "Business case prepared at a 10% discount rate.")
	assert.Contains(t, md, "| Annual savings | "+d.Display.TotalCostSaved+" |")
	assert.Contains(t, md, "| Year 1 | 70% | "+d.Display.Years[0]+" |")
	assert.Contains(t, md, "| Year 5 | 112% | "+d.Display.Years[4]+" |")
	assert.Contains(t, md, "## Discount-rate sensitivity")
	for _, st := range d.Calculator.Stages {
		assert.Contains(t, md, "| "+st.Name+" |")
	}
}

func TestMarkdown_EscapesUserText(t *testing.T) {
	d := dashboard(t, storage.DefaultWhiteLabelSettings())
	d.Calculator.Name = "Ops | <b>Q3</b>"
	d.Calculator.Stages[0].Name = "Intake\n| injected |"

	md := Markdown(d)

	assert.Contains(t, md, `# Ops \| &lt;b&gt;Q3&lt;/b&gt;`)
	assert.Contains(t, md, `| Intake \| injected \| |`)
}

func TestMarkdown_NoStages(t *testing.T) {
	calc := templates.NewWizard(time.Now())
	svc := calculator.New(slog.Default(), nil, templates.NewCatalog(), config.Engine{})
	ev, err := svc.Evaluate(context.Background(), calc, 0.10, nil)
	require.NoError(t, err)

	md := Markdown(&calculator.Dashboard{Calculator: calc, Evaluation: ev})
	assert.Contains(t, md, "No stages have been defined yet.")
}

func TestRender(t *testing.T) {
	d := dashboard(t, storage.WhiteLabelSettings{
		CompanyName:  "Acme",
		PrimaryColor: "#112233",
		AccentColor:  "#445566",
		LogoBase64:   "data:image/png;base64,AAAA",
	})

	page, err := New(nil).Render(d)
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "<title>Acme | Software ROI Calculator</title>")
	assert.Contains(t, html, "color: #112233")
	assert.Contains(t, html, "color: #445566")
	assert.Contains(t, html, `<img src="data:image/png;base64,AAAA"`)
	assert.Contains(t, html, "<h1>Software ROI Calculator</h1>")
	assert.Contains(t, html, "<table>")
}

func TestRender_DefaultColorsAndNoLogo(t *testing.T) {
	d := dashboard(t, storage.WhiteLabelSettings{LogoBase64: "javascript:alert(1)"})

	page, err := New(nil).Render(d)
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "color: #3b82f6")
	assert.Contains(t, html, "color: #10b981")
	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "javascript")
}

func TestPrintPage(t *testing.T) {
	d := dashboard(t, storage.DefaultWhiteLabelSettings())

	dashboards := new(MockDashboardProvider)
	dashboards.On("Dashboard", mock.Anything, "calc-1", 0.08).Return(d, nil)

	page, err := New(dashboards).PrintPage(context.Background(), "calc-1", 0.08)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<!DOCTYPE html>")
	dashboards.AssertExpectations(t)
}

func TestPrintPage_Error(t *testing.T) {
	dashboards := new(MockDashboardProvider)
	dashboards.On("Dashboard", mock.Anything, "missing", 0.1).Return(nil, storage.ErrCalculatorNotFound)

	_, err := New(dashboards).PrintPage(context.Background(), "missing", 0.1)
	assert.True(t, errors.Is(err, storage.ErrCalculatorNotFound))
}
