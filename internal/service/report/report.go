// Package report renders the printable business case: a Markdown document built
// from a dashboard evaluation and converted to a self-contained HTML page.
package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	"github.com/MithunXcpu/value-calculator/internal/service/roi"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

type DashboardProvider interface {
	Dashboard(ctx context.Context, id string, discountRate float64) (*calculator.Dashboard, error)
}

type Service struct {
	dashboards DashboardProvider
	md         goldmark.Markdown
}

func New(dashboards DashboardProvider) *Service {
	return &Service{
		dashboards: dashboards,
		md:         goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// PrintPage returns the HTML print view of calculator id.
func (s *Service) PrintPage(ctx context.Context, id string, discountRate float64) ([]byte, error) {
	const op = "service.report.PrintPage"

	d, err := s.dashboards.Dashboard(ctx, id, discountRate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, err := s.Render(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

func (s *Service) Render(d *calculator.Dashboard) ([]byte, error) {
	var body bytes.Buffer
	if err := s.md.Convert([]byte(Markdown(d)), &body); err != nil {
		return nil, fmt.Errorf("markdown: %w", err)
	}

	title := d.Calculator.Name
	if d.Settings.CompanyName != "" {
		title = d.Settings.CompanyName + " | " + title
	}

	data := pageData{
		Title:   title,
		Company: d.Settings.CompanyName,
		Primary: colorOr(d.Settings.PrimaryColor, storage.DefaultWhiteLabelSettings().PrimaryColor),
		Accent:  colorOr(d.Settings.AccentColor, storage.DefaultWhiteLabelSettings().AccentColor),
		Body:    template.HTML(body.String()),
	}
	if strings.HasPrefix(d.Settings.LogoBase64, "data:image/") {
		data.Logo = template.URL(d.Settings.LogoBase64)
	}

	var out bytes.Buffer
	if err := pageTemplate.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("page: %w", err)
	}

	return out.Bytes(), nil
}

// Markdown builds the business case document. User supplied text is escaped so it
// cannot break out of table cells or inject markup.
func Markdown(d *calculator.Dashboard) string {
	calc, sum, disp := d.Calculator, d.Summary, d.Display
	cur := calc.Assumptions.Currency

	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", escape(calc.Name))
	fmt.Fprintf(&b, "Business case prepared at a %s discount rate.\n\n", roi.FormatPercent(d.DiscountRate))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	rows := [][2]string{
		{"Annual savings", disp.TotalCostSaved},
		{"Annual tool cost", roi.FormatCurrency(calc.Assumptions.AnnualToolCost, cur)},
		{"ROI", disp.ROI},
		{"Payback", disp.PaybackMonths + " months"},
		{"Cost of delay", disp.CostOfDelay + " / month"},
		{"Hours saved per week", roi.FormatNumber(sum.TotalSavedHours, 1)},
		{"NPV (5 years)", disp.NPV},
		{"IRR", disp.IRR},
		{"TCO (5 years)", disp.TCO},
		{"Break-even", disp.BreakEven},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r[0], r[1])
	}

	b.WriteString("\n## Five-year projection\n\n")
	b.WriteString("| Year | Ramp | Savings |\n|---|---:|---:|\n")
	for i := 0; i < roi.HorizonYears; i++ {
		fmt.Fprintf(&b, "| Year %d | %s | %s |\n", i+1, roi.FormatPercent(roi.RampFactor(i+1)), disp.Years[i])
	}

	b.WriteString("\n## Stages\n\n")
	if len(calc.Stages) == 0 {
		b.WriteString("No stages have been defined yet.\n")
	} else {
		b.WriteString("| Stage | People | Hours saved | Cost saved |\n|---|---:|---:|---:|\n")
		for i, st := range calc.Stages {
			res := d.Stages[i]
			fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
				escape(st.Name), st.PeopleAffected, roi.FormatNumber(res.TotalSaved, 1), roi.FormatCurrency(res.CostSaved, cur))
		}
		for _, st := range calc.Stages {
			if st.Rationale == "" {
				continue
			}
			fmt.Fprintf(&b, "\n**%s.** %s\n", escape(st.Name), escape(st.Rationale))
		}
	}

	b.WriteString("\n## Discount-rate sensitivity\n\n")
	b.WriteString("| Rate | NPV | IRR | Break-even |\n|---:|---:|---:|---:|\n")
	for _, p := range d.Sensitivity {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			roi.FormatPercent(p.Rate), roi.FormatCurrency(p.NPV, cur), roi.FormatIRR(p.IRR), roi.FormatBreakEven(p.BreakEvenMonths))
	}

	return b.String()
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;", "#", `\#`,
	"\r\n", " ", "\n", " ",
)

func escape(s string) string {
	return mdEscaper.Replace(s)
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}

type pageData struct {
	Title   string
	Company string
	Primary string
	Accent  string
	Logo    template.URL
	Body    template.HTML
}

var pageTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; color: #1f2937; margin: 2rem auto; max-width: 900px; }
  h1 { color: {{.Primary}}; border-bottom: 3px solid {{.Primary}}; padding-bottom: .3rem; }
  h2 { color: {{.Primary}}; margin-top: 2rem; }
  table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
  th { background: {{.Primary}}; color: #fff; text-align: left; padding: .4rem .6rem; }
  td { border-bottom: 1px solid #e5e7eb; padding: .4rem .6rem; }
  strong { color: {{.Accent}}; }
  header { display: flex; align-items: center; gap: 1rem; }
  header img { max-height: 48px; }
  @media print { body { margin: 0; } h2 { page-break-after: avoid; } table { page-break-inside: avoid; } }
</style>
</head>
<body>
<header>{{if .Logo}}<img src="{{.Logo}}" alt="">{{end}}{{if .Company}}<span>{{.Company}}</span>{{end}}</header>
{{.Body}}
</body>
</html>
`))
