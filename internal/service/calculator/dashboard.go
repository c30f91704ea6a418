package calculator

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MithunXcpu/value-calculator/internal/service/roi"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

type Evaluation struct {
	DiscountRate float64                `json:"discountRate"`
	Stages       []roi.StageCalculation `json:"stages"`
	Summary      roi.Summary            `json:"summary"`
	Advanced     roi.AdvancedMetrics    `json:"advanced"`
	Sensitivity  []roi.SensitivityPoint `json:"sensitivity"`
	Display      Display                `json:"display"`
}

// Display holds the headline figures already formatted for the calculator's currency.
type Display struct {
	TotalCostSaved string `json:"totalCostSaved"`
	ROI            string `json:"roi"`
	PaybackMonths  string `json:"paybackMonths"`
	CostOfDelay    string `json:"costOfDelay"`
	NPV            string `json:"npv"`
	IRR            string `json:"irr"`
	TCO            string `json:"tco"`
	BreakEven      string `json:"breakEven"`

	// Years are the ramped annual savings for years 1 through 5.
	Years [roi.HorizonYears]string `json:"years"`
}

type Dashboard struct {
	Calculator *storage.Calculator        `json:"calculator"`
	Settings   storage.WhiteLabelSettings `json:"settings"`
	Evaluation
}

// Evaluate runs the engine over calc. Each sensitivity rate is evaluated on its own
// goroutine; the points are independent.
func (s *Service) Evaluate(ctx context.Context, calc *storage.Calculator, discountRate float64, rates []float64) (Evaluation, error) {
	const op = "service.calculator.Evaluate"

	if !validDiscountRate(discountRate) {
		return Evaluation{}, fmt.Errorf("%s: %w: discount rate %v", op, ErrInvalidInput, discountRate)
	}
	if len(rates) == 0 {
		rates = s.engine.SensitivityRates
	}
	if len(rates) == 0 {
		rates = roi.DefaultSensitivityRates
	}
	for _, r := range rates {
		if !validDiscountRate(r) {
			return Evaluation{}, fmt.Errorf("%s: %w: sensitivity rate %v", op, ErrInvalidInput, r)
		}
	}

	a := calc.Assumptions
	ev := Evaluation{
		DiscountRate: discountRate,
		Stages:       make([]roi.StageCalculation, len(calc.Stages)),
		Summary:      roi.CalculateSummary(calc.Stages, a),
		Advanced:     roi.CalculateAdvancedMetrics(calc.Stages, a, discountRate),
		Sensitivity:  make([]roi.SensitivityPoint, len(rates)),
	}
	for i, st := range calc.Stages {
		ev.Stages[i] = roi.CalculateStage(st, a)
	}

	g, gCtx := errgroup.WithContext(ctx)
	for i, rate := range rates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			ev.Sensitivity[i] = roi.SensitivityAt(ev.Summary.TotalCostSaved, a.AnnualToolCost, rate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Evaluation{}, fmt.Errorf("%s: %w", op, err)
	}

	ev.Display = display(ev, a.Currency)

	return ev, nil
}

// Compute evaluates a calculator that was never stored. The input is validated
// like a saved record, on a copy, so gains are clamped before the engine sees them.
func (s *Service) Compute(ctx context.Context, calc *storage.Calculator, discountRate float64, rates []float64) (Evaluation, error) {
	const op = "service.calculator.Compute"

	if calc == nil {
		return Evaluation{}, fmt.Errorf("%s: %w", op, invalid("calculator is required"))
	}

	c := clone(calc)
	if err := ValidateAssumptions(&c.Assumptions); err != nil {
		return Evaluation{}, fmt.Errorf("%s: %w", op, err)
	}
	for i := range c.Stages {
		if err := ValidateStage(&c.Stages[i]); err != nil {
			return Evaluation{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	ev, err := s.Evaluate(ctx, c, discountRate, rates)
	if err != nil {
		return Evaluation{}, fmt.Errorf("%s: %w", op, err)
	}

	return ev, nil
}

func display(ev Evaluation, cur storage.Currency) Display {
	sum, adv := ev.Summary, ev.Advanced

	d := Display{
		TotalCostSaved: roi.FormatCurrency(sum.TotalCostSaved, cur),
		ROI:            roi.FormatPercent(sum.ROI),
		PaybackMonths:  roi.FormatNumber(sum.PaybackMonths, 1),
		CostOfDelay:    roi.FormatCurrency(sum.CostOfDelay, cur),
		NPV:            roi.FormatCurrency(adv.NPV, cur),
		IRR:            roi.FormatIRR(adv.IRR),
		TCO:            roi.FormatCurrency(adv.TCO, cur),
		BreakEven:      roi.FormatBreakEven(adv.BreakEvenMonths),
	}
	for i, v := range []float64{sum.Year1, sum.Year2, sum.Year3, adv.Year4, adv.Year5} {
		d.Years[i] = roi.FormatCurrency(v, cur)
	}

	return d
}

// Dashboard loads the calculator and the white-label settings concurrently and
// evaluates the calculator at discountRate.
func (s *Service) Dashboard(ctx context.Context, id string, discountRate float64) (*Dashboard, error) {
	const op = "service.calculator.Dashboard"

	var (
		calc     *storage.Calculator
		settings storage.WhiteLabelSettings
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		calc, err = s.repo.GetCalculator(gCtx, id)
		if err != nil {
			return fmt.Errorf("calculator: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = s.Settings(gCtx)
		if err != nil {
			return fmt.Errorf("settings: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ev, err := s.Evaluate(ctx, calc, discountRate, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Dashboard{Calculator: calc, Settings: settings, Evaluation: ev}, nil
}

// DefaultDiscountRate is the configured rate, or the engine default when unset.
func (s *Service) DefaultDiscountRate() float64 {
	if s.engine.DiscountRate != nil {
		return *s.engine.DiscountRate
	}
	return roi.DefaultDiscountRate
}

// Settings returns the stored white-label settings, or the defaults when none were saved.
func (s *Service) Settings(ctx context.Context) (storage.WhiteLabelSettings, error) {
	const op = "service.calculator.Settings"

	settings, err := s.repo.GetWhiteLabelSettings(ctx)
	if errors.Is(err, storage.ErrSettingsNotFound) {
		s.log.Debug("white-label settings not saved, using defaults")
		return storage.DefaultWhiteLabelSettings(), nil
	}
	if err != nil {
		return storage.WhiteLabelSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	return settings, nil
}

func (s *Service) SaveSettings(ctx context.Context, settings storage.WhiteLabelSettings) (storage.WhiteLabelSettings, error) {
	const op = "service.calculator.SaveSettings"

	defaults := storage.DefaultWhiteLabelSettings()
	if settings.PrimaryColor == "" {
		settings.PrimaryColor = defaults.PrimaryColor
	}
	if settings.AccentColor == "" {
		settings.AccentColor = defaults.AccentColor
	}
	if !hexColor(settings.PrimaryColor) || !hexColor(settings.AccentColor) {
		return storage.WhiteLabelSettings{}, fmt.Errorf("%s: %w: colors must be #rgb or #rrggbb", op, ErrInvalidInput)
	}

	if err := s.repo.SaveWhiteLabelSettings(ctx, settings); err != nil {
		return storage.WhiteLabelSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	return settings, nil
}

func hexColor(c string) bool {
	if len(c) != 4 && len(c) != 7 || c[0] != '#' {
		return false
	}
	for _, r := range c[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
