package calculate

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/MithunXcpu/value-calculator/http-server/apiutil"
	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

type Evaluator interface {
	Compute(ctx context.Context, calc *storage.Calculator, discountRate float64, rates []float64) (calculator.Evaluation, error)
	Dashboard(ctx context.Context, id string, discountRate float64) (*calculator.Dashboard, error)
}

type Request struct {
	Calculator       *storage.Calculator `json:"calculator"`
	DiscountRate     *float64            `json:"discountRate"`
	SensitivityRates []float64           `json:"sensitivityRates"`
}

// GetDashboard serves GET /api/calculators/{id}/dashboard?discount_rate=.
func GetDashboard(log *slog.Logger, eval Evaluator, defaultRate float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculate.GetDashboard"

		id := chi.URLParam(r, "id")

		rate, err := apiutil.DiscountRate(r, defaultRate)
		if err != nil {
			apiutil.Error(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		d, err := eval.Dashboard(ctx, id, rate)
		if err != nil {
			apiutil.Error(w, log.With(slog.String("id", id)), op, err)
			return
		}

		render.JSON(w, r, d)
	}
}

// Calculate evaluates a calculator posted in the body without storing it.
func Calculate(log *slog.Logger, eval Evaluator, defaultRate float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculate.Calculate"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Calculator == nil {
			http.Error(w, "Missing required field 'calculator'", http.StatusBadRequest)
			return
		}

		rate := defaultRate
		if req.DiscountRate != nil {
			rate = apiutil.NormalizeRate(*req.DiscountRate)
		}
		var rates []float64
		for _, sr := range req.SensitivityRates {
			rates = append(rates, apiutil.NormalizeRate(sr))
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ev, err := eval.Compute(ctx, req.Calculator, rate, rates)
		if err != nil {
			apiutil.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, ev)
	}
}
