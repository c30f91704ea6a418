package print

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MithunXcpu/value-calculator/http-server/apiutil"
)

type PrintPageRenderer interface {
	PrintPage(ctx context.Context, id string, discountRate float64) ([]byte, error)
}

// PrintReport serves the HTML business case meant for the browser's print dialog.
func PrintReport(log *slog.Logger, pages PrintPageRenderer, defaultRate float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.PrintReport"

		id := chi.URLParam(r, "id")

		rate, err := apiutil.DiscountRate(r, defaultRate)
		if err != nil {
			apiutil.Error(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		page, err := pages.PrintPage(ctx, id, rate)
		if err != nil {
			apiutil.Error(w, log.With(slog.String("id", id)), op, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}
