package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MithunXcpu/value-calculator/http-server/apiutil"
)

type CalculatorRemover interface {
	Delete(ctx context.Context, id string) error
}

func DeleteCalculator(log *slog.Logger, calcs CalculatorRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.DeleteCalculator"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := calcs.Delete(ctx, id); err != nil {
			apiutil.Error(w, log.With(slog.String("id", id)), op, err)
			return
		}

		log.Info("calculator deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
