package generate_excel

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MithunXcpu/value-calculator/http-server/apiutil"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, id string, discountRate float64) ([]byte, string, error)
}

func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler, defaultRate float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		id := chi.URLParam(r, "id")

		rate, err := apiutil.DiscountRate(r, defaultRate)
		if err != nil {
			apiutil.Error(w, log, op, err)
			return
		}

		// workbook rendering is slower than a plain read
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, fileName, err := gen.GenerateExcel(ctx, id, rate)
		if err != nil {
			apiutil.Error(w, log.With(slog.String("id", id)), op, err)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(fileName))
		w.Write(excelBytes)
	}
}
