package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/MithunXcpu/value-calculator/http-server/apiutil"
	"github.com/MithunXcpu/value-calculator/internal/storage"
	"github.com/MithunXcpu/value-calculator/internal/templates"
)

type CalculatorReader interface {
	Get(ctx context.Context, id string) (*storage.Calculator, error)
	List(ctx context.Context) ([]storage.CalculatorInfo, error)
}

type TemplateLister interface {
	Templates() []templates.Template
}

type ListResponse struct {
	Calculators []storage.CalculatorInfo `json:"calculators"`
}

type TemplateInfo struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StageCount  int    `json:"stageCount"`
	RoleCount   int    `json:"roleCount"`
}

func ListCalculators(log *slog.Logger, calcs CalculatorReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.ListCalculators"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := calcs.List(ctx)
		if err != nil {
			apiutil.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, ListResponse{Calculators: list})
	}
}

func GetCalculator(log *slog.Logger, calcs CalculatorReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.GetCalculator"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		calc, err := calcs.Get(ctx, id)
		if err != nil {
			apiutil.Error(w, log.With(slog.String("id", id)), op, err)
			return
		}

		render.JSON(w, r, calc)
	}
}

// ListTemplates returns the catalog; the index is what POST /api/calculators expects.
func ListTemplates(log *slog.Logger, catalog TemplateLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := catalog.Templates()

		resp := make([]TemplateInfo, len(list))
		for i, t := range list {
			resp[i] = TemplateInfo{
				Index:       i,
				Name:        t.Name,
				Description: t.Description,
				StageCount:  len(t.Stages),
				RoleCount:   len(t.Assumptions.Roles),
			}
		}

		log.Debug("templates listed", slog.Int("count", len(resp)))
		render.JSON(w, r, resp)
	}
}
