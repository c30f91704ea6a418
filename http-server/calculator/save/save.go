package save

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/MithunXcpu/value-calculator/http-server/apiutil"
	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

// maxImportBytes bounds an imported calculator document.
const maxImportBytes = 1 << 20

type CalculatorWriter interface {
	Create(ctx context.Context, kind calculator.Kind, templateIdx int) (*storage.Calculator, error)
	Duplicate(ctx context.Context, id string) (*storage.Calculator, error)
	Import(ctx context.Context, raw []byte) (*storage.Calculator, error)
	Save(ctx context.Context, calc *storage.Calculator) (*storage.Calculator, error)
}

type CreateRequest struct {
	Kind          calculator.Kind `json:"kind"`
	TemplateIndex int             `json:"templateIndex"`
}

// CreateCalculator accepts an empty body as a blank calculator.
func CreateCalculator(log *slog.Logger, calcs CalculatorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.CreateCalculator"

		var req CreateRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		calc, err := calcs.Create(ctx, req.Kind, req.TemplateIndex)
		if err != nil {
			apiutil.Error(w, log, op, err)
			return
		}

		log.Info("calculator created", slog.String("id", calc.ID), slog.String("kind", string(req.Kind)))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, calc)
	}
}

func DuplicateCalculator(log *slog.Logger, calcs CalculatorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.DuplicateCalculator"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		calc, err := calcs.Duplicate(ctx, id)
		if err != nil {
			apiutil.Error(w, log.With(slog.String("id", id)), op, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, calc)
	}
}

// ImportCalculator takes a raw calculator document of any schema version.
func ImportCalculator(log *slog.Logger, calcs CalculatorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.ImportCalculator"

		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
		if err != nil {
			log.Warn("import body rejected", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: body too large or unreadable", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		calc, err := calcs.Import(ctx, raw)
		if err != nil {
			apiutil.Error(w, log, op, err)
			return
		}

		log.Info("calculator imported", slog.String("id", calc.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, calc)
	}
}

// SaveCalculator replaces the whole record. The id in the path wins over the body.
func SaveCalculator(log *slog.Logger, calcs CalculatorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.SaveCalculator"

		var calc storage.Calculator
		if err := render.DecodeJSON(r.Body, &calc); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}
		calc.ID = chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		saved, err := calcs.Save(ctx, &calc)
		if err != nil {
			apiutil.Error(w, log.With(slog.String("id", calc.ID)), op, err)
			return
		}

		render.JSON(w, r, saved)
	}
}
