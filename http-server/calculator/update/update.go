package update

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
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

const timeout = 5 * time.Second

type CalculatorEditor interface {
	Rename(ctx context.Context, id, name string) (*storage.Calculator, error)
	UpdateAssumptions(ctx context.Context, id string, a storage.Assumptions) (*storage.Calculator, error)
	UpdateWizard(ctx context.Context, id string, state storage.WizardState) (*storage.Calculator, error)
	AddStage(ctx context.Context, id string, stage *storage.Stage) (*storage.Calculator, error)
	UpdateStage(ctx context.Context, id string, stage storage.Stage) (*storage.Calculator, error)
	RemoveStage(ctx context.Context, id, stageID string) (*storage.Calculator, error)
	ReorderStages(ctx context.Context, id string, from, to int) (*storage.Calculator, error)
	AddRole(ctx context.Context, id string, role storage.Role) (*storage.Calculator, error)
	RemoveRole(ctx context.Context, id, roleID string) (*storage.Calculator, error)
	AppendStages(ctx context.Context, id string, stages []storage.Stage) (*storage.Calculator, error)
}

type RenameRequest struct {
	Name string `json:"name"`
}

type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type AppendRequest struct {
	Stages []storage.Stage `json:"stages"`
}

func badJSON(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
	http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
}

func respond(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, calc *storage.Calculator, err error) {
	if err != nil {
		apiutil.Error(w, log.With(slog.String("id", chi.URLParam(r, "id"))), op, err)
		return
	}
	render.JSON(w, r, calc)
}

// PATCH /api/calculators/{id}
func RenameCalculator(log *slog.Logger, calcs CalculatorEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.RenameCalculator"

		var req RenameRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			badJSON(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		calc, err := calcs.Rename(ctx, chi.URLParam(r, "id"), req.Name)
		respond(w, r, log, op, calc, err)
	}
}

// PUT /api/calculators/{id}/assumptions
func UpdateAssumptions(log *slog.Logger, calcs CalculatorEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.UpdateAssumptions"

		var req storage.Assumptions
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			badJSON(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		calc, err := calcs.UpdateAssumptions(ctx, chi.URLParam(r, "id"), req)
		respond(w, r, log, op, calc, err)
	}
}

// PUT /api/calculators/{id}/wizard
func UpdateWizard(log *slog.Logger, calcs CalculatorEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.UpdateWizard"

		var req storage.WizardState
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			badJSON(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		calc, err := calcs.UpdateWizard(ctx, chi.URLParam(r, "id"), req)
		respond(w, r, log, op, calc, err)
	}
}

// POST /api/calculators/{id}/stages. An empty body adds the default stage.
func AddStage(log *slog.Logger, calcs CalculatorEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.AddStage"

		var stage *storage.Stage
		var req storage.Stage
		switch err := render.DecodeJSON(r.Body, &req); {
		case err == nil:
			stage = &req
		case errors.Is(err, io.EOF):
		default:
			badJSON(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		calc, err := calcs.AddStage(ctx, chi.URLParam(r, "id"), stage)
		if err == nil {
			render.Status(r, http.StatusCreated)
		}
		respond(w, r, log, op, calc, err)
	}
}

// PUT /api/calculators/{id}/stages/{stageId}
func UpdateStage(log *slog.Logger, calcs CalculatorEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.UpdateStage"

		var req storage.Stage
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			badJSON(w, log, op, err)
			return
		}
		req.ID = chi.URLParam(r, "stageId")

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		calc, err := calcs.UpdateStage(ctx, chi.URLParam(r, "id"), req)
		respond(w, r, log, op, calc, err)
	}
}

// DELETE /api/calculators/{id}/stages/{stageId}
func RemoveStage(log *slog.Logger, calcs CalculatorEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.RemoveStage"

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		calc, err := calcs.RemoveStage(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "stageId"))
		respond(w, r, log, op, calc, err)
	}
}

// POST /api/calculators/{id}/stages/reorder
func ReorderStages(log *slog.Logger, calcs CalculatorEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.ReorderStages"

		var req ReorderRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			badJSON(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		calc, err := calcs.ReorderStages(ctx, chi.URLParam(r, "id"), req.From, req.To)
		respond(w, r, log, op, calc, err)
	}
}

// POST /api/calculators/{id}/stages/append takes generated stages.
func AppendStages(log *slog.Logger, calcs CalculatorEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.AppendStages"

		var req AppendRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			badJSON(w, log, op, err)
			return
		}
		if len(req.Stages) == 0 {
			http.Error(w, "No stages provided", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		calc, err := calcs.AppendStages(ctx, chi.URLParam(r, "id"), req.Stages)
		respond(w, r, log, op, calc, err)
	}
}

// POST /api/calculators/{id}/roles
func AddRole(log *slog.Logger, calcs CalculatorEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.AddRole"

		var req storage.Role
		if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
			badJSON(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		calc, err := calcs.AddRole(ctx, chi.URLParam(r, "id"), req)
		if err == nil {
			render.Status(r, http.StatusCreated)
		}
		respond(w, r, log, op, calc, err)
	}
}

// DELETE /api/calculators/{id}/roles/{roleId}
func RemoveRole(log *slog.Logger, calcs CalculatorEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.RemoveRole"

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		calc, err := calcs.RemoveRole(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "roleId"))
		respond(w, r, log, op, calc, err)
	}
}
