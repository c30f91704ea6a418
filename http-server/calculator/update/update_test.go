package update

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

type MockCalculatorEditor struct {
	mock.Mock
}

func (m *MockCalculatorEditor) result(args mock.Arguments) (*storage.Calculator, error) {
	var calc *storage.Calculator
	if args.Get(0) != nil {
		calc = args.Get(0).(*storage.Calculator)
	}
	return calc, args.Error(1)
}

func (m *MockCalculatorEditor) Rename(ctx context.Context, id, name string) (*storage.Calculator, error) {
	return m.result(m.Called(ctx, id, name))
}

func (m *MockCalculatorEditor) UpdateAssumptions(ctx context.Context, id string, a storage.Assumptions) (*storage.Calculator, error) {
	return m.result(m.Called(ctx, id, a))
}

func (m *MockCalculatorEditor) UpdateWizard(ctx context.Context, id string, state storage.WizardState) (*storage.Calculator, error) {
	return m.result(m.Called(ctx, id, state))
}

func (m *MockCalculatorEditor) AddStage(ctx context.Context, id string, stage *storage.Stage) (*storage.Calculator, error) {
	return m.result(m.Called(ctx, id, stage))
}

func (m *MockCalculatorEditor) UpdateStage(ctx context.Context, id string, stage storage.Stage) (*storage.Calculator, error) {
	return m.result(m.Called(ctx, id, stage))
}

func (m *MockCalculatorEditor) RemoveStage(ctx context.Context, id, stageID string) (*storage.Calculator, error) {
	return m.result(m.Called(ctx, id, stageID))
}

func (m *MockCalculatorEditor) ReorderStages(ctx context.Context, id string, from, to int) (*storage.Calculator, error) {
	return m.result(m.Called(ctx, id, from, to))
}

func (m *MockCalculatorEditor) AddRole(ctx context.Context, id string, role storage.Role) (*storage.Calculator, error) {
	return m.result(m.Called(ctx, id, role))
}

func (m *MockCalculatorEditor) RemoveRole(ctx context.Context, id, roleID string) (*storage.Calculator, error) {
	return m.result(m.Called(ctx, id, roleID))
}

func (m *MockCalculatorEditor) AppendStages(ctx context.Context, id string, stages []storage.Stage) (*storage.Calculator, error) {
	return m.result(m.Called(ctx, id, stages))
}

func newRouter(calcs CalculatorEditor) *chi.Mux {
	log := slog.Default()
	r := chi.NewRouter()
	r.Route("/api/calculators/{id}", func(r chi.Router) {
		r.Patch("/", RenameCalculator(log, calcs))
		r.Put("/assumptions", UpdateAssumptions(log, calcs))
		r.Put("/wizard", UpdateWizard(log, calcs))
		r.Post("/stages", AddStage(log, calcs))
		r.Post("/stages/reorder", ReorderStages(log, calcs))
		r.Post("/stages/append", AppendStages(log, calcs))
		r.Put("/stages/{stageId}", UpdateStage(log, calcs))
		r.Delete("/stages/{stageId}", RemoveStage(log, calcs))
		r.Post("/roles", AddRole(log, calcs))
		r.Delete("/roles/{roleId}", RemoveRole(log, calcs))
	})
	return r
}

func serve(calcs CalculatorEditor, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	newRouter(calcs).ServeHTTP(rr, req)
	return rr
}

var updated = &storage.Calculator{ID: "calc-1", Name: "Claims"}

func TestRenameCalculator(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("Rename", mock.Anything, "calc-1", "Claims").Return(updated, nil)

	rr := serve(calcs, http.MethodPatch, "/api/calculators/calc-1", `{"name":"Claims"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp storage.Calculator
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, "Claims", resp.Name)
	calcs.AssertExpectations(t)
}

func TestRenameCalculator_Invalid(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("Rename", mock.Anything, "calc-1", "").
		Return(nil, calculator.ErrInvalidInput)

	rr := serve(calcs, http.MethodPatch, "/api/calculators/calc-1", `{"name":""}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateAssumptions(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("UpdateAssumptions", mock.Anything, "calc-1", mock.MatchedBy(func(a storage.Assumptions) bool {
		return len(a.Roles) == 1 && a.Roles[0].HourlyRate == 120 && a.Currency == storage.CurrencyGBP
	})).Return(updated, nil)

	rr := serve(calcs, http.MethodPut, "/api/calculators/calc-1/assumptions",
		`{"roles":[{"id":"r1","label":"Analyst","hourlyRate":120}],"hoursPerWeek":37.5,"loadedMultiplier":1.25,"annualToolCost":20000,"currency":"GBP"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	calcs.AssertExpectations(t)
}

func TestUpdateWizard(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("UpdateWizard", mock.Anything, "calc-1", storage.WizardState{CurrentStep: 3}).Return(updated, nil)

	rr := serve(calcs, http.MethodPut, "/api/calculators/calc-1/wizard", `{"currentStep":3}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	calcs.AssertExpectations(t)
}

func TestAddStage_Default(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("AddStage", mock.Anything, "calc-1", (*storage.Stage)(nil)).Return(updated, nil)

	rr := serve(calcs, http.MethodPost, "/api/calculators/calc-1/stages", "")

	assert.Equal(t, http.StatusCreated, rr.Code)
	calcs.AssertExpectations(t)
}

func TestAddStage_Custom(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("AddStage", mock.Anything, "calc-1", mock.MatchedBy(func(s *storage.Stage) bool {
		return s != nil && s.Name == "Triage" && s.PeopleAffected == 4
	})).Return(updated, nil)

	rr := serve(calcs, http.MethodPost, "/api/calculators/calc-1/stages", `{"name":"Triage","peopleAffected":4}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	calcs.AssertExpectations(t)
}

func TestAddStage_InvalidJSON(t *testing.T) {
	calcs := new(MockCalculatorEditor)

	rr := serve(calcs, http.MethodPost, "/api/calculators/calc-1/stages", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	calcs.AssertNotCalled(t, "AddStage", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStage_UsesPathID(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("UpdateStage", mock.Anything, "calc-1", mock.MatchedBy(func(s storage.Stage) bool {
		return s.ID == "stage-2" && s.Name == "Review"
	})).Return(updated, nil)

	rr := serve(calcs, http.MethodPut, "/api/calculators/calc-1/stages/stage-2", `{"id":"ignored","name":"Review"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	calcs.AssertExpectations(t)
}

func TestRemoveStage_NotFound(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("RemoveStage", mock.Anything, "calc-1", "nope").Return(nil, calculator.ErrStageNotFound)

	rr := serve(calcs, http.MethodDelete, "/api/calculators/calc-1/stages/nope", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReorderStages(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("ReorderStages", mock.Anything, "calc-1", 2, 0).Return(updated, nil)

	rr := serve(calcs, http.MethodPost, "/api/calculators/calc-1/stages/reorder", `{"from":2,"to":0}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	calcs.AssertExpectations(t)
}

func TestAppendStages(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("AppendStages", mock.Anything, "calc-1", mock.MatchedBy(func(s []storage.Stage) bool {
		return len(s) == 2 && s[1].Name == "Reporting"
	})).Return(updated, nil)

	rr := serve(calcs, http.MethodPost, "/api/calculators/calc-1/stages/append",
		`{"stages":[{"name":"Monitoring"},{"name":"Reporting"}]}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	calcs.AssertExpectations(t)
}

func TestAppendStages_Empty(t *testing.T) {
	calcs := new(MockCalculatorEditor)

	rr := serve(calcs, http.MethodPost, "/api/calculators/calc-1/stages/append", `{"stages":[]}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAddRole(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("AddRole", mock.Anything, "calc-1", storage.Role{Label: "Auditor", HourlyRate: 90}).Return(updated, nil)

	rr := serve(calcs, http.MethodPost, "/api/calculators/calc-1/roles", `{"label":"Auditor","hourlyRate":90}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	calcs.AssertExpectations(t)
}

func TestRemoveRole_LastRole(t *testing.T) {
	calcs := new(MockCalculatorEditor)
	calcs.On("RemoveRole", mock.Anything, "calc-1", "only").Return(nil, calculator.ErrLastRole)

	rr := serve(calcs, http.MethodDelete, "/api/calculators/calc-1/roles/only", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "at least one role")
}
