package print

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

type MockPrintPageRenderer struct {
	mock.Mock
}

func (m *MockPrintPageRenderer) PrintPage(ctx context.Context, id string, discountRate float64) ([]byte, error) {
	args := m.Called(ctx, id, discountRate)

	var page []byte
	if args.Get(0) != nil {
		page = args.Get(0).([]byte)
	}
	return page, args.Error(1)
}

func serve(pages PrintPageRenderer, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/calculators/{id}/report/print", PrintReport(slog.Default(), pages, 0.10))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestPrintReport_Success(t *testing.T) {
	pages := new(MockPrintPageRenderer)
	pages.On("PrintPage", mock.Anything, "calc-1", 0.05).Return([]byte("<!DOCTYPE html><h1>Claims</h1>"), nil)

	rr := serve(pages, "/api/calculators/calc-1/report/print?discount_rate=0.05")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "<h1>Claims</h1>")
	pages.AssertExpectations(t)
}

func TestPrintReport_NotFound(t *testing.T) {
	pages := new(MockPrintPageRenderer)
	pages.On("PrintPage", mock.Anything, "missing", 0.10).Return(nil, storage.ErrCalculatorNotFound)

	rr := serve(pages, "/api/calculators/missing/report/print")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
