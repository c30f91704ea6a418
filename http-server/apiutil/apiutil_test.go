package apiutil

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MithunXcpu/value-calculator/internal/migrate"
	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	"github.com/MithunXcpu/value-calculator/internal/storage"
	"github.com/MithunXcpu/value-calculator/internal/templates"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"calculator not found", fmt.Errorf("op: %w", storage.ErrCalculatorNotFound), http.StatusNotFound},
		{"stage not found", fmt.Errorf("op: %w", calculator.ErrStageNotFound), http.StatusNotFound},
		{"role not found", calculator.ErrRoleNotFound, http.StatusNotFound},
		{"template not found", templates.ErrTemplateNotFound, http.StatusNotFound},
		{"exists", storage.ErrCalculatorExists, http.StatusConflict},
		{"last role", fmt.Errorf("op: %w", calculator.ErrLastRole), http.StatusUnprocessableEntity},
		{"invalid", fmt.Errorf("op: %w: name is required", calculator.ErrInvalidInput), http.StatusBadRequest},
		{"malformed", migrate.ErrMalformedRecord, http.StatusBadRequest},
		{"unsupported", migrate.ErrUnsupportedVersion, http.StatusBadRequest},
		{"other", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("service.calculator.Rename: %w", fmt.Errorf("%w: name is required", calculator.ErrInvalidInput))
	assert.Equal(t, "invalid input: name is required", Message(err))

	assert.Equal(t, "Internal error", Message(errors.New("dial tcp: refused")))
}

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, slog.Default(), "test", fmt.Errorf("op: %w", storage.ErrCalculatorNotFound))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "calculator not found", strings.TrimSpace(rr.Body.String()))
}

func TestDiscountRate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rate, err := DiscountRate(req, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.1, rate)

	req = httptest.NewRequest(http.MethodGet, "/x?discount_rate=0.08", nil)
	rate, err = DiscountRate(req, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.08, rate)

	req = httptest.NewRequest(http.MethodGet, "/x?discount_rate=12", nil)
	rate, err = DiscountRate(req, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 0.12, rate, 1e-12)

	req = httptest.NewRequest(http.MethodGet, "/x?discount_rate=abc", nil)
	_, err = DiscountRate(req, 0.1)
	assert.ErrorIs(t, err, calculator.ErrInvalidInput)
}

func TestNormalizeRate(t *testing.T) {
	assert.Equal(t, 0.08, NormalizeRate(0.08))
	assert.Equal(t, 0.08, NormalizeRate(8))
	assert.Equal(t, 1.0, NormalizeRate(1))
	assert.Equal(t, -0.2, NormalizeRate(-0.2))
}
