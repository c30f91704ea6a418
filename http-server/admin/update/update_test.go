package update

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

type MockSettingsUpdater struct {
	mock.Mock
}

func (m *MockSettingsUpdater) SaveSettings(ctx context.Context, settings storage.WhiteLabelSettings) (storage.WhiteLabelSettings, error) {
	args := m.Called(ctx, settings)
	return args.Get(0).(storage.WhiteLabelSettings), args.Error(1)
}

func put(update SettingsUpdater, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	UpdateSettingsAdmin(slog.Default(), update).ServeHTTP(rr, req)
	return rr
}

func TestUpdateSettingsAdmin(t *testing.T) {
	in := storage.WhiteLabelSettings{CompanyName: "Acme", PrimaryColor: "#112233"}
	out := in
	out.AccentColor = "#10b981"

	update := new(MockSettingsUpdater)
	update.On("SaveSettings", mock.Anything, in).Return(out, nil)

	rr := put(update, `{"companyName":"Acme","primaryColor":"#112233"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp storage.WhiteLabelSettings
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, "#10b981", resp.AccentColor)
	update.AssertExpectations(t)
}

func TestUpdateSettingsAdmin_InvalidColor(t *testing.T) {
	update := new(MockSettingsUpdater)
	update.On("SaveSettings", mock.Anything, mock.Anything).
		Return(storage.WhiteLabelSettings{}, fmt.Errorf("op: %w: colors must be #rgb or #rrggbb", calculator.ErrInvalidInput))

	rr := put(update, `{"primaryColor":"blue"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "colors must be")
}

func TestUpdateSettingsAdmin_InvalidJSON(t *testing.T) {
	update := new(MockSettingsUpdater)

	rr := put(update, `not json`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	update.AssertNotCalled(t, "SaveSettings", mock.Anything, mock.Anything)
}
