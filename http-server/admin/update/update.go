package update

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/MithunXcpu/value-calculator/http-server/apiutil"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

// maxSettingsBytes leaves room for a base64 encoded logo.
const maxSettingsBytes = 2 << 20

type SettingsUpdater interface {
	SaveSettings(ctx context.Context, settings storage.WhiteLabelSettings) (storage.WhiteLabelSettings, error)
}

func UpdateSettingsAdmin(log *slog.Logger, update SettingsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateSettingsAdmin"

		var req storage.WhiteLabelSettings
		if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxSettingsBytes), &req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		saved, err := update.SaveSettings(ctx, req)
		if err != nil {
			apiutil.Error(w, log, op, err)
			return
		}

		log.Info("white-label settings updated", slog.String("company", saved.CompanyName))
		render.JSON(w, r, saved)
	}
}
