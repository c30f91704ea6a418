package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/MithunXcpu/value-calculator/http-server/apiutil"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

type SettingsProvider interface {
	Settings(ctx context.Context) (storage.WhiteLabelSettings, error)
}

func GetSettingsAdmin(log *slog.Logger, settings SettingsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetSettingsAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		s, err := settings.Settings(ctx)
		if err != nil {
			apiutil.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, s)
	}
}
