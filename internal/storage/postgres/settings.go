package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

const settingsRowID = 1

func (s *Storage) GetWhiteLabelSettings(ctx context.Context) (storage.WhiteLabelSettings, error) {
	const op = "storage.postgres.GetWhiteLabelSettings"

	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT document FROM vc_settings WHERE id = $1`, settingsRowID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.WhiteLabelSettings{}, fmt.Errorf("%s: %w", op, storage.ErrSettingsNotFound)
	}
	if err != nil {
		return storage.WhiteLabelSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	var settings storage.WhiteLabelSettings
	if err := json.Unmarshal(doc, &settings); err != nil {
		return storage.WhiteLabelSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	return settings, nil
}

func (s *Storage) SaveWhiteLabelSettings(ctx context.Context, settings storage.WhiteLabelSettings) error {
	const op = "storage.postgres.SaveWhiteLabelSettings"

	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO vc_settings (id, document) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document`, settingsRowID, string(doc))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
