package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/MithunXcpu/value-calculator/internal/storage"
)

const settingsRowID = 1

func (s *Storage) GetWhiteLabelSettings(ctx context.Context) (storage.WhiteLabelSettings, error) {
	const op = "storage.mysql.GetWhiteLabelSettings"

	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM vc_settings WHERE id = ?`, settingsRowID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
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
	const op = "storage.mysql.SaveWhiteLabelSettings"

	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO vc_settings (id, document) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE document = VALUES(document)`, settingsRowID, doc)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
