// Package postgres stores calculators as JSONB documents in PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MithunXcpu/value-calculator/internal/migrate"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

const uniqueViolation = "23505"

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, url string) (*Storage, error) {
	const op = "storage.postgres.New"

	if url == "" {
		return nil, fmt.Errorf("%s: database url is not set", op)
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("%s: parse config: %w", op, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) EnsureSchema(ctx context.Context) error {
	const op = "storage.postgres.EnsureSchema"

	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS vc_calculators (
			id             TEXT        PRIMARY KEY,
			name           TEXT        NOT NULL,
			schema_version INT         NOT NULL,
			stage_count    INT         NOT NULL DEFAULT 0,
			document       JSONB       NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL,
			updated_at     TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_vc_calculators_updated ON vc_calculators (updated_at DESC);
		CREATE TABLE IF NOT EXISTS vc_settings (
			id       SMALLINT PRIMARY KEY,
			document JSONB    NOT NULL
		);`)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) InsertCalculator(ctx context.Context, calc *storage.Calculator) error {
	const op = "storage.postgres.InsertCalculator"

	doc, err := migrate.Encode(calc)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO vc_calculators (id, name, schema_version, stage_count, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		calc.ID, calc.Name, calc.SchemaVersion, len(calc.Stages), string(doc), calc.CreatedAt, calc.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrCalculatorExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) SaveCalculator(ctx context.Context, calc *storage.Calculator) error {
	const op = "storage.postgres.SaveCalculator"

	doc, err := migrate.Encode(calc)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO vc_calculators (id, name, schema_version, stage_count, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			schema_version = EXCLUDED.schema_version,
			stage_count = EXCLUDED.stage_count,
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at`,
		calc.ID, calc.Name, calc.SchemaVersion, len(calc.Stages), string(doc), calc.CreatedAt, calc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetCalculator(ctx context.Context, id string) (*storage.Calculator, error) {
	const op = "storage.postgres.GetCalculator"

	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT document FROM vc_calculators WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrCalculatorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	calc, err := migrate.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: id=%s: %w", op, id, err)
	}

	return calc, nil
}

func (s *Storage) ListCalculators(ctx context.Context) ([]storage.CalculatorInfo, error) {
	const op = "storage.postgres.ListCalculators"

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, stage_count, created_at, updated_at
		FROM vc_calculators
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	infos := []storage.CalculatorInfo{}
	for rows.Next() {
		var info storage.CalculatorInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.StageCount, &info.CreatedAt, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return infos, nil
}

func (s *Storage) DeleteCalculator(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteCalculator"

	tag, err := s.pool.Exec(ctx, `DELETE FROM vc_calculators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrCalculatorNotFound)
	}

	return nil
}
