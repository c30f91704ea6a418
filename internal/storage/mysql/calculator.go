package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/MithunXcpu/value-calculator/internal/migrate"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

const errDuplicateEntry = 1062

func (s *Storage) InsertCalculator(ctx context.Context, calc *storage.Calculator) error {
	const op = "storage.mysql.InsertCalculator"

	doc, err := migrate.Encode(calc)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO vc_calculators (id, name, schema_version, stage_count, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		calc.ID, calc.Name, calc.SchemaVersion, len(calc.Stages), doc, calc.CreatedAt.UTC(), calc.UpdatedAt.UTC())
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry {
			return fmt.Errorf("%s: %w", op, storage.ErrCalculatorExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SaveCalculator inserts calc or replaces the stored document with the same id.
func (s *Storage) SaveCalculator(ctx context.Context, calc *storage.Calculator) error {
	const op = "storage.mysql.SaveCalculator"

	doc, err := migrate.Encode(calc)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO vc_calculators (id, name, schema_version, stage_count, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			schema_version = VALUES(schema_version),
			stage_count = VALUES(stage_count),
			document = VALUES(document),
			updated_at = VALUES(updated_at)`,
		calc.ID, calc.Name, calc.SchemaVersion, len(calc.Stages), doc, calc.CreatedAt.UTC(), calc.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetCalculator(ctx context.Context, id string) (*storage.Calculator, error) {
	const op = "storage.mysql.GetCalculator"

	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM vc_calculators WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
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
	const op = "storage.mysql.ListCalculators"

	rows, err := s.db.QueryContext(ctx, `
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

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return infos, nil
}

func (s *Storage) DeleteCalculator(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteCalculator"

	res, err := s.db.ExecContext(ctx, `DELETE FROM vc_calculators WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrCalculatorNotFound)
	}

	return nil
}
