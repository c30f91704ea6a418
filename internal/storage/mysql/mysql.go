package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/MithunXcpu/value-calculator/internal/config"
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Storage) (*Storage, error) {
	const op = "storage.mysql.New"

	dsn := mysql.NewConfig()
	dsn.User = cfg.DBUser
	dsn.Passwd = cfg.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.DBHost, strconv.Itoa(cfg.DBPort))
	dsn.DBName = cfg.DBName
	dsn.ParseTime = true

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB wraps an already opened pool.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS vc_calculators (
		id             VARCHAR(64)  NOT NULL PRIMARY KEY,
		name           VARCHAR(255) NOT NULL,
		schema_version INT          NOT NULL,
		stage_count    INT          NOT NULL DEFAULT 0,
		document       JSON         NOT NULL,
		created_at     DATETIME(6)  NOT NULL,
		updated_at     DATETIME(6)  NOT NULL,
		KEY idx_vc_calculators_updated (updated_at)
	)`,
	`CREATE TABLE IF NOT EXISTS vc_settings (
		id       TINYINT NOT NULL PRIMARY KEY,
		document JSON    NOT NULL
	)`,
}

func (s *Storage) EnsureSchema(ctx context.Context) error {
	const op = "storage.mysql.EnsureSchema"

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}
