package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/exam-ingest/internal/common"
)

const schema = `
CREATE TABLE IF NOT EXISTS import_batches (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mode TEXT NOT NULL,
	format TEXT NOT NULL,
	status TEXT NOT NULL,
	method TEXT NOT NULL DEFAULT '',
	pages INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS questions (
	id TEXT PRIMARY KEY,
	batch_id TEXT NOT NULL REFERENCES import_batches(id),
	position INTEGER NOT NULL DEFAULT 0,
	content TEXT NOT NULL,
	type TEXT NOT NULL,
	answer TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_questions_batch ON questions(batch_id);
`

// DB wraps the sql handle with the dialect needed to rebind placeholders.
type DB struct {
	*sql.DB
	postgres bool
	pool     *pgxpool.Pool
}

// Open connects by DSN. postgres:// DSNs go through a pgx pool; anything
// else is treated as a SQLite path, which keeps single-user CLI runs free
// of server setup.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("db.connecting", "dsn", cfg.DSN)

	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		pc, err := pgxpool.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("parse dsn: %w", err)
		}
		pc.MaxConns = int32(cfg.MaxConns)
		pc.MaxConnLifetime = cfg.MaxConnLifetime
		pc.ConnConfig.RuntimeParams["application_name"] = "exam-ingest"

		pool, err := pgxpool.NewWithConfig(ctx, pc)
		if err != nil {
			logger.Error("db.connect_failed", "error", err)
			return nil, err
		}
		db := &DB{DB: stdlib.OpenDBFromPool(pool), postgres: true, pool: pool}
		logger.Info("db.connected", "driver", "pgx")
		return db, nil
	}

	sqldb, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		logger.Error("db.connect_failed", "error", err)
		return nil, err
	}
	// modernc sqlite serializes writes; one writer connection avoids
	// SQLITE_BUSY under concurrent imports.
	sqldb.SetMaxOpenConns(1)
	logger.Info("db.connected", "driver", "sqlite")
	return &DB{DB: sqldb, postgres: false}, nil
}

// Migrate applies the schema. Idempotent.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Health pings with a bounded wait.
func (d *DB) Health(ctx context.Context, timeout time.Duration) error {
	hctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return d.PingContext(hctx)
}

func (d *DB) Close() error {
	err := d.DB.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

// rebind converts ?-style placeholders to $n for postgres.
func (d *DB) rebind(query string) string {
	if !d.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
