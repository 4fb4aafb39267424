// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mission-analyzer/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a pooled lib/pq connection. It does not dial; call Ping.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// schema is applied statement by statement; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		email           TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		first_name      TEXT,
		last_name       TEXT,
		company         TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS analyses (
		id                 TEXT PRIMARY KEY,
		user_id            TEXT REFERENCES users(id) ON DELETE SET NULL,
		mission_text       TEXT NOT NULL,
		industry           TEXT NOT NULL,
		word_count         INTEGER NOT NULL,
		overall_score      INTEGER NOT NULL,
		clarity_score      INTEGER NOT NULL,
		specificity_score  INTEGER NOT NULL,
		impact_score       INTEGER NOT NULL,
		authenticity_score INTEGER NOT NULL,
		memorability_score INTEGER NOT NULL,
		full_analysis      JSONB,
		recommendations    JSONB,
		alternatives       JSONB,
		is_ai_analysis     BOOLEAN NOT NULL DEFAULT FALSE,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS analyses_user_created_idx ON analyses (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS email_captures (
		email          TEXT PRIMARY KEY,
		first_name     TEXT,
		company        TEXT,
		mission_text   TEXT,
		overall_score  INTEGER,
		industry       TEXT,
		report_sent    BOOLEAN NOT NULL DEFAULT FALSE,
		report_sent_at TIMESTAMPTZ,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates missing tables and indexes.
func (c *PostgresClient) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
