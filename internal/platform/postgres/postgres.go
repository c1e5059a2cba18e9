// Package postgres opens the database handle used by all stores.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver
)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Schema is the service's table layout. The (employee_id, conference_id)
// primary key is the durable guard against duplicate registrations.
const Schema = `
CREATE TABLE IF NOT EXISTS employees (
	id            BIGSERIAL PRIMARY KEY,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	middle_name   TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL UNIQUE,
	clothing_size TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS conferences (
	id      BIGSERIAL PRIMARY KEY,
	name    TEXT NOT NULL,
	ends_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS employee_conferences (
	employee_id   BIGINT NOT NULL REFERENCES employees (id),
	conference_id BIGINT NOT NULL REFERENCES conferences (id),
	PRIMARY KEY (employee_id, conference_id)
);
`

// EnsureSchema creates the tables when missing. Production deployments run
// real migrations; this keeps local and test environments self-contained.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
