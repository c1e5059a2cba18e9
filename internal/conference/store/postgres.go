package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"employees/internal/conference/models"
	id "employees/pkg/domain"
	"employees/pkg/platform/sentinel"
)

// Postgres persists conferences in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed conference store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// FindOpen filters on the end time in the query, so a missing conference and
// an already-ended one produce the same not-found signal.
func (s *Postgres) FindOpen(ctx context.Context, conferenceID id.ConferenceID, now time.Time) (*models.Conference, error) {
	query := `
		SELECT id, name, ends_at
		FROM conferences
		WHERE id = $1 AND ends_at > $2
	`
	var conf models.Conference
	err := s.db.QueryRowContext(ctx, query, int64(conferenceID), now).Scan(&conf.ID, &conf.Name, &conf.EndsAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find open conference: %w", err)
	}
	return &conf, nil
}

// Create inserts a conference and returns its assigned id.
func (s *Postgres) Create(ctx context.Context, conf *models.Conference) (id.ConferenceID, error) {
	query := `
		INSERT INTO conferences (name, ends_at)
		VALUES ($1, $2)
		RETURNING id
	`
	var assigned id.ConferenceID
	err := s.db.QueryRowContext(ctx, query, conf.Name, conf.EndsAt).Scan(&assigned)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, sentinel.ErrConflict
		}
		return 0, fmt.Errorf("create conference: %w", err)
	}
	conf.ID = assigned
	return assigned, nil
}
