// Package cache fronts the conference store with a redis read-through cache.
// Open-conference lookups sit on the registration hot path and the records
// are small and immutable, so a short TTL is safe.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"employees/internal/conference/models"
	id "employees/pkg/domain"
)

// DefaultTTL bounds how long an open-conference record may be served from
// cache. Entries additionally never outlive the conference end time.
const DefaultTTL = 30 * time.Second

// Source is the underlying lookup the cache decorates.
type Source interface {
	FindOpen(ctx context.Context, conferenceID id.ConferenceID, now time.Time) (*models.Conference, error)
}

// Store is a read-through cache over a conference Source. Cache failures are
// logged and fall through to the source; the cache never turns a working
// lookup into an error.
type Store struct {
	source Source
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a read-through cache. A zero ttl uses DefaultTTL.
func New(source Source, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{source: source, client: client, ttl: ttl, logger: logger}
}

type cachedConference struct {
	ID     int64     `json:"id"`
	Name   string    `json:"name"`
	EndsAt time.Time `json:"endsAt"`
}

// FindOpen serves from cache when possible, reloading from the source on a
// miss. Cached entries are re-checked against now so a conference that ended
// inside the TTL window is still rejected.
func (s *Store) FindOpen(ctx context.Context, conferenceID id.ConferenceID, now time.Time) (*models.Conference, error) {
	key := s.key(conferenceID)

	if data, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var cached cachedConference
		if err := json.Unmarshal(data, &cached); err == nil {
			conf := &models.Conference{
				ID:     id.ConferenceID(cached.ID),
				Name:   cached.Name,
				EndsAt: cached.EndsAt,
			}
			if conf.IsOpen(now) {
				return conf, nil
			}
			// Ended while cached: fall through so the source gives the
			// authoritative not-found signal.
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.WarnContext(ctx, "conference cache read failed", "error", err)
	}

	conf, err := s.source.FindOpen(ctx, conferenceID, now)
	if err != nil {
		return nil, err
	}
	s.save(ctx, key, conf, now)
	return conf, nil
}

func (s *Store) save(ctx context.Context, key string, conf *models.Conference, now time.Time) {
	ttl := s.ttl
	if remaining := conf.EndsAt.Sub(now); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(cachedConference{
		ID:     int64(conf.ID),
		Name:   conf.Name,
		EndsAt: conf.EndsAt,
	})
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "conference cache write failed", "error", err)
	}
}

func (s *Store) key(conferenceID id.ConferenceID) string {
	return fmt.Sprintf("conference:open:%s", conferenceID)
}
