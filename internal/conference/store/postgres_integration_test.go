//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"employees/internal/conference/models"
	"employees/internal/conference/store"
	id "employees/pkg/domain"
	"employees/pkg/platform/sentinel"
	"employees/pkg/testutil/containers"
)

type PostgresConferenceSuite struct {
	suite.Suite

	pg    *containers.PostgresContainer
	store *store.Postgres
}

func TestPostgresConferenceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresConferenceSuite))
}

func (s *PostgresConferenceSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.pg.DB)
}

func (s *PostgresConferenceSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(),
		"employee_conferences", "conferences"))
}

func (s *PostgresConferenceSuite) TestFindOpen() {
	ctx := context.Background()
	now := time.Now()

	openID, err := s.store.Create(ctx, &models.Conference{Name: "GopherConf", EndsAt: now.Add(time.Hour)})
	s.Require().NoError(err)
	endedID, err := s.store.Create(ctx, &models.Conference{Name: "Legacy Summit", EndsAt: now.Add(-time.Hour)})
	s.Require().NoError(err)

	s.Run("open conference is returned", func() {
		conf, err := s.store.FindOpen(ctx, openID, now)
		s.Require().NoError(err)
		s.Equal("GopherConf", conf.Name)
		s.Equal(openID, conf.ID)
	})

	s.Run("ended conference reads as not found", func() {
		_, err := s.store.FindOpen(ctx, endedID, now)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("unknown id reads as not found", func() {
		_, err := s.store.FindOpen(ctx, id.ConferenceID(999), now)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}
