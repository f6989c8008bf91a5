//go:build integration

package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"campuscoffee/internal/pos/models"
	"campuscoffee/pkg/platform/sentinel"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *sql.DB
	store     *Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("campuscoffee"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sql.Open("postgres", dsn)
	s.Require().NoError(err)
	s.Require().NoError(db.Ping())
	s.db = db

	s.store = NewPostgres(db)
	s.Require().NoError(s.store.EnsureSchema(ctx))
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.db.Exec(`DELETE FROM pos`)
	s.Require().NoError(err)
}

func newPgPos(name string) models.Pos {
	return models.Pos{
		Name:        name,
		Description: "integration fixture",
		Type:        models.PosTypeCafe,
		Campus:      models.CampusAltstadt,
		Street:      "Hauptstraße",
		HouseNumber: "42",
		PostalCode:  69117,
		City:        "Heidelberg",
	}
}

func (s *PostgresStoreSuite) TestCreateAndGet() {
	ctx := context.Background()

	saved, err := s.store.Upsert(ctx, newPgPos("Uni Cafe"))
	s.Require().NoError(err)
	s.NotZero(saved.ID)
	s.False(saved.CreatedAt.IsZero())

	found, err := s.store.GetByID(ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("Uni Cafe", found.Name)
	s.Equal(models.PosTypeCafe, found.Type)
	s.Equal(models.CampusAltstadt, found.Campus)
	s.Equal(69117, found.PostalCode)

	_, err = s.store.GetByID(ctx, saved.ID+1000)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpdate() {
	ctx := context.Background()

	saved, err := s.store.Upsert(ctx, newPgPos("Before"))
	s.Require().NoError(err)

	saved.Name = "After"
	saved.Type = models.PosTypeBakery
	updated, err := s.store.Upsert(ctx, saved)
	s.Require().NoError(err)

	s.Equal(saved.ID, updated.ID)
	s.Equal("After", updated.Name)
	s.Equal(models.PosTypeBakery, updated.Type)
	s.Equal(saved.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func (s *PostgresStoreSuite) TestCaseInsensitiveNameUniqueness() {
	ctx := context.Background()

	_, err := s.store.Upsert(ctx, newPgPos("Marstall"))
	s.Require().NoError(err)

	_, err = s.store.Upsert(ctx, newPgPos("MARSTALL"))
	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *PostgresStoreSuite) TestGetAllOrderedAndClear() {
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three"} {
		_, err := s.store.Upsert(ctx, newPgPos(name))
		s.Require().NoError(err)
	}

	all, err := s.store.GetAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("One", all[0].Name)
	s.Equal("Three", all[2].Name)

	s.Require().NoError(s.store.Clear(ctx))
	all, err = s.store.GetAll(ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

// TestConcurrentUniqueNameViolation verifies that concurrent creates with
// the same name admit exactly one winner; the rest observe ErrAlreadyUsed.
func (s *PostgresStoreSuite) TestConcurrentUniqueNameViolation() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Upsert(ctx, newPgPos("Contested Cafe"))
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get conflict")

	all, err := s.store.GetAll(ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}
