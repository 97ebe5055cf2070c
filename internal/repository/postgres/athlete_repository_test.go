package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/roster/internal/repository"
	"github.com/vytor/roster/internal/repository/postgres"
	"github.com/vytor/roster/internal/repository/repotest"
)

// Runs against a disposable database named by ROSTER_TEST_DATABASE_URL.
func TestAthleteRepository(t *testing.T) {
	dsn := os.Getenv("ROSTER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("ROSTER_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := postgres.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.EnsureSchema(ctx, pool))

	suite.Run(t, &repotest.AthleteSuite{
		NewRepo: func() repository.AthleteRepository {
			_, err := pool.Exec(ctx, `TRUNCATE athletes`)
			require.NoError(t, err)
			return postgres.NewAthleteRepository(pool)
		},
	})
}
