package mongo_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/roster/internal/repository"
	"github.com/vytor/roster/internal/repository/mongo"
	"github.com/vytor/roster/internal/repository/repotest"
)

// Runs against the deployment named by ROSTER_TEST_MONGO_URI.
func TestAthleteRepository(t *testing.T) {
	uri := os.Getenv("ROSTER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("ROSTER_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })
	db := client.Database("roster_test")

	suite.Run(t, &repotest.AthleteSuite{
		NewRepo: func() repository.AthleteRepository {
			require.NoError(t, db.Collection("athletes").Drop(ctx))
			repo, err := mongo.NewAthleteRepository(ctx, db)
			require.NoError(t, err)
			return repo
		},
	})
}
