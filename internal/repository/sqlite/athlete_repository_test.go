package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/roster/internal/repository"
	"github.com/vytor/roster/internal/repository/repotest"
	"github.com/vytor/roster/internal/repository/sqlite"
	"github.com/vytor/roster/internal/testutil"
)

func TestAthleteRepository(t *testing.T) {
	suite.Run(t, &repotest.AthleteSuite{
		NewRepo: func() repository.AthleteRepository {
			db := testutil.NewTestDB(t)
			t.Cleanup(func() { testutil.MustClose(t, db) })
			return sqlite.NewAthleteRepository(db)
		},
	})
}
