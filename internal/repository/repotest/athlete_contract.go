// Package repotest holds behaviour every AthleteRepository backend must share.
package repotest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/vytor/roster/internal/models"
	"github.com/vytor/roster/internal/repository"
)

// AthleteSuite runs the repository contract against the backend returned
// by NewRepo, called once per test with an empty store.
type AthleteSuite struct {
	suite.Suite
	NewRepo func() repository.AthleteRepository
	repo    repository.AthleteRepository
}

func (s *AthleteSuite) SetupTest() {
	s.repo = s.NewRepo()
}

func (s *AthleteSuite) insert(first, last string) *models.Athlete {
	a, err := s.repo.Insert(context.Background(), models.Athlete{
		FirstName: first,
		LastName:  last,
		Birthdate: "1990-05-04",
		Location:  "Lyon",
	})
	s.Require().NoError(err)
	return a
}

func (s *AthleteSuite) TestInsertAndGet() {
	created := s.insert("Zinedine", "Zidane")
	s.Assert().NotEmpty(created.ID)

	got, err := s.repo.Get(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("Zinedine", got.FirstName)
	s.Assert().Equal("1990-05-04", got.Birthdate)
	s.Assert().Nil(got.Avatar)
	s.Assert().False(got.CreatedAt.IsZero())
}

func (s *AthleteSuite) TestGet_NotFound() {
	got, err := s.repo.Get(context.Background(), "00000000-0000-0000-0000-000000000000")
	s.Assert().NoError(err)
	s.Assert().Nil(got)
}

func (s *AthleteSuite) TestList_OrderedByName() {
	s.insert("Marie", "Curie")
	s.insert("Ada", "Byron")

	athletes, err := s.repo.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(athletes, 2)
	s.Assert().Equal("Byron", athletes[0].LastName)
	s.Assert().Equal("Curie", athletes[1].LastName)
}

func (s *AthleteSuite) TestList_Empty() {
	athletes, err := s.repo.List(context.Background())
	s.Require().NoError(err)
	s.Assert().Empty(athletes)
}

func (s *AthleteSuite) TestUpdate_KeepsAvatarWhenAbsent() {
	ctx := context.Background()
	created := s.insert("Al", "Bo")
	url := "https://cdn.example/avatars/a.png"

	withAvatar := models.MergeUpdate(models.AthleteFields{FirstName: "Al", LastName: "Bo", Birthdate: "1990-05-04", Location: "NY"}, &url)
	s.Require().NoError(s.repo.Update(ctx, created.ID, withAvatar))

	withoutAvatar := models.MergeUpdate(models.AthleteFields{FirstName: "Alan", LastName: "Bo", Birthdate: "1991-01-01", Location: "Paris"}, nil)
	s.Require().NoError(s.repo.Update(ctx, created.ID, withoutAvatar))

	got, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Assert().Equal("Alan", got.FirstName)
	s.Assert().Equal("Paris", got.Location)
	s.Assert().Equal("1991-01-01", got.Birthdate)
	s.Require().NotNil(got.Avatar)
	s.Assert().Equal(url, *got.Avatar)
}

func (s *AthleteSuite) TestUpdate_LastWriterWins() {
	ctx := context.Background()
	created := s.insert("Al", "Bo")

	s.Require().NoError(s.repo.Update(ctx, created.ID, models.MergeUpdate(models.AthleteFields{FirstName: "First", LastName: "Bo", Birthdate: "1990-05-04", Location: "NY"}, nil)))
	s.Require().NoError(s.repo.Update(ctx, created.ID, models.MergeUpdate(models.AthleteFields{FirstName: "Second", LastName: "Bo", Birthdate: "1990-05-04", Location: "NY"}, nil)))

	got, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Assert().Equal("Second", got.FirstName)
}

func (s *AthleteSuite) TestUpdate_NotFound() {
	err := s.repo.Update(context.Background(), "00000000-0000-0000-0000-000000000000", models.AthleteUpdate{})
	s.Assert().ErrorIs(err, repository.ErrNotFound)
}

func (s *AthleteSuite) TestPing() {
	s.Assert().NoError(s.repo.Ping(context.Background()))
}
