package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Lukman/internal/model"
	"github.com/lshigami/Lukman/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type QueryRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo QueryRepository
	ctx  context.Context
}

func (s *QueryRepositoryTestSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = NewQueryRepository(s.db)
	s.ctx = context.Background()
}

func TestQueryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(QueryRepositoryTestSuite))
}

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func (s *QueryRepositoryTestSuite) createPair(question string, createdAt time.Time) *model.Query {
	q := &model.Query{Question: question, CreatedAt: createdAt}
	r := &model.Response{Advice: "advice for " + question, ModelUsed: "gemini-2.5-flash", CreatedAt: createdAt}
	require.NoError(s.T(), s.repo.CreateWithResponse(s.ctx, q, r))
	return q
}

func (s *QueryRepositoryTestSuite) countRows() (queries, responses int64) {
	s.db.Model(&model.Query{}).Count(&queries)
	s.db.Model(&model.Response{}).Count(&responses)
	return
}

func (s *QueryRepositoryTestSuite) TestCreateWithResponse() {
	t := s.T()
	q := &model.Query{Question: "Kelläm agyrýar we gyzzyrma bar", Age: intPtr(30), Gender: strPtr("erkek")}
	r := &model.Response{Advice: "Dynç alyň.", ModelUsed: "gemini-2.5-flash"}

	require.NoError(t, s.repo.CreateWithResponse(s.ctx, q, r))

	assert.NotZero(t, q.ID)
	assert.Equal(t, q.ID, r.QueryID)
	assert.False(t, q.CreatedAt.IsZero())
	require.NotNil(t, q.Response)

	found, err := s.repo.FindAnsweredByID(s.ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kelläm agyrýar we gyzzyrma bar", found.Question)
	assert.Equal(t, 30, *found.Age)
	assert.Equal(t, "erkek", *found.Gender)
	require.NotNil(t, found.Response)
	assert.Equal(t, "Dynç alyň.", found.Response.Advice)
	assert.Equal(t, "gemini-2.5-flash", found.Response.ModelUsed)
}

func (s *QueryRepositoryTestSuite) TestCreateWithResponseRollsBackBothRows() {
	t := s.T()
	err := s.db.Callback().Create().Before("gorm:create").Register("test:fail_responses", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "ai_responses" {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)

	q := &model.Query{Question: "Kelläm agyrýar we gyzzyrma bar"}
	r := &model.Response{Advice: "Dynç alyň.", ModelUsed: "gemini-2.5-flash"}

	err = s.repo.CreateWithResponse(s.ctx, q, r)
	require.Error(t, err)
	assert.Zero(t, q.ID)
	assert.Nil(t, q.Response)

	queries, responses := s.countRows()
	assert.Zero(t, queries)
	assert.Zero(t, responses)
}

func (s *QueryRepositoryTestSuite) TestFindAnsweredOrdersNewestFirst() {
	t := s.T()
	base := time.Date(2025, 11, 29, 10, 30, 0, 0, time.UTC)
	s.createPair("first question text", base)
	s.createPair("third question text", base.Add(2*time.Minute))
	s.createPair("second question text", base.Add(time.Minute))

	queries, err := s.repo.FindAnswered(s.ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, queries, 3)

	assert.Equal(t, "third question text", queries[0].Question)
	assert.Equal(t, "second question text", queries[1].Question)
	assert.Equal(t, "first question text", queries[2].Question)
	for i := 0; i+1 < len(queries); i++ {
		assert.False(t, queries[i].CreatedAt.Before(queries[i+1].CreatedAt))
		require.NotNil(t, queries[i].Response)
	}
}

func (s *QueryRepositoryTestSuite) TestFindAnsweredPaginatesWithoutRepeats() {
	t := s.T()
	same := time.Date(2025, 11, 29, 10, 30, 0, 0, time.UTC)
	s.createPair("tie question one", same)
	s.createPair("tie question two", same)
	s.createPair("tie question three", same)

	seen := map[uint]bool{}
	for offset := 0; offset < 3; offset++ {
		page, err := s.repo.FindAnswered(s.ctx, 1, offset)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.False(t, seen[page[0].ID], "id %d returned twice", page[0].ID)
		seen[page[0].ID] = true
	}

	empty, err := s.repo.FindAnswered(s.ctx, 1, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func (s *QueryRepositoryTestSuite) TestQueryWithoutResponseIsHidden() {
	t := s.T()
	s.createPair("answered question text", time.Now())
	orphan := model.Query{Question: "orphan question text"}
	require.NoError(t, s.db.Create(&orphan).Error)

	_, err := s.repo.FindAnsweredByID(s.ctx, orphan.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	total, err := s.repo.CountAnswered(s.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	queries, err := s.repo.FindAnswered(s.ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, "answered question text", queries[0].Question)
}

func (s *QueryRepositoryTestSuite) TestFindAnsweredByIDUnknown() {
	_, err := s.repo.FindAnsweredByID(s.ctx, 42)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}
