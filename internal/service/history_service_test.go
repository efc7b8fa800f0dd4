package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lshigami/Lukman/internal/model"
	"github.com/lshigami/Lukman/internal/repository"
	"github.com/lshigami/Lukman/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, repo repository.QueryRepository, n int) []uint {
	t.Helper()
	base := time.Date(2025, 11, 29, 10, 0, 0, 0, time.UTC)
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		q := &model.Query{Question: fmt.Sprintf("question number %d", i), CreatedAt: ts}
		r := &model.Response{Advice: fmt.Sprintf("advice %d", i), ModelUsed: "gemini-2.5-flash", CreatedAt: ts}
		require.NoError(t, repo.CreateWithResponse(context.Background(), q, r))
		ids = append(ids, q.ID)
	}
	return ids
}

func TestHistoryServiceList(t *testing.T) {
	repo := repository.NewQueryRepository(testutil.NewTestDB(t))
	ids := seedHistory(t, repo, 3)
	svc := NewHistoryService(repo)

	resp, err := svc.List(context.Background(), DefaultHistoryLimit, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	require.Len(t, resp.Queries, 3)

	assert.Equal(t, ids[2], resp.Queries[0].ID)
	assert.Equal(t, "question number 2", resp.Queries[0].Question)
	assert.Equal(t, "advice 2", resp.Queries[0].Advice)
	assert.Equal(t, "gemini-2.5-flash", resp.Queries[0].AIModel)
	assert.Equal(t, ids[0], resp.Queries[2].ID)
}

func TestHistoryServiceListEmpty(t *testing.T) {
	svc := NewHistoryService(repository.NewQueryRepository(testutil.NewTestDB(t)))

	resp, err := svc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Zero(t, resp.Total)
	assert.NotNil(t, resp.Queries)
	assert.Empty(t, resp.Queries)
}

func TestHistoryServiceListPages(t *testing.T) {
	repo := repository.NewQueryRepository(testutil.NewTestDB(t))
	seedHistory(t, repo, 5)
	svc := NewHistoryService(repo)

	first, err := svc.List(context.Background(), 2, 0)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	last, err := svc.List(context.Background(), 2, 4)
	require.NoError(t, err)

	assert.Equal(t, int64(5), first.Total)
	assert.Len(t, first.Queries, 2)
	assert.Len(t, second.Queries, 2)
	assert.Len(t, last.Queries, 1)

	seen := map[uint]bool{}
	for _, page := range [][]uint{
		{first.Queries[0].ID, first.Queries[1].ID},
		{second.Queries[0].ID, second.Queries[1].ID},
		{last.Queries[0].ID},
	} {
		for _, id := range page {
			assert.False(t, seen[id], "id %d repeated", id)
			seen[id] = true
		}
	}
}

type countingRepo struct {
	repository.QueryRepository
	lastLimit int
}

func (r *countingRepo) FindAnswered(ctx context.Context, limit, offset int) ([]model.Query, error) {
	r.lastLimit = limit
	return r.QueryRepository.FindAnswered(ctx, limit, offset)
}

func TestHistoryServiceListClampsLimit(t *testing.T) {
	repo := &countingRepo{QueryRepository: repository.NewQueryRepository(testutil.NewTestDB(t))}
	svc := NewHistoryService(repo)

	_, err := svc.List(context.Background(), 500, 0)
	require.NoError(t, err)
	assert.Equal(t, MaxHistoryLimit, repo.lastLimit)

	_, err = svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultHistoryLimit, repo.lastLimit)
}

func TestHistoryServiceGet(t *testing.T) {
	repo := repository.NewQueryRepository(testutil.NewTestDB(t))
	ids := seedHistory(t, repo, 1)
	svc := NewHistoryService(repo)

	item, err := svc.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, "question number 0", item.Question)
	assert.Equal(t, "advice 0", item.Advice)

	_, err = svc.Get(context.Background(), ids[0]+100)
	assert.True(t, errors.Is(err, ErrNotFound))
}
