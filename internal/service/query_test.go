package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalbistaa/campus-confessions/internal/apperr"
	"github.com/sujalbistaa/campus-confessions/internal/config"
	"github.com/sujalbistaa/campus-confessions/internal/models"
	"github.com/sujalbistaa/campus-confessions/internal/sanitize"
	"github.com/sujalbistaa/campus-confessions/internal/service"
)

func submitN(t *testing.T, svc *service.Services, n int) []models.Confession {
	t.Helper()
	out := make([]models.Confession, 0, n)
	for i := 0; i < n; i++ {
		c, err := svc.Ingestion.Submit(context.Background(), fmt.Sprintf("confession #%d", i), "")
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func likeN(t *testing.T, svc *service.Services, id uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.Engagement.Like(context.Background(), id)
		require.NoError(t, err)
	}
}

func TestListPopularityIsNonIncreasing(t *testing.T) {
	svc, _ := newServices(t)
	cs := submitN(t, svc, 6)
	for i, n := range []int{2, 0, 5, 1, 5, 3} {
		likeN(t, svc, cs[i].ID, n)
	}

	got, err := svc.Query.List(context.Background(), models.ListOptions{Sort: models.SortPopularity})
	require.NoError(t, err)
	require.Len(t, got, 6)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i].Likes, got[i-1].Likes)
	}
	assert.Equal(t, 5, got[0].Likes)
}

func TestListRecencyIsNonIncreasing(t *testing.T) {
	svc, _ := newServices(t)
	cs := submitN(t, svc, 4)

	got, err := svc.Query.List(context.Background(), models.ListOptions{Sort: models.SortRecency})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, cs[3].ID, got[0].ID)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt))
	}
}

func TestListIgnoresCallerLimit(t *testing.T) {
	svc, _ := newServices(t)
	submitN(t, svc, 3)

	got, err := svc.Query.List(context.Background(), models.ListOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestStats(t *testing.T) {
	svc, _ := newServices(t)
	cs := submitN(t, svc, 7)
	for i, n := range []int{1, 4, 0, 6, 2, 3, 5} {
		likeN(t, svc, cs[i].ID, n)
	}

	st, err := svc.Query.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 7, st.TotalConfessions)
	require.Len(t, st.TopLiked, models.TopLikedSize)

	likes := make([]int, 0, len(st.TopLiked))
	for _, c := range st.TopLiked {
		likes = append(likes, c.Likes)
	}
	assert.Equal(t, []int{6, 5, 4, 3, 2}, likes)
}

func TestStatsEmpty(t *testing.T) {
	svc, _ := newServices(t)

	st, err := svc.Query.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.TotalConfessions)
	assert.Empty(t, st.TopLiked)
}

func TestQueryPassesStoreErrors(t *testing.T) {
	storeErr := apperr.Store(errors.New("connection reset by peer"))
	svc := service.New(&failingRepo{err: storeErr}, sanitize.New(config.DefaultBlockedWords))

	_, err := svc.Query.List(context.Background(), models.ListOptions{})
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.Query.Stats(context.Background())
	assert.ErrorIs(t, err, storeErr)
}
