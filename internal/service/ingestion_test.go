package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalbistaa/campus-confessions/internal/apperr"
	"github.com/sujalbistaa/campus-confessions/internal/config"
	"github.com/sujalbistaa/campus-confessions/internal/db"
	"github.com/sujalbistaa/campus-confessions/internal/db/dbtest"
	"github.com/sujalbistaa/campus-confessions/internal/models"
	"github.com/sujalbistaa/campus-confessions/internal/sanitize"
	"github.com/sujalbistaa/campus-confessions/internal/service"
)

func newServices(t *testing.T) (*service.Services, *db.ConfessionRepo) {
	t.Helper()
	repo := dbtest.Repo(t)
	return service.New(repo, sanitize.New(config.DefaultBlockedWords)), repo
}

func TestSubmitStoresWithDefaults(t *testing.T) {
	svc, _ := newServices(t)

	c, err := svc.Ingestion.Submit(context.Background(), "I love pizza at midnight", "FOOD")
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "I love pizza at midnight", c.Text)
	assert.Equal(t, models.CategoryFood, c.Category)
	assert.Zero(t, c.Likes)

	c, err = svc.Ingestion.Submit(context.Background(), "no category here", "")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryGeneral, c.Category)
}

func TestSubmitNormalizesCategoryCase(t *testing.T) {
	svc, _ := newServices(t)

	c, err := svc.Ingestion.Submit(context.Background(), "secret crush on my lab partner", " crush ")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryCrush, c.Category)
}

func TestSubmitTooShortWritesNothing(t *testing.T) {
	svc, repo := newServices(t)

	for _, text := range []string{"", "hi", "abcd", "héé!"} {
		_, err := svc.Ingestion.Submit(context.Background(), text, "GENERAL")
		assert.ErrorIs(t, err, service.ErrTooShort, "text %q", text)
		assert.Equal(t, "Confession too short", err.Error())
	}

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSubmitLengthBoundaries(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	_, err := svc.Ingestion.Submit(ctx, strings.Repeat("a", service.MinTextLength), "")
	assert.NoError(t, err)

	// the 500 character ceiling is enforced by the client only
	c, err := svc.Ingestion.Submit(ctx, strings.Repeat("a", 501), "")
	require.NoError(t, err)
	assert.Len(t, c.Text, 501)
}

func TestSubmitCountsUTF16Units(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	// each emoji is a surrogate pair, so three of them count as six
	_, err := svc.Ingestion.Submit(ctx, "😀😀😀", "")
	assert.NoError(t, err)

	_, err = svc.Ingestion.Submit(ctx, "😀😀", "")
	assert.ErrorIs(t, err, service.ErrTooShort)

	_, err = svc.Ingestion.Submit(ctx, "héllo", "")
	assert.NoError(t, err)
}

func TestSubmitKeepsUnknownCategory(t *testing.T) {
	svc, repo := newServices(t)

	c, err := svc.Ingestion.Submit(context.Background(), "a perfectly fine confession", "Random")
	require.NoError(t, err)
	assert.Equal(t, models.Category("RANDOM"), c.Category)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSubmitMasksBlockedWords(t *testing.T) {
	svc, _ := newServices(t)

	c, err := svc.Ingestion.Submit(context.Background(), "this is Abuse and HATE", "RANT")
	require.NoError(t, err)
	assert.Equal(t, "this is *** and ***", c.Text)

	got, err := svc.Query.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "this is *** and ***", got.Text)
}

func TestSubmitPassesStoreErrors(t *testing.T) {
	storeErr := apperr.Store(errors.New("permission denied for table confession"))
	repo := &failingRepo{err: storeErr}
	svc := service.New(repo, sanitize.New(config.DefaultBlockedWords))

	_, err := svc.Ingestion.Submit(context.Background(), "this will not be stored", "")
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, "permission denied for table confession", err.Error())
	assert.Equal(t, 1, repo.creates)

	_, err = svc.Ingestion.Submit(context.Background(), "tiny", "")
	assert.ErrorIs(t, err, service.ErrTooShort)
	assert.Equal(t, 1, repo.creates)
}

func TestNewIngestionRegistersLengthRule(t *testing.T) {
	var ing *service.Ingestion
	require.NotPanics(t, func() {
		ing = service.NewIngestion(&failingRepo{}, sanitize.New(nil))
	})

	_, err := ing.Submit(context.Background(), "abc", "")
	assert.ErrorIs(t, err, service.ErrTooShort)
}
