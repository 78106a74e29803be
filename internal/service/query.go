package service

import (
	"context"

	"github.com/sujalbistaa/campus-confessions/internal/models"
)

// Query serves listings and aggregate stats. Nothing is cached.
type Query struct {
	repo Repository
}

func NewQuery(repo Repository) *Query { return &Query{repo: repo} }

// List returns the first models.PageSize confessions for opts.
// Rows past the first page are not reachable.
func (q *Query) List(ctx context.Context, opts models.ListOptions) ([]models.Confession, error) {
	opts.Limit = models.PageSize
	return q.repo.List(ctx, opts)
}

// Get returns one confession or a not-found error.
func (q *Query) Get(ctx context.Context, id uint) (models.Confession, error) {
	return q.repo.GetByID(ctx, id)
}

// Stats counts every confession and picks the most liked.
// Ties among the top entries follow store order.
func (q *Query) Stats(ctx context.Context) (models.Stats, error) {
	total, err := q.repo.Count(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	top, err := q.repo.List(ctx, models.ListOptions{Sort: models.SortPopularity, Limit: models.TopLikedSize})
	if err != nil {
		return models.Stats{}, err
	}
	return models.Stats{TotalConfessions: total, TopLiked: top}, nil
}
