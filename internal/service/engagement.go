package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sujalbistaa/campus-confessions/internal/models"
)

// Engagement records likes.
//
// Increments are atomic in the store, so concurrent likes on one confession
// are all counted. There is no per-client deduplication here; "one like per
// browser" is tracked only by the client.
type Engagement struct {
	repo Repository
}

func NewEngagement(repo Repository) *Engagement { return &Engagement{repo: repo} }

// Like adds one like to id and returns the updated confession.
func (e *Engagement) Like(ctx context.Context, id uint) (models.Confession, error) {
	c, err := e.repo.IncrementLikes(ctx, id)
	if err != nil {
		return models.Confession{}, err
	}
	zerolog.Ctx(ctx).Debug().Uint("confession_id", id).Int("likes", c.Likes).Msg("confession liked")
	return c, nil
}
