package service

import (
	"context"

	"github.com/rs/zerolog"
)

// Moderation removes confessions.
type Moderation struct {
	repo Repository
}

func NewModeration(repo Repository) *Moderation { return &Moderation{repo: repo} }

// Delete hard-deletes id. An id that does not exist is a no-op.
func (m *Moderation) Delete(ctx context.Context, id uint) error {
	if err := m.repo.Delete(ctx, id); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Uint("confession_id", id).Msg("confession deleted")
	return nil
}
