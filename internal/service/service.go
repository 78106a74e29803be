// Package service holds the confession pipeline: ingestion, querying,
// engagement and moderation, each over a Repository.
package service

import (
	"context"

	"github.com/sujalbistaa/campus-confessions/internal/models"
	"github.com/sujalbistaa/campus-confessions/internal/sanitize"
)

// Repository is the CRUD contract the services need from the store.
// Implementations report missing rows as apperr.KindNotFound and driver
// failures as apperr.KindStore.
type Repository interface {
	Create(ctx context.Context, d models.Draft) (models.Confession, error)
	GetByID(ctx context.Context, id uint) (models.Confession, error)
	List(ctx context.Context, opts models.ListOptions) ([]models.Confession, error)
	Count(ctx context.Context) (int64, error)
	IncrementLikes(ctx context.Context, id uint) (models.Confession, error)
	Delete(ctx context.Context, id uint) error
}

// Services bundles every service built over one Repository.
type Services struct {
	Ingestion  *Ingestion
	Query      *Query
	Engagement *Engagement
	Moderation *Moderation
}

// New wires all services to repo.
func New(repo Repository, s *sanitize.Sanitizer) *Services {
	return &Services{
		Ingestion:  NewIngestion(repo, s),
		Query:      NewQuery(repo),
		Engagement: NewEngagement(repo),
		Moderation: NewModeration(repo),
	}
}
