package service_test

import (
	"context"

	"github.com/sujalbistaa/campus-confessions/internal/models"
)

// failingRepo returns err from every call and counts creates.
type failingRepo struct {
	err     error
	creates int
}

func (f *failingRepo) Create(context.Context, models.Draft) (models.Confession, error) {
	f.creates++
	return models.Confession{}, f.err
}

func (f *failingRepo) GetByID(context.Context, uint) (models.Confession, error) {
	return models.Confession{}, f.err
}

func (f *failingRepo) List(context.Context, models.ListOptions) ([]models.Confession, error) {
	return nil, f.err
}

func (f *failingRepo) Count(context.Context) (int64, error) { return 0, f.err }

func (f *failingRepo) IncrementLikes(context.Context, uint) (models.Confession, error) {
	return models.Confession{}, f.err
}

func (f *failingRepo) Delete(context.Context, uint) error { return f.err }
