package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sujalbistaa/campus-confessions/internal/apperr"
	"github.com/sujalbistaa/campus-confessions/internal/models"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = apperr.NotFound("Confession not found")

// confessionRow is the storage shape of a confession. Column names follow the
// hosted table: content lives in "confessions" and the counter in "like".
type confessionRow struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	Confessions string    `gorm:"column:confessions;not null"`
	Category    string    `gorm:"column:category"`
	Like        int       `gorm:"column:like;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (confessionRow) TableName() string { return "confession" }

// toModel and rowFromDraft are the only places storage and public field names meet.
func (r confessionRow) toModel() models.Confession {
	cat := models.Category(r.Category)
	if cat == "" {
		cat = models.CategoryGeneral
	}
	return models.Confession{
		ID:        r.ID,
		Text:      r.Confessions,
		Likes:     r.Like,
		Category:  cat,
		CreatedAt: r.CreatedAt,
	}
}

func rowFromDraft(d models.Draft) confessionRow {
	return confessionRow{
		Confessions: d.Text,
		Category:    string(d.Category),
		Like:        d.Likes,
	}
}

var (
	likeColumn = clause.Column{Name: "like"}
	likeEscape = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

// ConfessionRepo is a thin CRUD facade over the confession table.
// Failures are returned once, unretried.
type ConfessionRepo struct {
	db *gorm.DB
}

// NewConfessionRepo wraps an open connection.
func NewConfessionRepo(db *gorm.DB) *ConfessionRepo {
	return &ConfessionRepo{db: db}
}

// Create inserts d and returns the stored confession with its assigned id and timestamp.
func (r *ConfessionRepo) Create(ctx context.Context, d models.Draft) (models.Confession, error) {
	row := rowFromDraft(d)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Confession{}, wrap(err)
	}
	return row.toModel(), nil
}

// GetByID returns ErrNotFound when id does not exist.
func (r *ConfessionRepo) GetByID(ctx context.Context, id uint) (models.Confession, error) {
	var row confessionRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return models.Confession{}, wrap(err)
	}
	return row.toModel(), nil
}

// List returns at most models.PageSize confessions in descending sort order.
// Ties fall back to the newest id first.
func (r *ConfessionRepo) List(ctx context.Context, opts models.ListOptions) ([]models.Confession, error) {
	limit := opts.Limit
	if limit <= 0 || limit > models.PageSize {
		limit = models.PageSize
	}

	q := r.db.WithContext(ctx).Model(&confessionRow{})
	// Case folding happens in the store: SQLite's LOWER only folds ASCII, so
	// "É" does not find "é" there. Postgres folds per its collation.
	if s := strings.TrimSpace(opts.Search); s != "" {
		pat := "%" + likeEscape.Replace(strings.ToLower(s)) + "%"
		q = q.Where(`LOWER(confessions) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`, pat, pat)
	}

	var rows []confessionRow
	err := q.Order(orderBy(opts.Sort)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, wrap(err)
	}

	out := make([]models.Confession, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// Count returns the exact number of stored confessions.
func (r *ConfessionRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&confessionRow{}).Count(&n).Error; err != nil {
		return 0, wrap(err)
	}
	return n, nil
}

// UpdateLikes overwrites the like counter with n.
func (r *ConfessionRepo) UpdateLikes(ctx context.Context, id uint, n int) (models.Confession, error) {
	if n < 0 {
		return models.Confession{}, apperr.Validation("Likes must not be negative")
	}
	return r.setLikes(ctx, id, n)
}

// IncrementLikes adds one to the like counter in a single UPDATE, so
// concurrent callers never lose an increment.
func (r *ConfessionRepo) IncrementLikes(ctx context.Context, id uint) (models.Confession, error) {
	return r.setLikes(ctx, id, gorm.Expr("? + ?", likeColumn, 1))
}

func (r *ConfessionRepo) setLikes(ctx context.Context, id uint, value any) (models.Confession, error) {
	var out models.Confession
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&confessionRow{}).Where("id = ?", id).UpdateColumn(likeColumn.Name, value)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		var row confessionRow
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		out = row.toModel()
		return nil
	})
	if err != nil {
		return models.Confession{}, wrap(err)
	}
	return out, nil
}

// Delete removes the row for id. Deleting an absent id is not an error.
func (r *ConfessionRepo) Delete(ctx context.Context, id uint) error {
	return wrap(r.db.WithContext(ctx).Delete(&confessionRow{}, id).Error)
}

// Ping checks the store is reachable.
func (r *ConfessionRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return wrap(err)
	}
	return wrap(sqlDB.PingContext(ctx))
}

func orderBy(s models.Sort) clause.OrderByColumn {
	col := "created_at"
	if s == models.SortPopularity {
		col = likeColumn.Name
	}
	return clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: true}
}

// wrap maps gorm errors onto the apperr kinds.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return apperr.Store(err)
}
