package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sujalbistaa/campus-confessions/internal/apperr"
	"github.com/sujalbistaa/campus-confessions/internal/models"
	"github.com/sujalbistaa/campus-confessions/internal/sanitize"
)

// MinTextLength is counted in UTF-16 code units on the untrimmed text, the
// same unit browsers report for string length. The 500 unit ceiling is a
// client-side limit only.
const MinTextLength = 5

var ErrTooShort = apperr.Validation("Confession too short")

type submission struct {
	Text     string `validate:"utf16min=5"`
	Category models.Category
}

// Ingestion validates, sanitizes and stores new confessions.
type Ingestion struct {
	repo      Repository
	sanitizer *sanitize.Sanitizer
	validate  *validator.Validate
}

// NewIngestion builds an Ingestion with its own validator.
func NewIngestion(repo Repository, s *sanitize.Sanitizer) *Ingestion {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("utf16min", utf16Min); err != nil {
		panic("service: register utf16min validation: " + err.Error())
	}
	return &Ingestion{repo: repo, sanitizer: s, validate: v}
}

// Submit stores text under category. Nothing is written when validation fails.
func (i *Ingestion) Submit(ctx context.Context, text, category string) (models.Confession, error) {
	sub := submission{Text: text, Category: normalizeCategory(category)}
	if err := i.validate.StructCtx(ctx, sub); err != nil {
		return models.Confession{}, validationError(err)
	}

	masked := i.sanitizer.Contains(sub.Text)
	c, err := i.repo.Create(ctx, models.Draft{
		Text:     i.sanitizer.Sanitize(sub.Text),
		Category: sub.Category,
		Likes:    0,
	})
	if err != nil {
		return models.Confession{}, err
	}

	zerolog.Ctx(ctx).Info().
		Uint("confession_id", c.ID).
		Str("category", string(c.Category)).
		Bool("masked", masked).
		Msg("confession created")
	return c, nil
}

// normalizeCategory upper-cases category. Any label is accepted; empty means GENERAL.
func normalizeCategory(s string) models.Category {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.CategoryGeneral
	}
	// Caser is stateful, so one per call
	return models.Category(cases.Upper(language.Und).String(s))
}

// utf16Min checks that a string field holds at least param UTF-16 code units.
func utf16Min(fl validator.FieldLevel) bool {
	want, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf16Len(fl.Field().String()) >= want
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// validationError turns the first failing rule into a caller-facing error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation(err.Error())
	}
	fe := verrs[0]
	if fe.StructField() == "Text" && fe.Tag() == "utf16min" {
		return ErrTooShort
	}
	return apperr.Validation(fe.Error())
}
