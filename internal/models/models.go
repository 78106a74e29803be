package models

import "time"

// Confession represents a single anonymous post as the API exposes it.
type Confession struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Likes     int       `json:"likes"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// Draft is a sanitized, validated confession waiting to be stored.
type Draft struct {
	Text     string
	Category Category
	Likes    int
}

// Stats is derived on every request and never persisted.
type Stats struct {
	TotalConfessions int64        `json:"totalConfessions"`
	TopLiked         []Confession `json:"topLiked"`
}

// Category is an upper-case label. The constants are the well-known
// labels; stored values are not limited to them.
type Category string

const (
	CategoryGeneral  Category = "GENERAL"
	CategoryCrush    Category = "CRUSH"
	CategoryAcademic Category = "ACADEMIC"
	CategoryCampus   Category = "CAMPUS"
	CategoryFood     Category = "FOOD"
	CategoryRant     Category = "RANT"
	CategoryFunny    Category = "FUNNY"
	CategorySecret   Category = "SECRET"
)

// Sort selects the ordering of a confession listing.
type Sort int

const (
	// SortRecency orders by creation time, newest first.
	SortRecency Sort = iota
	// SortPopularity orders by like count, highest first.
	SortPopularity
)

// ParseSort maps the sort query parameter. Only "likes" selects popularity.
func ParseSort(s string) Sort {
	if s == "likes" {
		return SortPopularity
	}
	return SortRecency
}

func (s Sort) String() string {
	if s == SortPopularity {
		return "likes"
	}
	return "createdAt"
}

// PageSize caps every listing. There is no cursor or offset.
const PageSize = 100

// TopLikedSize is the number of confessions reported in Stats.
const TopLikedSize = 5

// ListOptions narrows a confession listing.
type ListOptions struct {
	Sort   Sort
	Search string
	Limit  int
}
