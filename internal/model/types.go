package model

import (
	"fmt"
	"time"
)

// Category classifies a memo. The set is closed; parse input with
// ParseCategory rather than comparing raw strings.
type Category string

const (
	CategoryBusiness Category = "business"
	CategoryPersonal Category = "personal"
)

// ParseCategory validates a raw category value.
func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryBusiness, CategoryPersonal:
		return Category(raw), nil
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrValidation, raw)
}

// FilterCategory is the category predicate of a filter: every category plus "all".
type FilterCategory string

const (
	FilterCategoryAll      FilterCategory = "all"
	FilterCategoryBusiness FilterCategory = FilterCategory(CategoryBusiness)
	FilterCategoryPersonal FilterCategory = FilterCategory(CategoryPersonal)
)

// ParseFilterCategory validates a raw filter-category value. Empty means "all".
func ParseFilterCategory(raw string) (FilterCategory, error) {
	switch FilterCategory(raw) {
	case "", FilterCategoryAll:
		return FilterCategoryAll, nil
	case FilterCategoryBusiness, FilterCategoryPersonal:
		return FilterCategory(raw), nil
	}
	return "", fmt.Errorf("%w: unknown filter category %q", ErrValidation, raw)
}

// Period is the time-window predicate of a filter.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodToday     Period = "today"
	PeriodThisWeek  Period = "this-week"
	PeriodThisMonth Period = "this-month"
)

// ParsePeriod validates a raw period value. Empty means "all".
func ParsePeriod(raw string) (Period, error) {
	switch Period(raw) {
	case "", PeriodAll:
		return PeriodAll, nil
	case PeriodToday, PeriodThisWeek, PeriodThisMonth:
		return Period(raw), nil
	}
	return "", fmt.Errorf("%w: unknown period %q", ErrValidation, raw)
}

// Memo is a titled, categorized, timestamped body of text owned by one identity.
type Memo struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Category  Category   `json:"category"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// EffectiveTime returns UpdatedAt when set, falling back to CreatedAt.
func (m *Memo) EffectiveTime() time.Time {
	if m.UpdatedAt != nil {
		return *m.UpdatedAt
	}
	return m.CreatedAt
}

// MemoUpdate carries the fields an update is allowed to touch.
// CreatedAt is immutable and deliberately absent.
type MemoUpdate struct {
	Title     string
	Body      string
	Category  Category
	UpdatedAt time.Time
}

// Draft is the not-yet-persisted input buffer for a new memo.
type Draft struct {
	Title    string
	Body     string
	Category Category
}

// NewDraft returns an empty draft with the default category.
func NewDraft() Draft { return Draft{Category: CategoryBusiness} }

// EditSession is transient scratch state for one in-place memo edit.
// It references the memo by persistent id so a filter change cannot
// retarget an open edit.
type EditSession struct {
	MemoID   string
	Title    string
	Body     string
	Category Category
}

// FilterState is the pure view state driving the filtered projection.
type FilterState struct {
	Keyword  string
	Category FilterCategory
	Period   Period
}

// NewFilterState returns the all-pass filter.
func NewFilterState() FilterState {
	return FilterState{Category: FilterCategoryAll, Period: PeriodAll}
}

// Identity is the authenticated principal owning memos.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
}
