package session

import (
	"strings"
	"time"

	"github.com/memoflow/memoflow/internal/model"
)

// Apply is the filter/search pipeline: a pure, order-preserving function of
// the working set, the filter state, and a fixed "now". A memo passes when
// all three predicates hold.
func Apply(memos []*model.Memo, f model.FilterState, now time.Time) []*model.Memo {
	out := make([]*model.Memo, 0, len(memos))
	for _, m := range memos {
		if matchKeyword(m, f.Keyword) && matchCategory(m, f.Category) && matchPeriod(m, f.Period, now) {
			out = append(out, m)
		}
	}
	return out
}

// matchKeyword is a case-sensitive substring match over title and body.
// An empty keyword passes everything.
func matchKeyword(m *model.Memo, keyword string) bool {
	if keyword == "" {
		return true
	}
	return strings.Contains(m.Title, keyword) || strings.Contains(m.Body, keyword)
}

func matchCategory(m *model.Memo, fc model.FilterCategory) bool {
	switch fc {
	case model.FilterCategoryAll, "":
		return true
	case model.FilterCategoryBusiness:
		return m.Category == model.CategoryBusiness
	case model.FilterCategoryPersonal:
		return m.Category == model.CategoryPersonal
	}
	return false
}

// matchPeriod tests the memo's effective timestamp against a window
// computed from now in local time.
func matchPeriod(m *model.Memo, p model.Period, now time.Time) bool {
	t := m.EffectiveTime()
	switch p {
	case model.PeriodAll, "":
		return true
	case model.PeriodToday:
		y1, m1, d1 := t.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case model.PeriodThisWeek:
		start := startOfWeek(now)
		end := start.AddDate(0, 0, 7)
		return !t.Before(start) && t.Before(end)
	case model.PeriodThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0)
		return !t.Before(start) && t.Before(end)
	}
	return false
}

// startOfWeek is the most recent Sunday at local midnight.
func startOfWeek(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}
