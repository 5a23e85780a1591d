package session

import (
	"testing"
	"time"

	"github.com/memoflow/memoflow/internal/model"
)

// now is a Wednesday mid-month so week and month windows differ.
var filterNow = time.Date(2026, 3, 18, 15, 0, 0, 0, time.Local)

func memoAt(title, body string, cat model.Category, t time.Time) *model.Memo {
	return &model.Memo{ID: title, Title: title, Body: body, Category: cat, CreatedAt: t}
}

func titles(memos []*model.Memo) []string {
	out := make([]string, len(memos))
	for i, m := range memos {
		out[i] = m.Title
	}
	return out
}

func TestApplyKeywordIsCaseSensitiveSubstring(t *testing.T) {
	memos := []*model.Memo{
		memoAt("Report Q1", "numbers", model.CategoryBusiness, filterNow),
		memoAt("notes", "weekly report draft", model.CategoryBusiness, filterNow),
		memoAt("lowercase", "rep only", model.CategoryBusiness, filterNow),
	}

	got := Apply(memos, model.FilterState{Keyword: "Rep", Category: model.FilterCategoryAll, Period: model.PeriodAll}, filterNow)
	if len(got) != 1 || got[0].Title != "Report Q1" {
		t.Errorf("keyword 'Rep' matched %v, want [Report Q1]", titles(got))
	}

	got = Apply(memos, model.FilterState{Keyword: "report", Category: model.FilterCategoryAll, Period: model.PeriodAll}, filterNow)
	if len(got) != 1 || got[0].Title != "notes" {
		t.Errorf("keyword 'report' matched %v, want [notes] via body", titles(got))
	}

	got = Apply(memos, model.FilterState{Keyword: "xyz", Category: model.FilterCategoryAll, Period: model.PeriodAll}, filterNow)
	if len(got) != 0 {
		t.Errorf("keyword 'xyz' matched %v, want none", titles(got))
	}
}

func TestApplyCategoryExcludesOtherCategory(t *testing.T) {
	memos := []*model.Memo{
		memoAt("work", "", model.CategoryBusiness, filterNow),
		memoAt("home", "", model.CategoryPersonal, filterNow),
	}
	got := Apply(memos, model.FilterState{Category: model.FilterCategoryPersonal, Period: model.PeriodAll}, filterNow)
	if len(got) != 1 || got[0].Title != "home" {
		t.Errorf("personal filter matched %v", titles(got))
	}
	got = Apply(memos, model.FilterState{Category: model.FilterCategoryAll, Period: model.PeriodAll}, filterNow)
	if len(got) != 2 {
		t.Errorf("all filter matched %v", titles(got))
	}
}

func TestApplyPeriodWindows(t *testing.T) {
	yesterdayLate := time.Date(2026, 3, 17, 23, 59, 0, 0, time.Local)
	lastMonth := time.Date(2026, 2, 27, 10, 0, 0, 0, time.Local)
	weekStart := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local) // the Sunday of filterNow's week
	memos := []*model.Memo{
		memoAt("today", "", model.CategoryBusiness, filterNow.Add(-2*time.Hour)),
		memoAt("yesterday-late", "", model.CategoryBusiness, yesterdayLate),
		memoAt("week-start", "", model.CategoryBusiness, weekStart),
		memoAt("last-month", "", model.CategoryBusiness, lastMonth),
	}

	cases := []struct {
		period model.Period
		want   []string
	}{
		{model.PeriodAll, []string{"today", "yesterday-late", "week-start", "last-month"}},
		// a memo from 23:59 yesterday is not Today but still ThisWeek and ThisMonth
		{model.PeriodToday, []string{"today"}},
		{model.PeriodThisWeek, []string{"today", "yesterday-late", "week-start"}},
		{model.PeriodThisMonth, []string{"today", "yesterday-late", "week-start"}},
	}
	for _, tc := range cases {
		got := titles(Apply(memos, model.FilterState{Category: model.FilterCategoryAll, Period: tc.period}, filterNow))
		if len(got) != len(tc.want) {
			t.Errorf("period %s matched %v, want %v", tc.period, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("period %s matched %v, want %v", tc.period, got, tc.want)
				break
			}
		}
	}
}

func TestApplyUsesUpdatedAtWhenSet(t *testing.T) {
	updated := filterNow.Add(-time.Hour)
	old := memoAt("bumped", "", model.CategoryBusiness, time.Date(2025, 12, 1, 0, 0, 0, 0, time.Local))
	old.UpdatedAt = &updated

	got := Apply([]*model.Memo{old}, model.FilterState{Category: model.FilterCategoryAll, Period: model.PeriodToday}, filterNow)
	if len(got) != 1 {
		t.Error("memo updated today should pass the Today window")
	}
}

func TestApplyIsPureAndOrderPreserving(t *testing.T) {
	memos := []*model.Memo{
		memoAt("a", "k", model.CategoryBusiness, filterNow),
		memoAt("b", "", model.CategoryPersonal, filterNow),
		memoAt("c", "k", model.CategoryBusiness, filterNow),
	}
	f := model.FilterState{Keyword: "k", Category: model.FilterCategoryBusiness, Period: model.PeriodAll}

	first := titles(Apply(memos, f, filterNow))
	second := titles(Apply(memos, f, filterNow))
	if len(first) != 2 || first[0] != "a" || first[1] != "c" {
		t.Errorf("filtered order = %v, want [a c]", first)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Apply not deterministic: %v vs %v", first, second)
		}
	}
	// the input slice is never mutated
	if memos[0].Title != "a" || memos[1].Title != "b" || memos[2].Title != "c" {
		t.Error("Apply mutated its input")
	}
}
