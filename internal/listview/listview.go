// Package listview holds the shared filter and sort helpers behind the
// storefront and admin list screens. Filtering is conjunctive: every active
// predicate must match for a row to survive. Sorting is stable so rows with
// equal keys keep their server-given order.
package listview

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Predicate reports whether a row passes one active filter.
type Predicate[T any] func(T) bool

// TextMatch builds a case-insensitive substring predicate across the named
// text fields. An empty query matches everything, so inactive search boxes
// cost nothing.
func TextMatch[T any](query string, fields func(T) []string) Predicate[T] {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}
	return func(row T) bool {
		for _, field := range fields(row) {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}
}

// Equals builds an exact-match predicate for category/status style fields.
// An empty or "all" selection matches everything.
func Equals[T any](want string, field func(T) string) Predicate[T] {
	selected := strings.TrimSpace(want)
	if selected == "" || strings.EqualFold(selected, "all") {
		return nil
	}
	return func(row T) bool {
		return strings.EqualFold(field(row), selected)
	}
}

// Filter returns the rows passing every non-nil predicate. The input slice is
// never modified.
func Filter[T any](rows []T, predicates ...Predicate[T]) []T {
	active := predicates[:0:0]
	for _, p := range predicates {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return append([]T(nil), rows...)
	}

	kept := make([]T, 0, len(rows))
outer:
	for _, row := range rows {
		for _, p := range active {
			if !p(row) {
				continue outer
			}
		}
		kept = append(kept, row)
	}
	return kept
}

// NewCollator returns the locale-aware, case-insensitive comparer used for
// string sort keys. An undetermined tag falls back to root collation rules.
func NewCollator(tag language.Tag) *collate.Collator {
	return collate.New(tag, collate.IgnoreCase)
}

// SortByString stable-sorts in place by a string key using the collator.
func SortByString[T any](rows []T, coll *collate.Collator, key func(T) string, descending bool) {
	if coll == nil {
		coll = NewCollator(language.Und)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := coll.CompareString(key(rows[i]), key(rows[j]))
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// SortByDecimal stable-sorts in place by a money or numeric key.
func SortByDecimal[T any](rows []T, key func(T) decimal.Decimal, descending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := key(rows[i]).Cmp(key(rows[j]))
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// SortByTime stable-sorts in place by a timestamp key. Descending is the
// list-screen default: newest first.
func SortByTime[T any](rows []T, key func(T) time.Time, descending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return key(rows[i]).After(key(rows[j]))
		}
		return key(rows[i]).Before(key(rows[j]))
	})
}
