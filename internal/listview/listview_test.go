package listview

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

type row struct {
	Name     string
	Brand    string
	Status   string
	Price    decimal.Decimal
	Created  time.Time
	Original int
}

func names(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func sampleRows() []row {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []row{
		{Name: "Aurora Lamp", Brand: "Lumen", Status: "active", Price: decimal.NewFromInt(120), Created: base.Add(2 * time.Hour)},
		{Name: "Desk Organizer", Brand: "Tidy", Status: "archived", Price: decimal.NewFromInt(35), Created: base.Add(1 * time.Hour)},
		{Name: "aurora poster", Brand: "Artify", Status: "active", Price: decimal.NewFromInt(18), Created: base.Add(3 * time.Hour)},
	}
}

func TestFilterRequiresAllPredicates(t *testing.T) {
	rows := sampleRows()

	got := Filter(rows,
		TextMatch("aurora", func(r row) []string { return []string{r.Name, r.Brand} }),
		Equals("active", func(r row) string { return r.Status }),
	)

	want := []string{"Aurora Lamp", "aurora poster"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}

	// Tighten one predicate and the conjunction must shrink.
	got = Filter(rows,
		TextMatch("aurora", func(r row) []string { return []string{r.Name, r.Brand} }),
		Equals("archived", func(r row) string { return r.Status }),
	)
	if len(got) != 0 {
		t.Fatalf("expected no rows matching both, got %v", names(got))
	}
}

func TestFilterIgnoresInactivePredicates(t *testing.T) {
	rows := sampleRows()

	got := Filter(rows,
		TextMatch("   ", func(r row) []string { return []string{r.Name} }),
		Equals("All", func(r row) string { return r.Status }),
	)
	if len(got) != len(rows) {
		t.Fatalf("expected all %d rows, got %d", len(rows), len(got))
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	rows := sampleRows()
	before := names(rows)

	Filter(rows, Equals("active", func(r row) string { return r.Status }))

	if !reflect.DeepEqual(names(rows), before) {
		t.Fatalf("input slice was reordered: %v", names(rows))
	}
}

func TestSortByStringIsCaseInsensitive(t *testing.T) {
	rows := sampleRows()
	coll := NewCollator(language.English)

	SortByString(rows, coll, func(r row) string { return r.Name }, false)

	want := []string{"Aurora Lamp", "aurora poster", "Desk Organizer"}
	if !reflect.DeepEqual(names(rows), want) {
		t.Fatalf("expected %v, got %v", want, names(rows))
	}
}

func TestSortByDecimalDescending(t *testing.T) {
	rows := sampleRows()

	SortByDecimal(rows, func(r row) decimal.Decimal { return r.Price }, true)

	want := []string{"Aurora Lamp", "Desk Organizer", "aurora poster"}
	if !reflect.DeepEqual(names(rows), want) {
		t.Fatalf("expected %v, got %v", want, names(rows))
	}
}

func TestSortByTimeNewestFirst(t *testing.T) {
	rows := sampleRows()

	SortByTime(rows, func(r row) time.Time { return r.Created }, true)

	want := []string{"aurora poster", "Aurora Lamp", "Desk Organizer"}
	if !reflect.DeepEqual(names(rows), want) {
		t.Fatalf("expected %v, got %v", want, names(rows))
	}
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	rows := []row{
		{Name: "first", Status: "x", Original: 1},
		{Name: "second", Status: "x", Original: 2},
		{Name: "third", Status: "x", Original: 3},
	}

	SortByString(rows, nil, func(r row) string { return r.Status }, false)

	for i, r := range rows {
		if r.Original != i+1 {
			t.Fatalf("expected stable order preserved, got %v", names(rows))
		}
	}
}
