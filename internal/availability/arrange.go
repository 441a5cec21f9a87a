// internal/availability/arrange.go
package availability

import (
	"cmp"
	"slices"
	"strings"

	"libranexus/internal/ils"
	"libranexus/internal/summary"
)

// LaterLibrary names the deferred bucket a library belongs to, or returns ""
// when the library is listed with the primary libraries.
type LaterLibrary func(name string) string

// NoLaterLibraries keeps every library in the primary group.
func NoLaterLibraries(string) string { return "" }

// LaterLibraryTable builds a LaterLibrary from a name → bucket table. Names
// match case-insensitively.
func LaterLibraryTable(table map[string]string) LaterLibrary {
	folded := make(map[string]string, len(table))
	for name, bucket := range table {
		folded[strings.ToLower(strings.TrimSpace(name))] = bucket
	}
	return func(name string) string {
		return folded[strings.ToLower(strings.TrimSpace(name))]
	}
}

// Arrange puts the primary items first, sorted with primary, then each
// deferred bucket sorted with deferred. Buckets follow the order in which
// their keys were first seen.
func Arrange[T any](items []T, bucketOf func(T) string, primary, deferred func(a, b T) int) []T {
	var head []T
	var order []string
	buckets := make(map[string][]T)

	for _, item := range items {
		key := bucketOf(item)
		if key == "" {
			head = append(head, item)
			continue
		}
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], item)
	}

	slices.SortStableFunc(head, primary)
	out := make([]T, 0, len(items))
	out = append(out, head...)
	for _, key := range order {
		bucket := buckets[key]
		if len(bucket) == 0 {
			continue
		}
		slices.SortStableFunc(bucket, deferred)
		out = append(out, bucket...)
	}
	return out
}

// ArrangeHoldings orders holdings by library label and shelving key, with
// journals listing the most recent shelving key first.
func ArrangeHoldings(holdings []*ils.Holding, later LaterLibrary, journal bool) []*ils.Holding {
	byKey := func(a, b *ils.Holding) int {
		if journal {
			return cmp.Compare(b.ShelvingKey, a.ShelvingKey)
		}
		return cmp.Compare(a.ShelvingKey, b.ShelvingKey)
	}
	byLibrary := func(a, b *ils.Holding) int {
		if c := cmp.Compare(a.Library.Label(), b.Library.Label()); c != 0 {
			return c
		}
		return byKey(a, b)
	}
	bucketOf := func(h *ils.Holding) string {
		if key := later(h.Library.Label()); key != "" {
			return key
		}
		return later(h.Library.Code)
	}
	return Arrange(holdings, bucketOf, byLibrary, byKey)
}

// ArrangeSummaryLibraries applies the same grouping to summary libraries,
// ordering by label within each group.
func ArrangeSummaryLibraries(libs []*summary.HomeLibrary, later LaterLibrary) []*summary.HomeLibrary {
	byLabel := func(a, b *summary.HomeLibrary) int {
		return cmp.Compare(a.Label(), b.Label())
	}
	bucketOf := func(l *summary.HomeLibrary) string { return later(l.Label()) }
	return Arrange(libs, bucketOf, byLabel, byLabel)
}
