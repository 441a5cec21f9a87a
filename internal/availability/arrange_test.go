package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"libranexus/internal/ils"
	"libranexus/internal/summary"
)

func TestArrangeHoldings_Journal(t *testing.T) {
	t.Parallel()

	holdings := []*ils.Holding{
		holdingAt("B", "K1", onShelf("1")),
		holdingAt("A", "K2", onShelf("2")),
		holdingAt("A", "K3", onShelf("3")),
		holdingAt("B", "K4", onShelf("4")),
	}

	got := ArrangeHoldings(holdings, NoLaterLibraries, true)

	assert.Equal(t, []string{"A:K3", "A:K2", "B:K4", "B:K1"}, labels(got))
}

func TestArrangeHoldings_NonJournal(t *testing.T) {
	t.Parallel()

	holdings := []*ils.Holding{
		holdingAt("B", "K4", onShelf("4")),
		holdingAt("A", "K3", onShelf("3")),
		holdingAt("B", "K1", onShelf("1")),
		holdingAt("A", "K2", onShelf("2")),
	}

	got := ArrangeHoldings(holdings, NoLaterLibraries, false)

	assert.Equal(t, []string{"A:K2", "A:K3", "B:K1", "B:K4"}, labels(got))
}

func TestArrangeHoldings_DeferredLibrariesLast(t *testing.T) {
	t.Parallel()

	later := LaterLibraryTable(map[string]string{"Alpha Annex": "annex"})
	holdings := []*ils.Holding{
		holdingAt("Primary1", "K1", onShelf("1")),
		holdingAt("Alpha Annex", "K1", onShelf("2")),
		holdingAt("Primary2", "K1", onShelf("3")),
	}

	got := ArrangeHoldings(holdings, later, false)

	assert.Equal(t, []string{"Primary1:K1", "Primary2:K1", "Alpha Annex:K1"}, labels(got))
}

func TestArrangeHoldings_DeferredBucketsSortedByShelvingKeyOnly(t *testing.T) {
	t.Parallel()

	later := LaterLibraryTable(map[string]string{
		"Mountain Lake": "remote",
		"Blandy":        "remote",
		"Ivy Stacks":    "ivy",
	})
	holdings := []*ils.Holding{
		holdingAt("Ivy Stacks", "K2", onShelf("1")),
		holdingAt("Mountain Lake", "K1", onShelf("2")),
		holdingAt("Alderman", "K9", onShelf("3")),
		holdingAt("Blandy", "K3", onShelf("4")),
		holdingAt("Ivy Stacks", "K1", onShelf("5")),
	}

	asc := ArrangeHoldings(append([]*ils.Holding(nil), holdings...), later, false)
	assert.Equal(t, []string{
		"Alderman:K9",
		"Ivy Stacks:K1", "Ivy Stacks:K2",
		"Mountain Lake:K1", "Blandy:K3",
	}, labels(asc))

	desc := ArrangeHoldings(append([]*ils.Holding(nil), holdings...), later, true)
	assert.Equal(t, []string{
		"Alderman:K9",
		"Ivy Stacks:K2", "Ivy Stacks:K1",
		"Blandy:K3", "Mountain Lake:K1",
	}, labels(desc))
}

func TestArrangeHoldings_LaterLibraryByCode(t *testing.T) {
	t.Parallel()

	later := LaterLibraryTable(map[string]string{"IVY-ANNEX": "ivy"})
	holdings := []*ils.Holding{
		holdingAt("Ivy Annex", "K1", onShelf("1")),
		holdingAt("Zeta", "K1", onShelf("2")),
	}

	got := ArrangeHoldings(holdings, later, false)

	assert.Equal(t, []string{"Zeta:K1", "Ivy Annex:K1"}, labels(got))
}

func TestArrange_Empty(t *testing.T) {
	t.Parallel()

	got := ArrangeHoldings(nil, NoLaterLibraries, false)

	assert.Empty(t, got)
}

func TestArrangeSummaryLibraries(t *testing.T) {
	t.Parallel()

	later := LaterLibraryTable(map[string]string{"Ivy Stacks": "ivy"})
	libs := summary.Parse([]string{
		"Ivy Stacks|Stacks|v.1|",
		"Law|Stacks|v.2|",
		"Alderman|Stacks|v.3|",
	})

	got := ArrangeSummaryLibraries(libs, later)

	names := make([]string, 0, len(got))
	for _, l := range got {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Alderman", "Law", "Ivy Stacks"}, names)
}
