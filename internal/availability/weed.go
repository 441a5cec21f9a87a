// internal/availability/weed.go
package availability

import (
	"fmt"
	"strings"

	"libranexus/internal/ils"
)

// Reasons a holding or copy is dropped while weeding.
const (
	ReasonMalformed       = "malformed_holding"
	ReasonShadowedHolding = "shadowed_holding"
	ReasonVoidHolding     = "void_holding"
	ReasonShadowedCopy    = "shadowed_copy"
	ReasonLost            = "lost"
	ReasonMissing         = "missing"
	ReasonHidden          = "hidden"
	ReasonBarcode         = "barcode"
	ReasonEmptyHolding    = "empty_holding"
)

// WeedResult reports what weeding took out of a CatalogItem.
type WeedResult struct {
	// Lost holds the lost and missing copies keyed by library label.
	Lost map[string][]*ils.Copy
	// Removed counts removals by reason.
	Removed map[string]int
}

// Weed removes everything patrons must not see from item, in place:
// holdings that failed to decode, shadowed or void holdings, shadowed copies,
// lost and missing copies (which are collected in the result), hidden copies,
// copies whose barcode is not in barcodes (when barcodes has a non-blank
// entry) and finally holdings left empty.
// Weeding an already weeded item removes nothing.
func Weed(item *ils.CatalogItem, barcodes []string) WeedResult {
	res := WeedResult{
		Lost:    make(map[string][]*ils.Copy),
		Removed: make(map[string]int),
	}

	holdings := item.Holdings[:0]
	for _, h := range item.Holdings {
		switch {
		case h.Err != nil:
			res.Removed[ReasonMalformed]++
		case h.Shadowed:
			res.Removed[ReasonShadowedHolding]++
		case h.Void():
			res.Removed[ReasonVoidHolding]++
		default:
			holdings = append(holdings, h)
		}
	}

	allowed := allowList(barcodes)

	for _, h := range holdings {
		res.Removed[ReasonShadowedCopy] += len(h.Filter((*ils.Copy).Visible))

		gone := h.Filter(func(c *ils.Copy) bool { return !c.Missing() && !c.Lost() })
		if len(gone) > 0 {
			label := h.Library.Label()
			res.Lost[label] = append(res.Lost[label], gone...)
			for _, c := range gone {
				if c.Missing() {
					res.Removed[ReasonMissing]++
				} else {
					res.Removed[ReasonLost]++
				}
			}
		}

		res.Removed[ReasonHidden] += len(h.Filter(func(c *ils.Copy) bool { return !c.Hidden() }))

		if allowed != nil {
			res.Removed[ReasonBarcode] += len(h.Filter(func(c *ils.Copy) bool { return allowed[c.Barcode] }))
		}
	}

	kept := holdings[:0]
	for _, h := range holdings {
		if h.Empty() {
			res.Removed[ReasonEmptyHolding]++
			continue
		}
		kept = append(kept, h)
	}
	clear(item.Holdings[len(kept):])
	item.Holdings = kept

	for reason, n := range res.Removed {
		if n == 0 {
			delete(res.Removed, reason)
		}
	}
	return res
}

// allowList returns the set of non-blank barcodes, or nil when there are
// none and no filtering applies.
func allowList(barcodes []string) map[string]bool {
	var allowed map[string]bool
	for _, b := range barcodes {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if allowed == nil {
			allowed = make(map[string]bool, len(barcodes))
		}
		allowed[b] = true
	}
	return allowed
}

// LostNotes turns the lost accumulator into one note per library, such as
// "3 missing; 2 lost" or just "lost" for a single lost copy.
func LostNotes(lost map[string][]*ils.Copy) map[string]string {
	notes := make(map[string]string, len(lost))
	for library, copies := range lost {
		missing := 0
		for _, c := range copies {
			if c.Missing() {
				missing++
			}
		}
		if note := LostNote(missing, len(copies)-missing); note != "" {
			notes[library] = note
		}
	}
	return notes
}

// LostNote formats the missing and lost counts for one library.
func LostNote(missing, lost int) string {
	m, l := countPhrase(missing, "missing"), countPhrase(lost, "lost")
	switch {
	case m != "" && l != "":
		return m + "; " + l
	case m != "":
		return m
	default:
		return l
	}
}

func countPhrase(n int, word string) string {
	switch {
	case n <= 0:
		return ""
	case n == 1:
		return word
	default:
		return fmt.Sprintf("%d %s", n, word)
	}
}
