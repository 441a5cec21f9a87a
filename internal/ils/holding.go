// internal/ils/holding.go
package ils

import "strings"

// Holding is one call-number group at one library.
type Holding struct {
	CallNumber   string  `json:"call_number"`
	CallSequence int     `json:"call_sequence"`
	Holdable     bool    `json:"holdable"`
	Shadowed     bool    `json:"shadowed"`
	ShelvingKey  string  `json:"shelving_key"`
	Library      Library `json:"library"`
	Copies       []*Copy `json:"copies"`

	// Err is set when the holding could not be decoded; such a holding has
	// no copies.
	Err error `json:"-"`
}

// Void reports whether the call number marks a cancelled holding.
func (h *Holding) Void() bool {
	return strings.Contains(strings.ToUpper(h.CallNumber), "VOID")
}

func (h *Holding) Empty() bool { return len(h.Copies) == 0 }

func (h *Holding) count(pred func(*Copy) bool) int {
	n := 0
	for _, c := range h.Copies {
		if pred(c) {
			n++
		}
	}
	return n
}

func (h *Holding) AvailableCount() int          { return h.count((*Copy).Available) }
func (h *Holding) ReserveCount() int            { return h.count((*Copy).Reserve) }
func (h *Holding) CirculatingCount() int        { return h.count((*Copy).Circulates) }
func (h *Holding) SpecialCollectionsCount() int { return h.count((*Copy).SpecialCollections) }
func (h *Holding) ExistingCount() int           { return h.count((*Copy).Exists) }
func (h *Holding) VisibleCount() int            { return h.count((*Copy).Visible) }

// SpecialCollections reports whether the holding belongs in the Special
// Collections block: either the library is Special Collections or every copy
// is homed there.
func (h *Holding) SpecialCollections() bool {
	if h.Library.SpecialCollections() {
		return true
	}
	return len(h.Copies) > 0 && h.SpecialCollectionsCount() == len(h.Copies)
}

// Filter keeps the copies for which keep returns true and returns the ones
// removed, preserving order in both.
func (h *Holding) Filter(keep func(*Copy) bool) (removed []*Copy) {
	kept := h.Copies[:0]
	for _, c := range h.Copies {
		if keep(c) {
			kept = append(kept, c)
		} else {
			removed = append(removed, c)
		}
	}
	for i := len(kept); i < len(h.Copies); i++ {
		h.Copies[i] = nil
	}
	h.Copies = kept
	return removed
}
