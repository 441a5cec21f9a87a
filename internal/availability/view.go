// internal/availability/view.go
package availability

import (
	"time"

	"libranexus/internal/ils"
	"libranexus/internal/summary"
)

// View is the JSON shape returned to the presentation layer.
type View struct {
	Key                string                 `json:"key"`
	Title              string                 `json:"title,omitempty"`
	Author             string                 `json:"author,omitempty"`
	Holdable           bool                   `json:"holdable"`
	HoldMessage        string                 `json:"hold_message,omitempty"`
	Error              string                 `json:"error,omitempty"`
	OnlineOnly         bool                   `json:"online_only"`
	Holdings           []HoldingView          `json:"holdings"`
	SpecialCollections []HoldingView          `json:"special_collections"`
	Libraries          []LibraryView          `json:"libraries"`
	SummaryLibraries   []*summary.HomeLibrary `json:"summary_libraries"`
	Lost               map[string]string      `json:"lost"`
}

type HoldingView struct {
	Library     string     `json:"library"`
	CallNumber  string     `json:"call_number"`
	ShelvingKey string     `json:"shelving_key"`
	Holdable    bool       `json:"holdable"`
	Available   int        `json:"available"`
	Copies      []CopyView `json:"copies"`
}

type CopyView struct {
	Barcode      string     `json:"barcode"`
	CopyNumber   int        `json:"copy_number"`
	Location     string     `json:"location"`
	State        ils.State  `json:"state"`
	Circulates   bool       `json:"circulates"`
	Reserve      bool       `json:"reserve,omitempty"`
	LastCheckout *time.Time `json:"last_checkout,omitempty"`
}

type LibraryView struct {
	Name        string   `json:"name"`
	Copies      int      `json:"copies"`
	Available   int      `json:"available"`
	Unavailable int      `json:"unavailable"`
	Locations   []string `json:"locations"`
}

// View renders the availability for JSON output.
func (a *Availability) View() View {
	v := View{
		Key:                a.item.Key,
		Title:              a.item.DisplayTitle(),
		Author:             a.item.DisplayAuthor(),
		Holdable:           a.item.Holdability.Holdable,
		HoldMessage:        a.item.Holdability.Message,
		OnlineOnly:         a.OnlineOnly(),
		Holdings:           holdingViews(a.Holdings()),
		SpecialCollections: holdingViews(a.SpecialCollectionsHoldings()),
		Libraries:          []LibraryView{},
		SummaryLibraries:   a.SummaryLibraries(),
		Lost:               a.Lost(),
	}
	if v.Key == "" {
		v.Key = a.doc.Key()
	}
	if err := a.Err(); err != nil {
		v.Error = err.Error()
	}
	if v.SummaryLibraries == nil {
		v.SummaryLibraries = []*summary.HomeLibrary{}
	}

	all := a.LibraryCopyCounts()
	available := a.LibraryAvailableCounts()
	unavailable := a.LibraryUnavailableCounts()
	locations := a.LibraryLocations()
	for _, name := range a.Libraries() {
		v.Libraries = append(v.Libraries, LibraryView{
			Name:        name,
			Copies:      all[name],
			Available:   available[name],
			Unavailable: unavailable[name],
			Locations:   locations[name],
		})
	}
	return v
}

func holdingViews(holdings []*ils.Holding) []HoldingView {
	out := make([]HoldingView, 0, len(holdings))
	for _, h := range holdings {
		hv := HoldingView{
			Library:     h.Library.Label(),
			CallNumber:  h.CallNumber,
			ShelvingKey: h.ShelvingKey,
			Holdable:    h.Holdable,
			Available:   h.AvailableCount(),
			Copies:      make([]CopyView, 0, len(h.Copies)),
		}
		for _, c := range h.Copies {
			hv.Copies = append(hv.Copies, CopyView{
				Barcode:      c.Barcode,
				CopyNumber:   c.CopyNumber,
				Location:     c.LocationLabel(),
				State:        c.State(),
				Circulates:   c.Circulates(),
				Reserve:      c.Reserve(),
				LastCheckout: c.LastCheckout,
			})
		}
		out = append(out, hv)
	}
	return out
}
