// internal/availability/domain.go
package availability

import (
	"log/slog"

	"libranexus/internal/ils"
	"libranexus/internal/summary"
)

// Document is the catalog record availability is computed for.
type Document interface {
	ils.Record
	// SummaryHoldings returns pipe-delimited summary statements.
	SummaryHoldings() []string
	// Barcodes restricts the displayed copies when non-empty.
	Barcodes() []string
	Journal() bool
}

// CatalogRecord is a Document decoded from a request.
type CatalogRecord struct {
	ID              string   `json:"id"`
	TitleStatement  string   `json:"title,omitempty"`
	AuthorStatement string   `json:"author,omitempty"`
	Summary         []string `json:"summary_holdings,omitempty"`
	BarcodeList     []string `json:"barcodes,omitempty"`
	IsJournal       bool     `json:"journal,omitempty"`
}

func (r *CatalogRecord) Key() string               { return r.ID }
func (r *CatalogRecord) Title() string             { return r.TitleStatement }
func (r *CatalogRecord) Author() string            { return r.AuthorStatement }
func (r *CatalogRecord) SummaryHoldings() []string { return r.Summary }
func (r *CatalogRecord) Barcodes() []string        { return r.BarcodeList }
func (r *CatalogRecord) Journal() bool             { return r.IsJournal }

// Availability is the patron view of one catalog record's holdings. It is
// built for a single request and not safe for concurrent use.
type Availability struct {
	item    *ils.CatalogItem
	doc     Document
	later   LaterLibrary
	weeding WeedResult
	lost    map[string]string

	// lazily computed
	specialCollections []*ils.Holding
	libraryCopies      *copyTable
	summaryLibraries   []*summary.HomeLibrary
	summaryParsed      bool
}

type copyTable struct {
	libraries   []string
	all         map[string][]*ils.Copy
	available   map[string][]*ils.Copy
	unavailable map[string][]*ils.Copy
}

// Option configures New.
type Option func(*options)

type options struct {
	later  LaterLibrary
	logger *slog.Logger
}

// WithLaterLibrary sets the rule that defers libraries to the end of the list.
func WithLaterLibrary(later LaterLibrary) Option {
	return func(o *options) {
		if later != nil {
			o.later = later
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New weeds, sorts and groups item for display. item is modified in place.
// It panics when item or doc is nil.
func New(item *ils.CatalogItem, doc Document, opts ...Option) *Availability {
	if item == nil {
		panic("availability: nil catalog item")
	}
	if doc == nil {
		panic("availability: nil document")
	}

	o := options{later: NoLaterLibraries, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	item.Record = doc
	res := Weed(item, doc.Barcodes())
	item.Holdings = ArrangeHoldings(item.Holdings, o.later, doc.Journal())

	a := &Availability{
		item:    item,
		doc:     doc,
		later:   o.later,
		weeding: res,
		lost:    LostNotes(res.Lost),
	}

	o.logger.Debug("availability built",
		slog.String("key", doc.Key()),
		slog.Int("holdings", len(item.Holdings)),
		slog.Int("copies", item.CopyCount()),
		slog.Int("lost_libraries", len(a.lost)),
		slog.Bool("decode_error", item.Failed()),
	)

	return a
}

func (a *Availability) Item() *ils.CatalogItem { return a.item }
func (a *Availability) Document() Document     { return a.doc }

// Err is the fetch or decode error behind an empty result, if any.
func (a *Availability) Err() error { return a.item.Err }

func (a *Availability) Holdability() ils.Holdability { return a.item.Holdability }

// Holdings are the displayable holdings in display order.
func (a *Availability) Holdings() []*ils.Holding { return a.item.Holdings }

// Weeding reports what was removed while building the view.
func (a *Availability) Weeding() WeedResult { return a.weeding }

// Lost maps library labels to their lost/missing note.
func (a *Availability) Lost() map[string]string { return a.lost }

// SpecialCollectionsHoldings are the Holdings held by Special Collections.
func (a *Availability) SpecialCollectionsHoldings() []*ils.Holding {
	if a.specialCollections == nil {
		a.specialCollections = []*ils.Holding{}
		for _, h := range a.item.Holdings {
			if h.SpecialCollections() {
				a.specialCollections = append(a.specialCollections, h)
			}
		}
	}
	return a.specialCollections
}

func (a *Availability) copies() *copyTable {
	if a.libraryCopies != nil {
		return a.libraryCopies
	}
	t := &copyTable{
		all:         make(map[string][]*ils.Copy),
		available:   make(map[string][]*ils.Copy),
		unavailable: make(map[string][]*ils.Copy),
	}
	for _, h := range a.item.Holdings {
		label := h.Library.Label()
		if _, seen := t.all[label]; !seen {
			t.libraries = append(t.libraries, label)
		}
		for _, c := range h.Copies {
			t.all[label] = append(t.all[label], c)
			if c.Available() {
				t.available[label] = append(t.available[label], c)
			} else {
				t.unavailable[label] = append(t.unavailable[label], c)
			}
		}
	}
	a.libraryCopies = t
	return t
}

// Libraries lists library labels in display order.
func (a *Availability) Libraries() []string { return a.copies().libraries }

func (a *Availability) LibraryCopies() map[string][]*ils.Copy { return a.copies().all }

func (a *Availability) LibraryCopiesAvailable() map[string][]*ils.Copy {
	return a.copies().available
}

func (a *Availability) LibraryCopiesUnavailable() map[string][]*ils.Copy {
	return a.copies().unavailable
}

func (a *Availability) LibraryCopyCounts() map[string]int { return counts(a.copies().all) }

func (a *Availability) LibraryAvailableCounts() map[string]int {
	return counts(a.copies().available)
}

func (a *Availability) LibraryUnavailableCounts() map[string]int {
	return counts(a.copies().unavailable)
}

// LibraryLocations maps each library to the distinct home location labels of
// its copies, in first-seen order.
func (a *Availability) LibraryLocations() map[string][]string {
	return locations(a.copies().all)
}

func (a *Availability) LibraryLocationsAvailable() map[string][]string {
	return locations(a.copies().available)
}

func (a *Availability) LibraryLocationsUnavailable() map[string][]string {
	return locations(a.copies().unavailable)
}

// SummaryLibraries are the libraries named in the record's summary holdings,
// grouped like Holdings.
func (a *Availability) SummaryLibraries() []*summary.HomeLibrary {
	if !a.summaryParsed {
		a.summaryLibraries = ArrangeSummaryLibraries(summary.Parse(a.doc.SummaryHoldings()), a.later)
		a.summaryParsed = true
	}
	return a.summaryLibraries
}

// OnlineOnly is true when no copy is available anywhere and nothing was
// reported lost, meaning the title is only held electronically.
func (a *Availability) OnlineOnly() bool {
	return len(a.copies().available) == 0 && len(a.lost) == 0
}

func counts(table map[string][]*ils.Copy) map[string]int {
	out := make(map[string]int, len(table))
	for library, copies := range table {
		out[library] = len(copies)
	}
	return out
}

func locations(table map[string][]*ils.Copy) map[string][]string {
	out := make(map[string][]string, len(table))
	for library, copies := range table {
		seen := make(map[string]bool)
		for _, c := range copies {
			label := c.HomeLocation.Label()
			if label == "" || seen[label] {
				continue
			}
			seen[label] = true
			out[library] = append(out[library], label)
		}
	}
	return out
}
