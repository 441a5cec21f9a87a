// internal/ils/catalog_item.go
package ils

// Record is the catalog record a CatalogItem was fetched for. CatalogItem only
// borrows it for display fallbacks.
type Record interface {
	Key() string
	Title() string
	Author() string
}

// Holdability explains whether the title can be requested.
type Holdability struct {
	Holdable bool   `json:"holdable"`
	Message  string `json:"message,omitempty"`
	Err      error  `json:"-"`
}

// CatalogItem is the holdings aggregate for one catalog record.
type CatalogItem struct {
	Key         string      `json:"key"`
	Status      int         `json:"status"`
	Title       string      `json:"title,omitempty"`
	Author      string      `json:"author,omitempty"`
	Holdability Holdability `json:"holdability"`
	Holdings    []*Holding  `json:"holdings"`

	// Err is set when the ILS response could not be fetched or decoded.
	Err error `json:"-"`

	Record Record `json:"-"`
}

// NewErrorItem builds the placeholder returned when the ILS lookup failed.
func NewErrorItem(key string, err error) *CatalogItem {
	return &CatalogItem{
		Key:         key,
		Holdability: Holdability{Err: err},
		Holdings:    []*Holding{},
		Err:         err,
	}
}

func (c *CatalogItem) Failed() bool { return c.Err != nil }

func (c *CatalogItem) DisplayTitle() string {
	if c.Title == "" && c.Record != nil {
		return c.Record.Title()
	}
	return c.Title
}

func (c *CatalogItem) DisplayAuthor() string {
	if c.Author == "" && c.Record != nil {
		return c.Record.Author()
	}
	return c.Author
}

// HoldingErrors returns the decode errors of individual holdings.
func (c *CatalogItem) HoldingErrors() []error {
	var errs []error
	for _, h := range c.Holdings {
		if h.Err != nil {
			errs = append(errs, h.Err)
		}
	}
	return errs
}

// CopyCount is the number of copies across every holding.
func (c *CatalogItem) CopyCount() int {
	n := 0
	for _, h := range c.Holdings {
		n += len(h.Copies)
	}
	return n
}

// Libraries lists the distinct libraries holding the item in holding order.
func (c *CatalogItem) Libraries() []Library {
	seen := make(map[string]bool)
	var libs []Library
	for _, h := range c.Holdings {
		label := h.Library.Label()
		if seen[label] {
			continue
		}
		seen[label] = true
		libs = append(libs, h.Library)
	}
	return libs
}
