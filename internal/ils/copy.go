// internal/ils/copy.go
package ils

import (
	"strings"
	"time"
)

// State is the derived circulation state of a copy.
type State string

const (
	StateAvailable      State = "available"
	StateUnavailable    State = "unavailable"
	StateNonExistent    State = "non-existent"
	StateNonCirculating State = "non-circulating"
)

// Copy is a single physical item.
type Copy struct {
	CopyNumber        int        `json:"copy_number"`
	Barcode           string     `json:"barcode"`
	Shadowed          bool       `json:"shadowed"`
	CurrentPeriodical bool       `json:"current_periodical"`
	LastCheckout      *time.Time `json:"last_checkout,omitempty"`
	CirculationRule   string     `json:"circulation_rule,omitempty"`
	CurrentLocation   Location   `json:"current_location"`
	HomeLocation      Location   `json:"home_location"`
	ItemType          ItemType   `json:"item_type"`
}

// Visible reports whether the copy may be shown to patrons at all.
func (c *Copy) Visible() bool { return !c.Shadowed }

// Exists is false for shadowed copies and for copies that are only an order
// record.
func (c *Copy) Exists() bool {
	return !c.Shadowed && !c.CurrentLocation.NotOrdered() && !c.CurrentLocation.Pending()
}

// Unavailable reports whether the copy's current or home location takes it
// out of circulation.
func (c *Copy) Unavailable() bool {
	// Special Collections at Ivy routes new material through IN-PROCESS while
	// it is already requestable in the reading room.
	if c.CurrentLocation.InProcess() && c.HomeLocation.SpecialCollectionsIvy() {
		return false
	}
	return IsUnavailableCurrent(c.CurrentLocation.Code) || IsUnavailableHome(c.HomeLocation.Code)
}

func (c *Copy) Available() bool { return c.Exists() && !c.Unavailable() }

// Circulates reports whether the circulation rule allows loans ("Y") or
// limited loans ("M").
func (c *Copy) Circulates() bool {
	return strings.ContainsAny(c.CirculationRule, "YM")
}

func (c *Copy) Journal() bool { return c.CurrentPeriodical || c.ItemType.Journal() }

func (c *Copy) Lost() bool    { return c.CurrentLocation.Lost() }
func (c *Copy) Missing() bool { return c.CurrentLocation.Missing() }

// Hidden copies are withdrawn or otherwise removed from the patron view.
func (c *Copy) Hidden() bool { return c.CurrentLocation.Hidden() }

func (c *Copy) Reserve() bool {
	return c.CurrentLocation.Reserve() || c.HomeLocation.Reserve()
}

func (c *Copy) SpecialCollections() bool {
	return c.HomeLocation.SpecialCollections() || c.CurrentLocation.SpecialCollections()
}

// State folds the predicates above into a single value.
func (c *Copy) State() State {
	switch {
	case !c.Exists():
		return StateNonExistent
	case c.Unavailable():
		return StateUnavailable
	case !c.Circulates():
		return StateNonCirculating
	default:
		return StateAvailable
	}
}

// LocationLabel is the location shown next to the copy: the current location
// when it differs from home, otherwise home.
func (c *Copy) LocationLabel() string {
	if c.CurrentLocation.Code != "" && c.CurrentLocation.Code != c.HomeLocation.Code {
		return c.CurrentLocation.Label()
	}
	return c.HomeLocation.Label()
}
