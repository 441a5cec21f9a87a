package ils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCopy(current, home, rule string) *Copy {
	return &Copy{
		Barcode:         "X001",
		CirculationRule: rule,
		CurrentLocation: Location{Code: current},
		HomeLocation:    Location{Code: home},
	}
}

func TestCopy_InProcessSpecialCollectionsIvyIsAvailable(t *testing.T) {
	t.Parallel()

	c := newCopy(CodeInProcess, CodeSpecialCollectionsIvy, "N")

	assert.False(t, c.Unavailable())
	assert.True(t, c.Available())
}

func TestCopy_InProcessElsewhereIsUnavailable(t *testing.T) {
	t.Parallel()

	for _, home := range []string{CodeStacks, "SC-BARR", CodeIvyStacks, ""} {
		c := newCopy(CodeInProcess, home, "Y")
		assert.True(t, c.Unavailable(), "home %q", home)
		assert.False(t, c.Available(), "home %q", home)
	}
}

func TestCopy_ShadowedNeverAvailableOrExisting(t *testing.T) {
	t.Parallel()

	c := newCopy(CodeStacks, CodeStacks, "Y")
	c.Shadowed = true

	assert.False(t, c.Exists())
	assert.False(t, c.Available())
	assert.False(t, c.Visible())
	assert.Equal(t, StateNonExistent, c.State())
}

func TestCopy_Exists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current string
		want    bool
	}{
		{name: "on shelf", current: CodeStacks, want: true},
		{name: "not ordered", current: CodeNotOrdered, want: false},
		{name: "order pending", current: "ORD-PEND", want: false},
		{name: "pending lower case", current: "pending", want: false},
		{name: "checked out", current: "CHECKEDOUT", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newCopy(tt.current, CodeStacks, "Y")
			assert.Equal(t, tt.want, c.Exists())
		})
	}
}

func TestCopy_Circulates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rule string
		want bool
	}{
		{rule: "Y", want: true},
		{rule: "M", want: true},
		{rule: "YM", want: true},
		{rule: "N", want: false},
		{rule: "y", want: false},
		{rule: "m", want: false},
		{rule: "", want: false},
	}

	for _, tt := range tests {
		c := newCopy(CodeStacks, CodeStacks, tt.rule)
		assert.Equal(t, tt.want, c.Circulates(), "rule %q", tt.rule)
	}
}

func TestCopy_CirculatesIndependentOfAvailability(t *testing.T) {
	t.Parallel()

	c := newCopy("CHECKEDOUT", CodeStacks, "Y")

	assert.True(t, c.Circulates())
	assert.False(t, c.Available())
}

func TestCopy_DeansOfficeHomeIsUnavailable(t *testing.T) {
	t.Parallel()

	c := newCopy(CodeDeansOffice, CodeDeansOffice, "N")

	assert.True(t, c.Unavailable())
}

func TestCopy_State(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StateAvailable, newCopy(CodeStacks, CodeStacks, "Y").State())
	assert.Equal(t, StateUnavailable, newCopy("CHECKEDOUT", CodeStacks, "Y").State())
	assert.Equal(t, StateNonCirculating, newCopy("REFERENCE", "REFERENCE", "N").State())
	assert.Equal(t, StateNonExistent, newCopy(CodeNotOrdered, CodeStacks, "Y").State())
}

func TestCopy_Journal(t *testing.T) {
	t.Parallel()

	c := newCopy(CodeStacks, CodeStacks, "Y")
	assert.False(t, c.Journal())

	c.ItemType = ItemType{Code: "journal"}
	assert.True(t, c.Journal())

	c.ItemType = ItemType{Code: "BOOK"}
	c.CurrentPeriodical = true
	assert.True(t, c.Journal())
}

func TestCopy_LocationLabel(t *testing.T) {
	t.Parallel()

	c := &Copy{
		CurrentLocation: Location{Code: "CHECKEDOUT", Name: "Checked out"},
		HomeLocation:    Location{Code: CodeStacks, Name: "Stacks"},
	}
	assert.Equal(t, "Checked out", c.LocationLabel())

	c.CurrentLocation = Location{Code: CodeStacks, Name: "Stacks"}
	assert.Equal(t, "Stacks", c.LocationLabel())
}

func TestHolding_CountsAndFilter(t *testing.T) {
	t.Parallel()

	h := &Holding{
		CallNumber: "PS3545 .I345",
		Copies: []*Copy{
			newCopy(CodeStacks, CodeStacks, "Y"),
			newCopy("CHECKEDOUT", CodeStacks, "Y"),
			newCopy(CodeReserve, CodeStacks, "M"),
			newCopy("SC-IVY", "SC-IVY", "N"),
		},
	}

	assert.Equal(t, 3, h.AvailableCount())
	assert.Equal(t, 1, h.ReserveCount())
	assert.Equal(t, 3, h.CirculatingCount())
	assert.Equal(t, 1, h.SpecialCollectionsCount())
	assert.Equal(t, 4, h.ExistingCount())
	assert.Equal(t, 4, h.VisibleCount())
	assert.False(t, h.SpecialCollections())

	removed := h.Filter((*Copy).Circulates)
	assert.Len(t, removed, 1)
	assert.Len(t, h.Copies, 3)
	assert.False(t, h.Empty())
}

func TestHolding_Void(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Holding{CallNumber: "VOID"}).Void())
	assert.True(t, (&Holding{CallNumber: "pr1234 void 2"}).Void())
	assert.False(t, (&Holding{CallNumber: "PR1234"}).Void())
}
