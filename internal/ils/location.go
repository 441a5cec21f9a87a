// internal/ils/location.go
package ils

import "strings"

// Location codes with special handling.
const (
	CodeSpecialCollectionsIvy = "SC-IVY"
	CodeSpecialCollections    = "SPEC-COLL"
	CodeDeansOffice           = "DEAN-OFF"
	CodeInProcess             = "IN-PROCESS"
	CodeNotOrdered            = "NOTORDERED"
	CodeIvyStacks             = "IVY-STACKS"
	CodeStacks                = "STACKS"
	CodeReserve               = "RESERVE"
	CodeMissing               = "MISSING"
)

var (
	pendingCodes = codeSet("ORD-PEND", "PENDING")
	ivyCodes     = codeSet("IVY", CodeIvyStacks, "IVYANNEX")
	lostCodes    = codeSet("LOST", "LOST-ASSUM", "LOST-CLAIM")
	hiddenCodes  = codeSet("DISCARD", "WITHDRAWN", "SUPPRESSED", "UNKNOWN")
	nonCircCodes = codeSet("REFERENCE", "REF-DESK", "NON-CIRC", CodeDeansOffice)

	unavailableCurrentCodes = codeSet(
		"CHECKEDOUT", "ON-ORDER", CodeInProcess, "INTRANSIT", "HOLDS",
		"CATALOGING", "BINDERY", "PRESERVATN", "REPAIR", "ILL",
	)
	unavailableHomeCodes = codeSet(CodeDeansOffice)
)

func codeSet(codes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func inSet(set map[string]struct{}, code string) bool {
	_, ok := set[normalizeCode(code)]
	return ok
}

// IsSpecialCollectionsIvy reports whether code is the Special Collections
// holding area at Ivy.
func IsSpecialCollectionsIvy(code string) bool {
	return normalizeCode(code) == CodeSpecialCollectionsIvy
}

// IsSpecialCollections reports whether code is any Special Collections location.
func IsSpecialCollections(code string) bool {
	c := normalizeCode(code)
	return c == CodeSpecialCollections || strings.HasPrefix(c, "SC-")
}

func IsDeansOffice(code string) bool { return normalizeCode(code) == CodeDeansOffice }

func IsInProcess(code string) bool { return normalizeCode(code) == CodeInProcess }

func IsNotOrdered(code string) bool { return normalizeCode(code) == CodeNotOrdered }

func IsPending(code string) bool { return inSet(pendingCodes, code) }

// IsIvyAnnex reports whether code is the Ivy annex or its stacks.
func IsIvyAnnex(code string) bool { return inSet(ivyCodes, code) }

func IsStacks(code string) bool {
	c := normalizeCode(code)
	return c == CodeStacks || strings.HasPrefix(c, CodeStacks+"-")
}

// IsReserve reports whether code is a course-reserve location.
func IsReserve(code string) bool {
	c := normalizeCode(code)
	return c == CodeReserve || strings.HasPrefix(c, "RSRV") || strings.HasSuffix(c, "-RSRV")
}

// IsNonCirculating reports whether items shelved at code stay in the building.
func IsNonCirculating(code string) bool {
	return inSet(nonCircCodes, code) || IsSpecialCollections(code)
}

func IsLost(code string) bool { return inSet(lostCodes, code) }

func IsMissing(code string) bool { return normalizeCode(code) == CodeMissing }

// IsHidden reports whether copies currently at code must never be displayed.
func IsHidden(code string) bool { return inSet(hiddenCodes, code) }

// IsUnavailableCurrent reports whether a copy whose current location is code
// cannot be requested right now.
func IsUnavailableCurrent(code string) bool { return inSet(unavailableCurrentCodes, code) }

// IsUnavailableHome reports whether copies homed at code are never available.
func IsUnavailableHome(code string) bool { return inSet(unavailableHomeCodes, code) }

// Location is a current or home shelving location.
type Location struct {
	ID   string `json:"id,omitempty"`
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// Label is the patron-facing name of the location.
func (l Location) Label() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Code
}

func (l Location) SpecialCollectionsIvy() bool { return IsSpecialCollectionsIvy(l.Code) }
func (l Location) SpecialCollections() bool    { return IsSpecialCollections(l.Code) }
func (l Location) DeansOffice() bool           { return IsDeansOffice(l.Code) }
func (l Location) InProcess() bool             { return IsInProcess(l.Code) }
func (l Location) NotOrdered() bool            { return IsNotOrdered(l.Code) }
func (l Location) Pending() bool               { return IsPending(l.Code) }
func (l Location) IvyAnnex() bool              { return IsIvyAnnex(l.Code) }
func (l Location) Stacks() bool                { return IsStacks(l.Code) }
func (l Location) Reserve() bool               { return IsReserve(l.Code) }
func (l Location) NonCirculating() bool        { return IsNonCirculating(l.Code) }
func (l Location) Lost() bool                  { return IsLost(l.Code) }
func (l Location) Missing() bool               { return IsMissing(l.Code) }
func (l Location) Hidden() bool                { return IsHidden(l.Code) }

// ItemType classifies the physical format of a copy.
type ItemType struct {
	ID   string `json:"id,omitempty"`
	Code string `json:"code"`
}

var serialTypes = codeSet("JOURNAL", "SERIAL", "BD-JOURNAL", "NEWSPAPER", "PERIODICAL")

// Journal reports whether the item type is a serial.
func (t ItemType) Journal() bool { return inSet(serialTypes, t.Code) }
