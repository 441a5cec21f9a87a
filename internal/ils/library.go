// internal/ils/library.go
package ils

import "strings"

var (
	remoteLibraryCodes = codeSet("BLANDY", "MT-LAKE", "AT-SEA")
)

func IsSpecialCollectionsLibrary(code string) bool {
	return normalizeCode(code) == CodeSpecialCollections
}

func IsIvyLibrary(code string) bool { return normalizeCode(code) == "IVY" }

// IsRemoteLibrary reports whether the library is an off-grounds station whose
// copies cannot be paged to the main campus.
func IsRemoteLibrary(code string) bool { return inSet(remoteLibraryCodes, code) }

func IsLawLibrary(code string) bool { return normalizeCode(code) == "LAW" }

func IsHealthSciencesLibrary(code string) bool {
	return normalizeCode(code) == "HEALTHSCI"
}

// Library is a home library as reported by the ILS.
type Library struct {
	ID          string `json:"id,omitempty"`
	Code        string `json:"code"`
	Name        string `json:"name,omitempty"`
	Deliverable bool   `json:"deliverable"`
	Holdable    bool   `json:"holdable"`
	Remote      bool   `json:"remote"`
}

// Label is the name shown to patrons and used for ordering.
func (l Library) Label() string {
	if name := strings.TrimSpace(l.Name); name != "" {
		return name
	}
	return l.Code
}

func (l Library) SpecialCollections() bool { return IsSpecialCollectionsLibrary(l.Code) }
func (l Library) Ivy() bool                { return IsIvyLibrary(l.Code) }
func (l Library) Law() bool                { return IsLawLibrary(l.Code) }
func (l Library) HealthSciences() bool     { return IsHealthSciencesLibrary(l.Code) }

// IsRemote is true when the ILS flags the library remote or its code is a
// known remote station.
func (l Library) IsRemote() bool { return l.Remote || IsRemoteLibrary(l.Code) }

// LibraryDirectory looks libraries up by code or name, creating entries on
// first use. One directory is scoped to a single decode.
type LibraryDirectory struct {
	byCode map[string]Library
	byName map[string]Library
}

func NewLibraryDirectory() *LibraryDirectory {
	return &LibraryDirectory{
		byCode: make(map[string]Library),
		byName: make(map[string]Library),
	}
}

// Intern returns the first library seen with lib's code (or name, when the
// code is blank), registering lib if none was seen.
func (d *LibraryDirectory) Intern(lib Library) Library {
	code := normalizeCode(lib.Code)
	if code != "" {
		if existing, ok := d.byCode[code]; ok {
			return existing
		}
	} else if existing, ok := d.byName[lib.Name]; ok {
		return existing
	}
	if code != "" {
		d.byCode[code] = lib
	}
	if lib.Name != "" {
		if _, ok := d.byName[lib.Name]; !ok {
			d.byName[lib.Name] = lib
		}
	}
	return lib
}

// ByCode finds a library by ILS code.
func (d *LibraryDirectory) ByCode(code string) (Library, bool) {
	lib, ok := d.byCode[normalizeCode(code)]
	return lib, ok
}

// ByName finds a library by display name.
func (d *LibraryDirectory) ByName(name string) (Library, bool) {
	lib, ok := d.byName[name]
	return lib, ok
}
