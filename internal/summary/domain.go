// internal/summary/domain.go
package summary

import (
	"strings"

	"libranexus/internal/ils"
)

// Summary is one line of a summary-holdings statement.
type Summary struct {
	CallNumber string `json:"call_number,omitempty"`
	Text       string `json:"text,omitempty"`
	Note       string `json:"note,omitempty"`
}

// HomeLocation groups the summary lines for one shelving location.
type HomeLocation struct {
	Name      string    `json:"name"`
	Label     string    `json:"label,omitempty"`
	Summaries []Summary `json:"summaries"`
}

// DisplayLabel prefers the label carried on the summary record.
func (l *HomeLocation) DisplayLabel() string {
	if l.Label != "" {
		return l.Label
	}
	return l.Name
}

func (l *HomeLocation) Reserve() bool {
	return ils.IsReserve(l.Name) || strings.Contains(strings.ToLower(l.Name), "reserve")
}

func (l *HomeLocation) SpecialCollections() bool {
	return ils.IsSpecialCollections(l.Name) || strings.Contains(strings.ToLower(l.Name), "special collections")
}

// HomeLibrary is a library named in the summary holdings of a catalog record.
type HomeLibrary struct {
	Name      string          `json:"name"`
	Locations []*HomeLocation `json:"locations"`
}

func (l *HomeLibrary) Label() string { return l.Name }

func (l *HomeLibrary) SpecialCollections() bool {
	return ils.IsSpecialCollectionsLibrary(l.Name) || strings.Contains(strings.ToLower(l.Name), "special collections")
}

func (l *HomeLibrary) Ivy() bool {
	return ils.IsIvyLibrary(l.Name) || strings.HasPrefix(strings.ToLower(l.Name), "ivy")
}

// Location finds a location by name.
func (l *HomeLibrary) Location(name string) *HomeLocation {
	for _, loc := range l.Locations {
		if loc.Name == name {
			return loc
		}
	}
	return nil
}

func (l *HomeLibrary) findOrCreateLocation(name string) *HomeLocation {
	if loc := l.Location(name); loc != nil {
		return loc
	}
	loc := &HomeLocation{Name: name}
	l.Locations = append(l.Locations, loc)
	return loc
}

// Records serializes the library back into pipe-delimited summary values.
func (l *HomeLibrary) Records() []string {
	var out []string
	for _, loc := range l.Locations {
		for _, s := range loc.Summaries {
			out = append(out, strings.Join([]string{
				l.Name, loc.Name, s.Text, s.Note, loc.Label, s.CallNumber,
			}, fieldSeparator))
		}
	}
	return out
}
