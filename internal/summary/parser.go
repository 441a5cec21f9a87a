// internal/summary/parser.go
package summary

import (
	"regexp"
	"strings"
)

const fieldSeparator = "|"

const (
	fieldLibrary = iota
	fieldLocation
	fieldText
	fieldNote
	fieldLabel
	fieldCallNumber
)

var (
	openBracketSpace  = regexp.MustCompile(`\[\s+`)
	closeBracketSpace = regexp.MustCompile(`\s+\]`)
	slashSpace        = regexp.MustCompile(`\s*/\s*`)
	dashSpace         = regexp.MustCompile(`\s*-\s*`)
)

// Parse builds home libraries from the summary-holdings values of a catalog
// record. Libraries and locations keep the order in which they first appear.
func Parse(values []string) []*HomeLibrary {
	var libraries []*HomeLibrary
	byName := make(map[string]*HomeLibrary)

	for _, value := range values {
		fields := strings.Split(value, fieldSeparator)
		libName := field(fields, fieldLibrary)
		locName := field(fields, fieldLocation)
		if libName == "" || locName == "" {
			continue
		}

		lib, ok := byName[libName]
		if !ok {
			lib = &HomeLibrary{Name: libName}
			byName[libName] = lib
			libraries = append(libraries, lib)
		}

		loc := lib.findOrCreateLocation(locName)
		if label := field(fields, fieldLabel); label != "" && loc.Label == "" {
			loc.Label = label
		}
		loc.Summaries = append(loc.Summaries, NewSummary(
			field(fields, fieldCallNumber),
			field(fields, fieldText),
			field(fields, fieldNote),
		))
	}

	return libraries
}

// NewSummary normalizes the call number and text and brackets the note.
func NewSummary(callNumber, text, note string) Summary {
	callNumber = Normalize(callNumber)
	text = Normalize(text)
	return Summary{
		CallNumber: callNumber,
		Text:       text,
		Note:       WrapNote(collapse(note), callNumber, text),
	}
}

// Normalize tidies summary text: no trailing commas, no padding inside
// brackets or around slashes and dashes, single spaces.
func Normalize(s string) string {
	s = collapse(s)
	s = openBracketSpace.ReplaceAllString(s, "[")
	s = closeBracketSpace.ReplaceAllString(s, "]")
	s = slashSpace.ReplaceAllString(s, "/")
	s = dashSpace.ReplaceAllString(s, "-")
	return strings.TrimRight(s, ", ")
}

// WrapNote brackets a note that sits next to a call number or text, unless it
// already carries brackets.
func WrapNote(note, callNumber, text string) string {
	if note == "" || strings.ContainsAny(note, "[]") {
		return note
	}
	if callNumber == "" && text == "" {
		return note
	}
	return "[" + note + "]"
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func field(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}
