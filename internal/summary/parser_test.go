package summary

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleLine(t *testing.T) {
	t.Parallel()

	got := Parse([]string{"Main|Stacks|v.1-2|[bound]|"})

	want := []*HomeLibrary{{
		Name: "Main",
		Locations: []*HomeLocation{{
			Name:      "Stacks",
			Summaries: []Summary{{Text: "v.1-2", Note: "[bound]"}},
		}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_GroupsByLibraryAndLocation(t *testing.T) {
	t.Parallel()

	got := Parse([]string{
		"Alderman|Stacks|v.1 - 10 ,|bound with index|Current Periodicals|AP2 .N6",
		"Alderman|Stacks|v.11-20||",
		"Ivy Stacks|Ivy|1990 / 1999|",
		"Alderman|Reference|Latest year only",
		" |Stacks|orphan",
		"Law|  |orphan",
		"",
	})

	want := []*HomeLibrary{
		{
			Name: "Alderman",
			Locations: []*HomeLocation{
				{
					Name:  "Stacks",
					Label: "Current Periodicals",
					Summaries: []Summary{
						{CallNumber: "AP2 .N6", Text: "v.1-10", Note: "[bound with index]"},
						{Text: "v.11-20"},
					},
				},
				{
					Name:      "Reference",
					Summaries: []Summary{{Text: "Latest year only"}},
				},
			},
		},
		{
			Name: "Ivy Stacks",
			Locations: []*HomeLocation{{
				Name:      "Ivy",
				Summaries: []Summary{{Text: "1990/1999"}},
			}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{"Main|Stacks|v.1-2|[bound]|"},
		{
			"Alderman|Stacks|v.1 - 10 ,|bound with index|Current Periodicals|AP2 .N6",
			"Alderman|Stacks|||| ",
			"Alderman|Reference||loose note",
			"Clemons|Media|[ DVD ]|",
		},
	}

	for _, values := range inputs {
		first := Parse(values)

		var records []string
		for _, lib := range first {
			records = append(records, lib.Records()...)
		}
		second := Parse(records)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("round trip mismatch for %v (-first +second):\n%s", values, diff)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "v.1-2", want: "v.1-2"},
		{in: "v.1 - 2,", want: "v.1-2"},
		{in: "v.1  -   2 , ,", want: "v.1-2"},
		{in: "[ bound ]", want: "[bound]"},
		{in: "1990 / 1999", want: "1990/1999"},
		{in: "  no.  3\tsupplement  ", want: "no. 3 supplement"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		got := Normalize(tt.in)
		assert.Equal(t, tt.want, got, "Normalize(%q)", tt.in)
		assert.Equal(t, got, Normalize(got), "Normalize not idempotent for %q", tt.in)
	}
}

func TestWrapNote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[bound]", WrapNote("bound", "", "v.1"))
	assert.Equal(t, "[bound]", WrapNote("bound", "AP2", ""))
	assert.Equal(t, "bound", WrapNote("bound", "", ""))
	assert.Equal(t, "[bound] copy", WrapNote("[bound] copy", "AP2", "v.1"))
	assert.Equal(t, "", WrapNote("", "AP2", "v.1"))
}

func TestHomeLibrary_Classifiers(t *testing.T) {
	t.Parallel()

	libs := Parse([]string{
		"Special Collections|Reading Room|MSS 38-51|",
		"Ivy Stacks|Course Reserve|v.3|",
	})
	require.Len(t, libs, 2)

	assert.True(t, libs[0].SpecialCollections())
	assert.False(t, libs[0].Ivy())
	assert.True(t, libs[1].Ivy())
	assert.True(t, libs[1].Location("Course Reserve").Reserve())
	assert.Nil(t, libs[1].Location("Stacks"))
}
