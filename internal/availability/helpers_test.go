package availability

import (
	"io"
	"log/slog"
	"strings"

	"libranexus/internal/ils"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func onShelf(barcode string) *ils.Copy {
	return copyAt(barcode, ils.CodeStacks, ils.CodeStacks)
}

func copyAt(barcode, current, home string) *ils.Copy {
	return &ils.Copy{
		Barcode:         barcode,
		CirculationRule: "Y",
		CurrentLocation: ils.Location{Code: current, Name: strings.ToLower(current)},
		HomeLocation:    ils.Location{Code: home, Name: strings.ToLower(home)},
	}
}

func holdingAt(library, shelvingKey string, copies ...*ils.Copy) *ils.Holding {
	return &ils.Holding{
		CallNumber:  shelvingKey,
		ShelvingKey: shelvingKey,
		Library:     ils.Library{Code: strings.ToUpper(strings.ReplaceAll(library, " ", "-")), Name: library},
		Copies:      copies,
	}
}

func itemWith(holdings ...*ils.Holding) *ils.CatalogItem {
	return &ils.CatalogItem{Key: "u1", Holdings: holdings}
}

func labels(holdings []*ils.Holding) []string {
	out := make([]string, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, h.Library.Label()+":"+h.ShelvingKey)
	}
	return out
}

func barcodes(holdings []*ils.Holding) []string {
	var out []string
	for _, h := range holdings {
		for _, c := range h.Copies {
			out = append(out, c.Barcode)
		}
	}
	return out
}
