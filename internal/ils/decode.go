// internal/ils/decode.go
package ils

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrDecode       = errors.New("ils: malformed availability payload")
	ErrEmptyPayload = errors.New("ils: empty availability payload")
)

// Format is the encoding of an ILS availability payload.
type Format int

const (
	FormatJSON Format = iota
	FormatXML
)

func (f Format) String() string {
	if f == FormatXML {
		return "xml"
	}
	return "json"
}

// DetectFormat picks the payload format from the response content type,
// falling back to sniffing the first non-blank byte.
func DetectFormat(contentType string, payload []byte) Format {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "xml"):
		return FormatXML
	case strings.Contains(ct, "json"):
		return FormatJSON
	}
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return FormatXML
	}
	return FormatJSON
}

// Decode turns a raw ILS payload into a CatalogItem. It never fails: a payload
// whose envelope cannot be decoded yields an error item with no holdings, and
// a holding that cannot be decoded yields a Holding carrying Err and no copies
// while the other holdings are kept.
func Decode(key string, payload []byte, format Format) *CatalogItem {
	if len(bytes.TrimSpace(payload)) == 0 {
		return NewErrorItem(key, ErrEmptyPayload)
	}

	var w wireCatalogItem
	var err error
	if format == FormatXML {
		err = xml.Unmarshal(payload, &w)
	} else {
		err = json.Unmarshal(payload, &w)
	}
	if err != nil {
		return NewErrorItem(key, fmt.Errorf("%w: %s: %v", ErrDecode, format, err))
	}

	item := w.toCatalogItem(NewLibraryDirectory(), format)
	if item.Key == "" {
		item.Key = key
	}
	return item
}

// flag accepts true/false, yes/no, y/n and 1/0 in either JSON or XML.
type flag bool

func (f *flag) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "true", "yes", "y", "1":
		*f = true
	case "false", "no", "n", "0", "":
		*f = false
	default:
		return fmt.Errorf("invalid flag %q", text)
	}
	return nil
}

func (f *flag) UnmarshalJSON(data []byte) error {
	if s, err := strconv.Unquote(string(data)); err == nil {
		return f.UnmarshalText([]byte(s))
	}
	return f.UnmarshalText(data)
}

func (f *flag) value() bool { return f != nil && bool(*f) }

func str(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func num(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

var checkoutLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func parseDate(s *string) *time.Time {
	v := str(s)
	if v == "" {
		return nil
	}
	for _, layout := range checkoutLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

type wireCatalogItem struct {
	XMLName  xml.Name     `json:"-" xml:"catalogItem"`
	Key      *string      `json:"key" xml:"key,attr"`
	Status   *int         `json:"status" xml:"status,attr"`
	Title    *string      `json:"title" xml:"title"`
	Author   *string      `json:"author" xml:"author"`
	CanHold  *wireCanHold `json:"canHold" xml:"canHold"`
	Holdings []rawHolding `json:"holding" xml:"holding"`
}

// rawHolding holds one undecoded holding element.
type rawHolding struct {
	data []byte
}

func (r *rawHolding) UnmarshalJSON(data []byte) error {
	r.data = append([]byte(nil), data...)
	return nil
}

// UnmarshalXML keeps the element, attributes included, as a standalone
// document.
func (r *rawHolding) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var inner struct {
		Body []byte `xml:",innerxml"`
	}
	if err := d.DecodeElement(&inner, &start); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := enc.EncodeToken(start.Copy()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	buf.Write(inner.Body)
	buf.WriteString("</" + start.Name.Local + ">")
	r.data = buf.Bytes()
	return nil
}

func (r rawHolding) decode(format Format) (wireHolding, error) {
	var w wireHolding
	var err error
	if format == FormatXML {
		err = xml.Unmarshal(r.data, &w)
	} else {
		err = json.Unmarshal(r.data, &w)
	}
	return w, err
}

type wireCanHold struct {
	Value   *flag   `json:"value" xml:"value,attr"`
	Message *string `json:"message" xml:"message,attr"`
}

type wireHolding struct {
	CallNumber   *string      `json:"callNumber" xml:"callNumber,attr"`
	CallSequence *int         `json:"callSequence" xml:"callSequence,attr"`
	Holdable     *flag        `json:"holdable" xml:"holdable,attr"`
	Shadowed     *flag        `json:"shadowed" xml:"shadowed,attr"`
	ShelvingKey  *string      `json:"shelvingKey" xml:"shelvingKey"`
	Library      *wireLibrary `json:"library" xml:"library"`
	Copies       []wireCopy   `json:"copy" xml:"copy"`
}

type wireLibrary struct {
	ID          *string `json:"id" xml:"id,attr"`
	Code        *string `json:"code" xml:"code,attr"`
	Name        *string `json:"name" xml:"name"`
	Deliverable *flag   `json:"deliverable" xml:"deliverable"`
	Holdable    *flag   `json:"holdable" xml:"holdable"`
	Remote      *flag   `json:"remote" xml:"remote"`
}

type wireCopy struct {
	CopyNumber        *int          `json:"copyNumber" xml:"copyNumber,attr"`
	Barcode           *string       `json:"barCode" xml:"barCode,attr"`
	Shadowed          *flag         `json:"shadowed" xml:"shadowed,attr"`
	CurrentPeriodical *flag         `json:"currentPeriodical" xml:"currentPeriodical,attr"`
	LastCheckout      *string       `json:"lastCheckout" xml:"lastCheckout"`
	Circulate         *string       `json:"circulate" xml:"circulate"`
	CurrentLocation   *wireLocation `json:"currentLocation" xml:"currentLocation"`
	HomeLocation      *wireLocation `json:"homeLocation" xml:"homeLocation"`
	ItemType          *wireItemType `json:"itemType" xml:"itemType"`
}

type wireLocation struct {
	ID   *string `json:"id" xml:"id,attr"`
	Code *string `json:"code" xml:"code,attr"`
	Name *string `json:"name" xml:"name"`
}

type wireItemType struct {
	ID   *string `json:"id" xml:"id,attr"`
	Code *string `json:"code" xml:"code,attr"`
}

func (w *wireCatalogItem) toCatalogItem(libs *LibraryDirectory, format Format) *CatalogItem {
	item := &CatalogItem{
		Key:      str(w.Key),
		Status:   num(w.Status),
		Title:    str(w.Title),
		Author:   str(w.Author),
		Holdings: make([]*Holding, 0, len(w.Holdings)),
	}
	if w.CanHold != nil {
		item.Holdability = Holdability{
			Holdable: w.CanHold.Value.value(),
			Message:  str(w.CanHold.Message),
		}
	}
	for i, raw := range w.Holdings {
		wh, err := raw.decode(format)
		if err != nil {
			item.Holdings = append(item.Holdings, &Holding{
				Err:    fmt.Errorf("%w: %s holding %d: %v", ErrDecode, format, i, err),
				Copies: []*Copy{},
			})
			continue
		}
		item.Holdings = append(item.Holdings, wh.toHolding(libs))
	}
	return item
}

func (w *wireHolding) toHolding(libs *LibraryDirectory) *Holding {
	h := &Holding{
		CallNumber:   str(w.CallNumber),
		CallSequence: num(w.CallSequence),
		Holdable:     w.Holdable.value(),
		Shadowed:     w.Shadowed.value(),
		ShelvingKey:  str(w.ShelvingKey),
		Copies:       make([]*Copy, 0, len(w.Copies)),
	}
	if w.Library != nil {
		h.Library = libs.Intern(Library{
			ID:          str(w.Library.ID),
			Code:        str(w.Library.Code),
			Name:        str(w.Library.Name),
			Deliverable: w.Library.Deliverable.value(),
			Holdable:    w.Library.Holdable.value(),
			Remote:      w.Library.Remote.value(),
		})
	}
	if h.ShelvingKey == "" {
		h.ShelvingKey = h.CallNumber
	}
	for i := range w.Copies {
		h.Copies = append(h.Copies, w.Copies[i].toCopy())
	}
	return h
}

func (w *wireCopy) toCopy() *Copy {
	c := &Copy{
		CopyNumber:        num(w.CopyNumber),
		Barcode:           str(w.Barcode),
		Shadowed:          w.Shadowed.value(),
		CurrentPeriodical: w.CurrentPeriodical.value(),
		LastCheckout:      parseDate(w.LastCheckout),
		CirculationRule:   str(w.Circulate),
	}
	if w.CurrentLocation != nil {
		c.CurrentLocation = w.CurrentLocation.toLocation()
	}
	if w.HomeLocation != nil {
		c.HomeLocation = w.HomeLocation.toLocation()
	}
	if w.ItemType != nil {
		c.ItemType = ItemType{ID: str(w.ItemType.ID), Code: str(w.ItemType.Code)}
	}
	return c
}

func (w *wireLocation) toLocation() Location {
	return Location{ID: str(w.ID), Code: str(w.Code), Name: str(w.Name)}
}
