package render

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/masonry/pkg/geom"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

// Layout is the serializable form of a snapshot.
type Layout struct {
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Sections []Section `json:"sections"`
}

// Section is one section of a [Layout]. Rect is nil for a section with no
// geometry at all.
type Section struct {
	Index   int        `json:"index"`
	Columns int        `json:"columns"`
	Rect    *geom.Rect `json:"rect,omitempty"`
	Header  *geom.Rect `json:"header,omitempty"`
	Footer  *geom.Rect `json:"footer,omitempty"`
	Items   []Item     `json:"items"`
}

// Item is the frame of one cell.
type Item struct {
	Section int     `json:"section"`
	Item    int     `json:"item"`
	Column  int     `json:"column"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Export converts snap to a [Layout].
func Export(snap *waterfall.Snapshot) Layout {
	out := Layout{
		Width:    snap.Width(),
		Height:   snap.ContentHeight(),
		Sections: make([]Section, snap.NumberOfSections()),
	}
	for i := range out.Sections {
		sec := Section{Index: i, Columns: snap.Columns(i), Items: []Item{}}
		if r, ok := snap.SectionRect(i); ok && !r.IsNull() {
			sec.Rect = &r
		}
		if h, ok := snap.Supplementary(waterfall.KindHeader, i); ok {
			sec.Header = &h.Frame
		}
		if f, ok := snap.Supplementary(waterfall.KindFooter, i); ok {
			sec.Footer = &f.Frame
		}
		for _, a := range snap.Items(i) {
			sec.Items = append(sec.Items, Item{
				Section: a.Path.Section,
				Item:    a.Path.Item,
				Column:  a.Column,
				X:       a.Frame.X,
				Y:       a.Frame.Y,
				Width:   a.Frame.Width,
				Height:  a.Frame.Height,
			})
		}
		out.Sections[i] = sec
	}
	return out
}

// WriteJSON encodes the layout of snap as indented JSON.
func WriteJSON(snap *waterfall.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export(snap))
}

// RenderJSON returns the layout of snap as indented JSON.
func RenderJSON(snap *waterfall.Snapshot) ([]byte, error) {
	return json.MarshalIndent(Export(snap), "", "  ")
}
