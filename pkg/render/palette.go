package render

import "github.com/matzehuels/masonry/pkg/waterfall"

// Palette maps attributes to fill colours.
type Palette struct {
	Columns    []string
	Header     string
	Footer     string
	Background string
	Outline    string
}

// DefaultPalette cycles cells through dark, mid and light grey by column,
// with blue headers and green footers.
func DefaultPalette() Palette {
	return Palette{
		Columns:    []string{"#555555", "#808080", "#aaaaaa"},
		Header:     "#0000ff",
		Footer:     "#00ff00",
		Background: "#ffffff",
		Outline:    "#ff00ff",
	}
}

// Fill returns the colour for a.
func (p Palette) Fill(a waterfall.Attributes) string {
	switch a.Kind {
	case waterfall.KindHeader:
		return p.Header
	case waterfall.KindFooter:
		return p.Footer
	}
	if len(p.Columns) == 0 || a.Column < 0 {
		return p.Background
	}
	return p.Columns[a.Column%len(p.Columns)]
}
