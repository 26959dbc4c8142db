package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/masonry/pkg/geom"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette  Palette
	outlines bool
	labels   bool
}

// WithPalette replaces the default colours.
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithOutlines draws each section's bounding rectangle.
func WithOutlines() SVGOption { return func(r *svgRenderer) { r.outlines = true } }

// WithLabels writes each cell's index path inside it.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// RenderSVG draws snap as an SVG document sized to the content.
func RenderSVG(snap *waterfall.Snapshot, opts ...SVGOption) []byte {
	r := svgRenderer{palette: DefaultPalette()}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := snap.Width(), snap.ContentHeight()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.palette.Background)

	for s := 0; s < snap.NumberOfSections(); s++ {
		if a, ok := snap.Supplementary(waterfall.KindHeader, s); ok {
			r.rect(&buf, a, "header")
		}
		for _, a := range snap.Items(s) {
			r.rect(&buf, a, "cell")
			if r.labels {
				r.label(&buf, a)
			}
		}
		if a, ok := snap.Supplementary(waterfall.KindFooter, s); ok {
			r.rect(&buf, a, "footer")
		}
		if rect, ok := snap.SectionRect(s); r.outlines && ok && !rect.IsNull() {
			outline(&buf, s, rect, r.palette.Outline)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) rect(buf *bytes.Buffer, a waterfall.Attributes, class string) {
	f := a.Frame
	fmt.Fprintf(buf, `  <rect id="%s-%s" class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		class, a.Path, class, f.X, f.Y, f.Width, f.Height, r.palette.Fill(a))
}

func (r *svgRenderer) label(buf *bytes.Buffer, a waterfall.Attributes) {
	c := a.Frame
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="8" fill="#ffffff" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		c.X+c.Width/2, c.Y+c.Height/2, a.Path)
}

func outline(buf *bytes.Buffer, section int, r geom.Rect, color string) {
	fmt.Fprintf(buf, `  <rect id="section-%d" class="section" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-dasharray="4 2"/>`+"\n",
		section, r.X, r.Y, r.Width, r.Height, color)
}
