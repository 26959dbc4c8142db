package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/masonry/pkg/waterfall"
)

// Graphviz measures positions in points and sizes in inches.
const pointsPerInch = 72.0

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette Palette
	dpi     float64
}

// WithPNGPalette replaces the default colours.
func WithPNGPalette(p Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// WithDPI sets the raster resolution. The default of 144 draws at 2x.
func WithDPI(dpi float64) PNGOption { return func(r *pngRenderer) { r.dpi = dpi } }

// ToDOT describes snap as an undirected graph for the neato engine: one
// fixed-size box per frame, pinned at the frame's centre. Graphviz's Y axis
// points up, so Y is flipped against the content height.
func ToDOT(snap *waterfall.Snapshot, p Palette, dpi float64) string {
	h := snap.ContentHeight()
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  notranslate=true;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", p.Background)
	fmt.Fprintf(&buf, "  dpi=%g;\n", dpi)
	buf.WriteString("  pad=0;\n")
	buf.WriteString("  node [shape=box, style=filled, fixedsize=true, label=\"\", penwidth=0];\n")
	buf.WriteString("  bounds [pos=\"0,0!\", width=0, height=0, style=invis];\n")
	fmt.Fprintf(&buf, "  extent [pos=\"%g,%g!\", width=0, height=0, style=invis];\n", snap.Width(), h)
	buf.WriteString("\n")

	node := func(id string, a waterfall.Attributes) {
		f := a.Frame
		fmt.Fprintf(&buf, "  %q [pos=\"%g,%g!\", width=%g, height=%g, fillcolor=%q];\n",
			id,
			f.X+f.Width/2, h-(f.Y+f.Height/2),
			f.Width/pointsPerInch, f.Height/pointsPerInch,
			p.Fill(a))
	}
	for s := 0; s < snap.NumberOfSections(); s++ {
		if a, ok := snap.Supplementary(waterfall.KindHeader, s); ok {
			node(fmt.Sprintf("header-%d", s), a)
		}
		for _, a := range snap.Items(s) {
			node("cell-"+a.Path.String(), a)
		}
		if a, ok := snap.Supplementary(waterfall.KindFooter, s); ok {
			node(fmt.Sprintf("footer-%d", s), a)
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderPNG rasterizes snap with Graphviz.
func RenderPNG(ctx context.Context, snap *waterfall.Snapshot, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{palette: DefaultPalette(), dpi: 144}
	for _, opt := range opts {
		opt(&r)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(ToDOT(snap, r.palette, r.dpi)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
