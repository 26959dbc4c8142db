// Package render turns a prepared waterfall snapshot into output formats.
//
// # Formats
//
//   - JSON: [RenderJSON] writes the [Layout] export, one entry per section
//     with its bounding rectangle, bands and item frames.
//   - SVG: [RenderSVG] draws every cell, header and footer as a rectangle,
//     coloured by [Palette].
//   - PNG: [RenderPNG] hands Graphviz a DOT graph whose nodes are pinned to
//     the computed frames and rasterizes it with the neato engine.
//
// All renderers read the snapshot only; they never trigger a layout pass.
//
//	engine := s.Engine()
//	if err := engine.Prepare(); err != nil {
//	    return err
//	}
//	svg := render.RenderSVG(engine.Snapshot(), render.WithOutlines())
package render
