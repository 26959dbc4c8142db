// Package pkg provides the core libraries for masonry waterfall layouts.
//
// # Overview
//
// Masonry lays out sectioned collections of variable-height cells. Each cell
// drops into the shortest column of its section; sections stack vertically
// with optional headers and footers. The pkg directory is organized into
// three areas:
//
//  1. [waterfall] - The layout engine (column tracking, section building,
//     snapshot caching and invalidation) on top of [geom] value types
//  2. [scenario] and [render] - Static data sources loaded from TOML or JSON,
//     and SVG, PNG and JSON output of computed layouts
//  3. [store] and [server] - Scenario persistence (file, memory, Redis,
//     MongoDB) and the HTTP API
//
// Cross-cutting packages: [errors] for coded errors, [observability] for
// hooks, [buildinfo] for version metadata.
//
// # Architecture
//
// The typical data flow through masonry:
//
//	Scenario file / HTTP body / stored ID
//	         ↓
//	    [scenario] package (data source + delegate + section metrics)
//	         ↓
//	    [waterfall] package (Prepare → Snapshot)
//	         ↓
//	    [render] package (SVG, PNG, JSON)
//
// # Quick Start
//
//	sc, err := scenario.Import("feed.toml")
//	if err != nil {
//	    return err
//	}
//	e := sc.Engine()
//	if err := e.Prepare(); err != nil {
//	    return err
//	}
//	svg := render.RenderSVG(e.Snapshot(), render.WithOutlines())
//
// [waterfall]: github.com/matzehuels/masonry/pkg/waterfall
// [geom]: github.com/matzehuels/masonry/pkg/geom
// [scenario]: github.com/matzehuels/masonry/pkg/scenario
// [render]: github.com/matzehuels/masonry/pkg/render
// [store]: github.com/matzehuels/masonry/pkg/store
// [server]: github.com/matzehuels/masonry/pkg/server
// [errors]: github.com/matzehuels/masonry/pkg/errors
// [observability]: github.com/matzehuels/masonry/pkg/observability
// [buildinfo]: github.com/matzehuels/masonry/pkg/buildinfo
package pkg
