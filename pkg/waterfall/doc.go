// Package waterfall implements a multi-column "waterfall" (masonry) layout
// engine.
//
// # Overview
//
// Items are grouped into sections. Every section has a fixed number of
// equal-width columns, and each item is appended to a column: either one the
// data source pins it to, or the currently shortest one. An item keeps its
// intrinsic aspect ratio, so its height is its intrinsic height scaled to the
// column width. Sections stack vertically and may carry a full-width header
// and footer band.
//
// The [Engine] owns the computed geometry. [Engine.Prepare] walks every
// section, builds a fresh [Snapshot] and swaps it in atomically; all queries
// afterwards are answered from that snapshot:
//
//	e := waterfall.New(source, delegate,
//	    waterfall.WithConfig(waterfall.DefaultConfig()),
//	    waterfall.WithBounds(geom.Size{Width: 320, Height: 480}),
//	)
//	if err := e.Prepare(); err != nil {
//	    return err
//	}
//	visible := e.AttributesInRect(geom.R(0, scrollY, 320, 480))
//
// # Invalidation
//
// Changing any configuration value through [Engine.SetConfig], changing the
// bounds width through [Engine.SetBounds], or calling [Engine.Invalidate]
// marks the snapshot stale. Nothing is recomputed until the next
// [Engine.Prepare] (or [Engine.PrepareIfNeeded]).
//
// # Contract Violations
//
// A section with a non-positive column count, an item pinned to a column
// outside its section, a nil data source or delegate, and a re-entrant call
// to Prepare all abort the pass with an error for which
// errors.IsContractViolation reports true. The previous snapshot stays in
// place.
package waterfall
