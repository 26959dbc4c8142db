// Package scenario describes waterfall content as data.
//
// A [Scenario] is a static description of sections and items that satisfies
// the waterfall collaborator interfaces ([waterfall.DataSource],
// [waterfall.Delegate] and [waterfall.SectionMetrics]), so any scenario can
// be laid out without writing code:
//
//	s, err := scenario.Import("feed.toml")
//	if err != nil {
//	    return err
//	}
//	engine := s.Engine()
//	if err := engine.Prepare(); err != nil {
//	    return err
//	}
//
// # File Format
//
// Scenarios are read from TOML or JSON, chosen by file extension:
//
//	name  = "feed"
//	width = 320
//
//	[config]
//	column_spacing    = 10
//	interitem_spacing = 10
//
//	[[sections]]
//	columns       = 2
//	header_height = 24
//	insets        = { top = 10, left = 10, bottom = 10, right = 10 }
//	items         = [
//	    { width = 30, height = 12 },
//	    { width = 30, height = 20, column = 1 },
//	]
//
// Omitted [config] values keep the engine defaults. Per-section values
// override the config for that section only.
//
// # Identity
//
// [Scenario.ID] is the SHA-256 of the canonical JSON encoding, so two
// scenarios with the same content share an ID regardless of the format they
// were read from.
//
// [Demo] builds the three-section sample feed used by the viewer.
package scenario
