package waterfall

import "github.com/matzehuels/masonry/pkg/geom"

// grid is an in-memory data source and delegate for tests.
type grid struct {
	sections []gridSection
	onSize   func(IndexPath)
}

type gridSection struct {
	columns int
	sizes   []geom.Size
	pinned  map[int]int
}

func (g *grid) NumberOfSections() int { return len(g.sections) }
func (g *grid) NumberOfItems(section int) int { return len(g.sections[section].sizes) }
func (g *grid) NumberOfColumns(section int) int { return g.sections[section].columns }

func (g *grid) ColumnForItem(p IndexPath) (int, bool) {
	col, ok := g.sections[p.Section].pinned[p.Item]
	return col, ok
}

func (g *grid) SizeForItem(p IndexPath) geom.Size {
	if g.onSize != nil {
		g.onSize(p)
	}
	return g.sections[p.Section].sizes[p.Item]
}

func sizes(pairs ...float64) []geom.Size {
	out := make([]geom.Size, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, geom.Size{Width: pairs[i], Height: pairs[i+1]})
	}
	return out
}

// overrides applies per-section heights; other values use engine defaults.
type overrides struct {
	NoSectionMetrics
	header map[int]float64
	insets map[int]geom.Insets
}

func (o overrides) HeaderHeight(section int) (float64, bool) {
	v, ok := o.header[section]
	return v, ok
}

func (o overrides) SectionInsets(section int) (geom.Insets, bool) {
	v, ok := o.insets[section]
	return v, ok
}
