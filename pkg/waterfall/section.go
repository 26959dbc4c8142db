package waterfall

import (
	"math"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/geom"
)

// SectionDescriptor is everything known about a section before its items
// are placed. Metrics already has the per-section overrides applied.
type SectionDescriptor struct {
	Index   int
	Columns int
	Items   int
	Metrics Config
}

// ColumnWidth returns the width of one column for a section of width
// sectionWidth. The result is floored so adjacent columns never overlap
// through sub-pixel rounding, and is never negative.
func (d SectionDescriptor) ColumnWidth(sectionWidth float64) float64 {
	available := sectionWidth - d.Metrics.SectionInsets.Horizontal()
	spacing := float64(d.Columns-1) * d.Metrics.ColumnSpacing
	return max(0, math.Floor((available-spacing)/float64(d.Columns)))
}

// ItemMetric is the input for placing one item.
type ItemMetric struct {
	Path   IndexPath
	Size   geom.Size
	Column int
	Pinned bool
}

// ScaledHeight returns the item's height when drawn columnWidth wide,
// preserving its aspect ratio. Degenerate sizes yield zero.
func (m ItemMetric) ScaledHeight(columnWidth float64) float64 {
	if m.Size.IsDegenerate() {
		return 0
	}
	return m.Size.Height * columnWidth / m.Size.Width
}

// sectionLayout is the output of laying out one section.
type sectionLayout struct {
	items  []Attributes
	header *Attributes
	footer *Attributes
	rect   geom.Rect
	bottom float64
}

// sectionBuilder lays out sections against a fixed width using the engine's
// collaborators.
type sectionBuilder struct {
	width    float64
	source   DataSource
	delegate Delegate
}

// describe builds the descriptor for section, validating its column count.
func (b sectionBuilder) describe(section int, cfg Config, metrics SectionMetrics) (SectionDescriptor, error) {
	columns := b.source.NumberOfColumns(section)
	if columns <= 0 {
		return SectionDescriptor{}, errors.New(errors.ErrCodeInvalidColumnCount,
			"section %d: number of columns must be greater than 0, got %d", section, columns)
	}
	return SectionDescriptor{
		Index:   section,
		Columns: columns,
		Items:   max(0, b.source.NumberOfItems(section)),
		Metrics: cfg.resolve(section, metrics),
	}, nil
}

// metric gathers the placement input for one item.
func (b sectionBuilder) metric(d SectionDescriptor, item int) (ItemMetric, error) {
	path := Path(d.Index, item)
	m := ItemMetric{Path: path, Size: b.delegate.SizeForItem(path)}
	if col, ok := b.source.ColumnForItem(path); ok {
		if col < 0 || col >= d.Columns {
			return ItemMetric{}, errors.New(errors.ErrCodeInvalidColumn,
				"item %s: pinned column %d outside [0, %d)", path, col, d.Columns)
		}
		m.Column, m.Pinned = col, true
	}
	return m, nil
}

// build lays out one section starting at the vertical cursor top.
func (b sectionBuilder) build(d SectionDescriptor, top float64) (sectionLayout, error) {
	cfg := d.Metrics
	out := sectionLayout{rect: geom.Null}

	top += cfg.HeaderInsets.Top
	if cfg.HeaderHeight > 0 {
		h := band(KindHeader, d.Index, geom.R(
			cfg.HeaderInsets.Left,
			top,
			b.width-cfg.HeaderInsets.Horizontal(),
			cfg.HeaderHeight,
		))
		out.header = &h
		out.rect = out.rect.Union(h.Frame)
		top = h.Frame.MaxY() + cfg.HeaderInsets.Bottom
	}

	top += cfg.SectionInsets.Top
	columns := NewColumnTracker(d.Columns, top, cfg.InteritemSpacing)
	width := d.ColumnWidth(b.width)

	out.items = make([]Attributes, 0, d.Items)
	for item := 0; item < d.Items; item++ {
		m, err := b.metric(d, item)
		if err != nil {
			return sectionLayout{}, err
		}
		col := m.Column
		if !m.Pinned {
			col = columns.Shortest()
		}
		frame := geom.R(
			cfg.SectionInsets.Left+float64(col)*(width+cfg.ColumnSpacing),
			columns.Height(col),
			width,
			m.ScaledHeight(width),
		)
		out.items = append(out.items, Attributes{Path: m.Path, Kind: KindCell, Frame: frame, Column: col})
		out.rect = out.rect.Union(frame)
		columns.Place(col, frame.MaxY())
	}

	top = columns.Bottom() + cfg.SectionInsets.Bottom + cfg.FooterInsets.Top
	if cfg.FooterHeight > 0 {
		f := band(KindFooter, d.Index, geom.R(
			cfg.FooterInsets.Left,
			top,
			b.width-cfg.FooterInsets.Horizontal(),
			cfg.FooterHeight,
		))
		out.footer = &f
		out.rect = out.rect.Union(f.Frame)
		top = f.Frame.MaxY() + cfg.FooterInsets.Bottom
	}

	out.bottom = top
	return out, nil
}
