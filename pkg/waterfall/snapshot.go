package waterfall

import (
	"slices"

	"github.com/matzehuels/masonry/pkg/geom"
)

// Snapshot is the geometry produced by one layout pass. It is immutable:
// every accessor returns copies, so callers can never corrupt the cache that
// later queries are answered from.
type Snapshot struct {
	width         float64
	items         [][]Attributes
	columns       []int
	headers       map[int]Attributes
	footers       map[int]Attributes
	rects         []geom.Rect
	contentHeight float64
}

func emptySnapshot(width float64) *Snapshot {
	return &Snapshot{
		width:   width,
		headers: map[int]Attributes{},
		footers: map[int]Attributes{},
	}
}

// Width returns the bounds width the snapshot was computed for.
func (s *Snapshot) Width() float64 { return s.width }

// ContentHeight returns the total height of all stacked sections.
func (s *Snapshot) ContentHeight() float64 { return s.contentHeight }

// NumberOfSections returns how many sections were laid out.
func (s *Snapshot) NumberOfSections() int { return len(s.items) }

// NumberOfItems returns the number of cells in section, or 0 if the section
// does not exist.
func (s *Snapshot) NumberOfItems(section int) int {
	if section < 0 || section >= len(s.items) {
		return 0
	}
	return len(s.items[section])
}

// ItemCount returns the number of cells across all sections.
func (s *Snapshot) ItemCount() int {
	n := 0
	for _, items := range s.items {
		n += len(items)
	}
	return n
}

// Columns returns the column count of section, or 0 if it does not exist.
func (s *Snapshot) Columns(section int) int {
	if section < 0 || section >= len(s.columns) {
		return 0
	}
	return s.columns[section]
}

// Items returns a copy of the cell attributes of section in item order.
func (s *Snapshot) Items(section int) []Attributes {
	if section < 0 || section >= len(s.items) {
		return nil
	}
	return slices.Clone(s.items[section])
}

// Item returns the cell attributes at path. ok is false when the path is
// outside the snapshot, which is expected for stale indexes.
func (s *Snapshot) Item(path IndexPath) (Attributes, bool) {
	if path.Section < 0 || path.Section >= len(s.items) {
		return Attributes{}, false
	}
	items := s.items[path.Section]
	if path.Item < 0 || path.Item >= len(items) {
		return Attributes{}, false
	}
	return items[path.Item], true
}

// Supplementary returns the header or footer of section.
func (s *Snapshot) Supplementary(kind Kind, section int) (Attributes, bool) {
	var a Attributes
	var ok bool
	switch kind {
	case KindHeader:
		a, ok = s.headers[section]
	case KindFooter:
		a, ok = s.footers[section]
	}
	return a, ok
}

// SectionRect returns the bounding rectangle of section. Sections with no
// header, footer or items have a null rectangle.
func (s *Snapshot) SectionRect(section int) (geom.Rect, bool) {
	if section < 0 || section >= len(s.rects) {
		return geom.Null, false
	}
	return s.rects[section], true
}

// InRect returns the cells of every section whose bounding rectangle
// intersects r. Whole sections are returned; headers and footers are not.
func (s *Snapshot) InRect(r geom.Rect) []Attributes {
	var out []Attributes
	for i, rect := range s.rects {
		if rect.Intersects(r) {
			out = append(out, s.items[i]...)
		}
	}
	return out
}

// SupplementaryInRect returns the headers and footers whose frames
// intersect r, in section order.
func (s *Snapshot) SupplementaryInRect(r geom.Rect) []Attributes {
	var out []Attributes
	for i := range s.rects {
		if h, ok := s.headers[i]; ok && h.Frame.Intersects(r) {
			out = append(out, h)
		}
		if f, ok := s.footers[i]; ok && f.Frame.Intersects(r) {
			out = append(out, f)
		}
	}
	return out
}
