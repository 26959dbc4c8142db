package waterfall

import (
	"fmt"

	"github.com/matzehuels/masonry/pkg/geom"
)

// IndexPath identifies an item (or a section band) by section and position.
type IndexPath struct {
	Section int `json:"section"`
	Item    int `json:"item"`
}

// Path is shorthand for constructing an IndexPath.
func Path(section, item int) IndexPath { return IndexPath{Section: section, Item: item} }

func (p IndexPath) String() string { return fmt.Sprintf("%d-%d", p.Section, p.Item) }

// DataSource describes the shape of the content: how many sections and
// items exist, how many columns each section has and where items are pinned.
type DataSource interface {
	NumberOfSections() int
	NumberOfItems(section int) int

	// NumberOfColumns must return a value greater than zero.
	NumberOfColumns(section int) int

	// ColumnForItem returns the column an item is pinned to. When ok is
	// false the item goes into the shortest column.
	ColumnForItem(path IndexPath) (column int, ok bool)
}

// Delegate supplies item sizes.
type Delegate interface {
	// SizeForItem returns the intrinsic size of an item. Only its aspect
	// ratio matters: the width is always scaled to the column width.
	SizeForItem(path IndexPath) geom.Size
}

// SectionMetrics optionally overrides the engine-wide configuration per
// section. A method returning ok == false leaves the engine default in place.
// Embed [NoSectionMetrics] to override only some values.
type SectionMetrics interface {
	HeaderHeight(section int) (float64, bool)
	FooterHeight(section int) (float64, bool)
	InteritemSpacing(section int) (float64, bool)
	SectionInsets(section int) (geom.Insets, bool)
	HeaderInsets(section int) (geom.Insets, bool)
	FooterInsets(section int) (geom.Insets, bool)
}

// NoSectionMetrics overrides nothing.
type NoSectionMetrics struct{}

func (NoSectionMetrics) HeaderHeight(int) (float64, bool) { return 0, false }
func (NoSectionMetrics) FooterHeight(int) (float64, bool) { return 0, false }
func (NoSectionMetrics) InteritemSpacing(int) (float64, bool) { return 0, false }
func (NoSectionMetrics) SectionInsets(int) (geom.Insets, bool) { return geom.Insets{}, false }
func (NoSectionMetrics) HeaderInsets(int) (geom.Insets, bool) { return geom.Insets{}, false }
func (NoSectionMetrics) FooterInsets(int) (geom.Insets, bool) { return geom.Insets{}, false }

var _ SectionMetrics = NoSectionMetrics{}
