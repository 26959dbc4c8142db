package scenario

import (
	"crypto/sha256"
	"encoding/hex"
	"math"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/geom"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

// MaxColumns is the largest column count a section may declare.
const MaxColumns = 256

// Scenario is a static waterfall data source.
type Scenario struct {
	Name     string           `json:"name,omitempty" toml:"name"`
	Width    float64          `json:"width" toml:"width"`
	Config   waterfall.Config `json:"config" toml:"config"`
	Sections []Section        `json:"sections" toml:"sections"`
}

// Section describes one section. Nil overrides fall back to the scenario
// config.
type Section struct {
	Columns          int          `json:"columns" toml:"columns"`
	HeaderHeight     *float64     `json:"header_height,omitempty" toml:"header_height"`
	FooterHeight     *float64     `json:"footer_height,omitempty" toml:"footer_height"`
	InteritemSpacing *float64     `json:"interitem_spacing,omitempty" toml:"interitem_spacing"`
	Insets           *geom.Insets `json:"insets,omitempty" toml:"insets"`
	HeaderInsets     *geom.Insets `json:"header_insets,omitempty" toml:"header_insets"`
	FooterInsets     *geom.Insets `json:"footer_insets,omitempty" toml:"footer_insets"`
	Items            []Item       `json:"items" toml:"items"`
}

// Item is the intrinsic size of one cell and an optional pinned column.
type Item struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
	Column *int    `json:"column,omitempty" toml:"column"`
}

// New returns an empty scenario with the engine default config.
func New(name string, width float64) *Scenario {
	return &Scenario{Name: name, Width: width, Config: waterfall.DefaultConfig()}
}

// Engine returns a layout engine bound to s, sized to s.Width. Extra options
// are applied after the scenario's own.
func (s *Scenario) Engine(opts ...waterfall.Option) *waterfall.Engine {
	base := []waterfall.Option{
		waterfall.WithConfig(s.Config),
		waterfall.WithSectionMetrics(s),
		waterfall.WithBounds(geom.Size{Width: s.Width}),
	}
	return waterfall.New(s, s, append(base, opts...)...)
}

// ID returns the hex SHA-256 of the canonical JSON encoding of s. Scenarios
// holding non-finite numbers cannot be encoded and have no ID.
func (s *Scenario) ID() (string, error) {
	data, err := s.Marshal()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidScenario, err, "encode scenario")
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Validate checks that s can be laid out: finite numbers throughout, a
// non-negative width, column counts in [1, MaxColumns], pinned columns in
// range and non-negative sizes.
func (s *Scenario) Validate() error {
	if !finite(s.Width) || s.Width < 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "width must be a finite non-negative number, got %g", s.Width)
	}
	if err := validateConfig(s.Config); err != nil {
		return err
	}
	for i, sec := range s.Sections {
		if sec.Columns <= 0 || sec.Columns > MaxColumns {
			return errors.New(errors.ErrCodeInvalidScenario, "section %d: columns must be in [1, %d], got %d", i, MaxColumns, sec.Columns)
		}
		for _, v := range []*float64{sec.HeaderHeight, sec.FooterHeight, sec.InteritemSpacing} {
			if v != nil && (!finite(*v) || *v < 0) {
				return errors.New(errors.ErrCodeInvalidScenario, "section %d: invalid height or spacing %g", i, *v)
			}
		}
		for _, in := range []*geom.Insets{sec.Insets, sec.HeaderInsets, sec.FooterInsets} {
			if in != nil && !finiteInsets(*in) {
				return errors.New(errors.ErrCodeInvalidScenario, "section %d: insets must be finite", i)
			}
		}
		for j, it := range sec.Items {
			if !finite(it.Width, it.Height) || it.Width < 0 || it.Height < 0 {
				return errors.New(errors.ErrCodeInvalidScenario, "item %d-%d: invalid size %gx%g", i, j, it.Width, it.Height)
			}
			if it.Column != nil && (*it.Column < 0 || *it.Column >= sec.Columns) {
				return errors.New(errors.ErrCodeInvalidScenario, "item %d-%d: column %d outside [0, %d)", i, j, *it.Column, sec.Columns)
			}
		}
	}
	return nil
}

func validateConfig(c waterfall.Config) error {
	if !finite(c.ColumnSpacing, c.InteritemSpacing, c.HeaderHeight, c.FooterHeight) ||
		!finiteInsets(c.HeaderInsets) || !finiteInsets(c.FooterInsets) || !finiteInsets(c.SectionInsets) {
		return errors.New(errors.ErrCodeInvalidScenario, "config values must be finite")
	}
	if c.ColumnSpacing < 0 || c.InteritemSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "spacing must not be negative")
	}
	if c.HeaderHeight < 0 || c.FooterHeight < 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "header and footer heights must not be negative")
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func finiteInsets(in geom.Insets) bool {
	return finite(in.Top, in.Left, in.Bottom, in.Right)
}

// ItemCount returns the number of items across all sections.
func (s *Scenario) ItemCount() int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Items)
	}
	return n
}

func (s *Scenario) section(i int) (Section, bool) {
	if i < 0 || i >= len(s.Sections) {
		return Section{}, false
	}
	return s.Sections[i], true
}

func (s *Scenario) item(p waterfall.IndexPath) (Item, bool) {
	sec, ok := s.section(p.Section)
	if !ok || p.Item < 0 || p.Item >= len(sec.Items) {
		return Item{}, false
	}
	return sec.Items[p.Item], true
}

// NumberOfSections implements [waterfall.DataSource].
func (s *Scenario) NumberOfSections() int { return len(s.Sections) }

// NumberOfItems implements [waterfall.DataSource].
func (s *Scenario) NumberOfItems(section int) int {
	sec, _ := s.section(section)
	return len(sec.Items)
}

// NumberOfColumns implements [waterfall.DataSource].
func (s *Scenario) NumberOfColumns(section int) int {
	sec, _ := s.section(section)
	return sec.Columns
}

// ColumnForItem implements [waterfall.DataSource].
func (s *Scenario) ColumnForItem(p waterfall.IndexPath) (int, bool) {
	it, ok := s.item(p)
	if !ok || it.Column == nil {
		return 0, false
	}
	return *it.Column, true
}

// SizeForItem implements [waterfall.Delegate].
func (s *Scenario) SizeForItem(p waterfall.IndexPath) geom.Size {
	it, _ := s.item(p)
	return geom.Size{Width: it.Width, Height: it.Height}
}

func floatOverride(s *Scenario, section int, pick func(Section) *float64) (float64, bool) {
	sec, ok := s.section(section)
	if !ok || pick(sec) == nil {
		return 0, false
	}
	return *pick(sec), true
}

func insetsOverride(s *Scenario, section int, pick func(Section) *geom.Insets) (geom.Insets, bool) {
	sec, ok := s.section(section)
	if !ok || pick(sec) == nil {
		return geom.Insets{}, false
	}
	return *pick(sec), true
}

// HeaderHeight implements [waterfall.SectionMetrics].
func (s *Scenario) HeaderHeight(section int) (float64, bool) {
	return floatOverride(s, section, func(sec Section) *float64 { return sec.HeaderHeight })
}

// FooterHeight implements [waterfall.SectionMetrics].
func (s *Scenario) FooterHeight(section int) (float64, bool) {
	return floatOverride(s, section, func(sec Section) *float64 { return sec.FooterHeight })
}

// InteritemSpacing implements [waterfall.SectionMetrics].
func (s *Scenario) InteritemSpacing(section int) (float64, bool) {
	return floatOverride(s, section, func(sec Section) *float64 { return sec.InteritemSpacing })
}

// SectionInsets implements [waterfall.SectionMetrics].
func (s *Scenario) SectionInsets(section int) (geom.Insets, bool) {
	return insetsOverride(s, section, func(sec Section) *geom.Insets { return sec.Insets })
}

// HeaderInsets implements [waterfall.SectionMetrics].
func (s *Scenario) HeaderInsets(section int) (geom.Insets, bool) {
	return insetsOverride(s, section, func(sec Section) *geom.Insets { return sec.HeaderInsets })
}

// FooterInsets implements [waterfall.SectionMetrics].
func (s *Scenario) FooterInsets(section int) (geom.Insets, bool) {
	return insetsOverride(s, section, func(sec Section) *geom.Insets { return sec.FooterInsets })
}

var (
	_ waterfall.DataSource     = (*Scenario)(nil)
	_ waterfall.Delegate       = (*Scenario)(nil)
	_ waterfall.SectionMetrics = (*Scenario)(nil)
)
