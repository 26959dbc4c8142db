package waterfall

import "github.com/matzehuels/masonry/pkg/geom"

const (
	// DefaultColumnSpacing is the horizontal gap between columns.
	DefaultColumnSpacing = 10.0

	// DefaultInteritemSpacing is the vertical gap between items in a column.
	DefaultInteritemSpacing = 10.0
)

// Config holds the engine-wide layout parameters. Every field except
// ColumnSpacing can be overridden per section through [SectionMetrics].
type Config struct {
	ColumnSpacing    float64     `json:"column_spacing" toml:"column_spacing"`
	InteritemSpacing float64     `json:"interitem_spacing" toml:"interitem_spacing"`
	HeaderHeight     float64     `json:"header_height" toml:"header_height"`
	FooterHeight     float64     `json:"footer_height" toml:"footer_height"`
	HeaderInsets     geom.Insets `json:"header_insets" toml:"header_insets"`
	FooterInsets     geom.Insets `json:"footer_insets" toml:"footer_insets"`
	SectionInsets    geom.Insets `json:"section_insets" toml:"section_insets"`
}

// DefaultConfig returns the engine defaults: 10pt column and inter-item
// spacing, no header, no footer, no insets.
func DefaultConfig() Config {
	return Config{
		ColumnSpacing:    DefaultColumnSpacing,
		InteritemSpacing: DefaultInteritemSpacing,
	}
}

// Apply replaces c with next and reports whether any value changed.
// Values are compared by value, so re-applying an identical configuration
// is not a change.
func (c *Config) Apply(next Config) bool {
	if *c == next {
		return false
	}
	*c = next
	return true
}

// resolve returns the configuration for one section with the overrides from
// m applied on top of c.
func (c Config) resolve(section int, m SectionMetrics) Config {
	if m == nil {
		return c
	}
	out := c
	if v, ok := m.HeaderHeight(section); ok {
		out.HeaderHeight = v
	}
	if v, ok := m.FooterHeight(section); ok {
		out.FooterHeight = v
	}
	if v, ok := m.InteritemSpacing(section); ok {
		out.InteritemSpacing = v
	}
	if v, ok := m.SectionInsets(section); ok {
		out.SectionInsets = v
	}
	if v, ok := m.HeaderInsets(section); ok {
		out.HeaderInsets = v
	}
	if v, ok := m.FooterInsets(section); ok {
		out.FooterInsets = v
	}
	return out
}
