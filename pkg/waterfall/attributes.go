package waterfall

import "github.com/matzehuels/masonry/pkg/geom"

// Kind distinguishes cells from section bands.
type Kind string

const (
	KindCell   Kind = "cell"
	KindHeader Kind = "header"
	KindFooter Kind = "footer"
)

// Attributes is the computed geometry of one renderable unit. Header and
// footer attributes use item 0 in their path and column -1.
type Attributes struct {
	Path   IndexPath `json:"path"`
	Kind   Kind      `json:"kind"`
	Frame  geom.Rect `json:"frame"`
	Column int       `json:"column"`
}

func band(kind Kind, section int, frame geom.Rect) Attributes {
	return Attributes{Path: Path(section, 0), Kind: kind, Frame: frame, Column: -1}
}
