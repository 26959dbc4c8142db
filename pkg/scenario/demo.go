package scenario

import (
	"math/rand/v2"

	"github.com/matzehuels/masonry/pkg/geom"
)

// DemoWidth is the bounds width of the demo feed.
const DemoWidth = 320

// Demo returns the sample feed: three sections of one, two and three
// columns holding two, four and five 30pt-wide items between 10 and 29pt
// tall. Item i of section s is pinned to column i mod (s+1), so every item
// of the first section stacks in its single column. The same seed always
// yields the same feed.
func Demo(seed uint64) *Scenario {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s := New("demo", DemoWidth)
	s.Config.InteritemSpacing = 10
	insets := geom.Uniform(10)

	for i, count := range []int{2, 4, 5} {
		sec := Section{Columns: i + 1, Insets: &insets}
		for j := 0; j < count; j++ {
			col := j % (i + 1)
			sec.Items = append(sec.Items, Item{
				Width:  30,
				Height: float64(rng.IntN(20) + 10),
				Column: &col,
			})
		}
		s.Sections = append(s.Sections, sec)
	}
	return s
}
