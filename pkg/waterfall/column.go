package waterfall

// ColumnTracker holds the floor height of every column in one section: the
// Y coordinate at which the next item placed into that column starts.
// The number of columns is fixed for the tracker's lifetime.
type ColumnTracker struct {
	heights []float64
	filled  []bool
	spacing float64
}

// NewColumnTracker seeds columns columns at top. spacing is added below
// every placed item.
func NewColumnTracker(columns int, top, spacing float64) *ColumnTracker {
	t := &ColumnTracker{
		heights: make([]float64, columns),
		filled:  make([]bool, columns),
		spacing: spacing,
	}
	for i := range t.heights {
		t.heights[i] = top
	}
	return t
}

// Len returns the number of columns.
func (t *ColumnTracker) Len() int { return len(t.heights) }

// Height returns the floor height of column.
func (t *ColumnTracker) Height(column int) float64 { return t.heights[column] }

// Filled reports whether any item has been placed into column.
func (t *ColumnTracker) Filled(column int) bool { return t.filled[column] }

// Shortest returns the index of the column with the smallest height.
// Ties go to the lowest index.
func (t *ColumnTracker) Shortest() int {
	best := 0
	for i, h := range t.heights {
		if h < t.heights[best] {
			best = i
		}
	}
	return best
}

// Longest returns the index of the column with the greatest height.
// Ties go to the lowest index.
func (t *ColumnTracker) Longest() int {
	best := 0
	for i, h := range t.heights {
		if h > t.heights[best] {
			best = i
		}
	}
	return best
}

// Place records an item whose bottom edge is bottom in column.
func (t *ColumnTracker) Place(column int, bottom float64) {
	t.heights[column] = bottom + t.spacing
	t.filled[column] = true
}

// Bottom returns the bottom edge of the content in the longest column,
// excluding the spacing trailing its last item.
func (t *ColumnTracker) Bottom() float64 {
	col := t.Longest()
	if t.filled[col] {
		return t.heights[col] - t.spacing
	}
	return t.heights[col]
}
