package waterfall

import "testing"

func TestColumnTracker(t *testing.T) {
	c := NewColumnTracker(3, 5, 10)
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	for i := 0; i < 3; i++ {
		if c.Height(i) != 5 || c.Filled(i) {
			t.Errorf("column %d = (%v, %v), want (5, false)", i, c.Height(i), c.Filled(i))
		}
	}
	if got := c.Shortest(); got != 0 {
		t.Errorf("Shortest() on ties = %d, want 0", got)
	}
	if got := c.Longest(); got != 0 {
		t.Errorf("Longest() on ties = %d, want 0", got)
	}
	if got := c.Bottom(); got != 5 {
		t.Errorf("Bottom() empty = %v, want 5", got)
	}

	c.Place(0, 30)
	c.Place(2, 30)
	if got := c.Height(0); got != 40 {
		t.Errorf("Height(0) = %v, want 40", got)
	}
	if got := c.Shortest(); got != 1 {
		t.Errorf("Shortest() = %d, want 1", got)
	}
	if got := c.Longest(); got != 0 {
		t.Errorf("Longest() = %d, want 0", got)
	}
	if got := c.Bottom(); got != 30 {
		t.Errorf("Bottom() = %v, want 30", got)
	}
}

func TestColumnTrackerBottomUnfilledLongest(t *testing.T) {
	// Nothing placed: Bottom is the seed height.
	c := NewColumnTracker(2, 12, 4)
	if got := c.Bottom(); got != 12 {
		t.Errorf("Bottom() = %v, want 12", got)
	}

	// A zero-height item with no spacing leaves column 1 level with the
	// unfilled column 0, which wins the tie.
	c = NewColumnTracker(2, 12, 0)
	c.Place(1, 12)
	if got := c.Longest(); got != 0 {
		t.Errorf("Longest() = %d, want 0", got)
	}
	if got := c.Bottom(); got != 12 {
		t.Errorf("Bottom() = %v, want 12", got)
	}
}
