package geom

import "testing"

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{
			name: "null is identity on the left",
			a:    Null,
			b:    R(1, 2, 3, 4),
			want: R(1, 2, 3, 4),
		},
		{
			name: "null is identity on the right",
			a:    R(1, 2, 3, 4),
			b:    Null,
			want: R(1, 2, 3, 4),
		},
		{
			name: "disjoint",
			a:    R(0, 0, 10, 10),
			b:    R(20, 30, 5, 5),
			want: R(0, 0, 25, 35),
		},
		{
			name: "contained",
			a:    R(0, 0, 100, 100),
			b:    R(10, 10, 5, 5),
			want: R(0, 0, 100, 100),
		},
		{
			name: "zero area extends",
			a:    R(0, 0, 10, 10),
			b:    R(10, 40, 0, 0),
			want: R(0, 0, 10, 40),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectUnionNullWithNull(t *testing.T) {
	if got := Null.Union(Null); !got.IsNull() {
		t.Errorf("Null.Union(Null) = %v, want null", got)
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlapping", R(0, 0, 10, 10), R(5, 5, 10, 10), true},
		{"contained", R(0, 0, 10, 10), R(2, 2, 2, 2), true},
		{"disjoint", R(0, 0, 10, 10), R(20, 20, 5, 5), false},
		{"touching edge", R(0, 0, 10, 10), R(10, 0, 10, 10), false},
		{"zero size inside", R(0, 0, 10, 10), R(5, 5, 0, 0), true},
		{"zero size on edge", R(0, 0, 10, 10), R(10, 5, 0, 0), true},
		{"zero size outside", R(0, 0, 10, 10), R(50, 50, 0, 0), false},
		{"zero height band", R(0, 10, 10, 0), R(0, 0, 10, 20), true},
		{"null", Null, R(0, 0, 10, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIntersection(t *testing.T) {
	got := R(0, 0, 10, 10).Intersection(R(5, 5, 10, 10))
	if want := R(5, 5, 5, 5); got != want {
		t.Errorf("Intersection() = %v, want %v", got, want)
	}
	if got := R(0, 0, 10, 10).Intersection(R(20, 20, 1, 1)); !got.IsNull() {
		t.Errorf("Intersection() of disjoint = %v, want null", got)
	}
}

func TestRectEdges(t *testing.T) {
	r := R(10, 20, 30, 40)
	if r.MaxX() != 40 {
		t.Errorf("MaxX() = %v, want 40", r.MaxX())
	}
	if r.MaxY() != 60 {
		t.Errorf("MaxY() = %v, want 60", r.MaxY())
	}
	if !r.Contains(Point{X: 10, Y: 20}) {
		t.Error("Contains(top-left) = false, want true")
	}
	if r.Contains(Point{X: 40, Y: 60}) {
		t.Error("Contains(bottom-right) = true, want false")
	}
}

func TestRectInset(t *testing.T) {
	got := R(0, 0, 100, 50).Inset(Insets{Top: 5, Left: 10, Bottom: 5, Right: 10})
	if want := R(10, 5, 80, 40); got != want {
		t.Errorf("Inset() = %v, want %v", got, want)
	}
	if got := Null.Inset(Uniform(3)); !got.IsNull() {
		t.Errorf("Null.Inset() = %v, want null", got)
	}
}

func TestRectIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"null", Null, true},
		{"zero width", R(0, 0, 0, 10), true},
		{"zero height", R(0, 0, 10, 0), true},
		{"area", R(0, 0, 1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSizeIsDegenerate(t *testing.T) {
	tests := []struct {
		size Size
		want bool
	}{
		{Size{Width: 30, Height: 30}, false},
		{Size{Width: 0, Height: 30}, true},
		{Size{Width: 30, Height: -1}, true},
	}
	for _, tt := range tests {
		if got := tt.size.IsDegenerate(); got != tt.want {
			t.Errorf("%v.IsDegenerate() = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestInsets(t *testing.T) {
	in := Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}
	if in.Horizontal() != 6 {
		t.Errorf("Horizontal() = %v, want 6", in.Horizontal())
	}
	if in.Vertical() != 4 {
		t.Errorf("Vertical() = %v, want 4", in.Vertical())
	}
	if Uniform(10) != (Insets{Top: 10, Left: 10, Bottom: 10, Right: 10}) {
		t.Errorf("Uniform(10) = %v", Uniform(10))
	}
}
