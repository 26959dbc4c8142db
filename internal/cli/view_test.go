package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/masonry/pkg/geom"
	"github.com/matzehuels/masonry/pkg/scenario"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

func TestRasterize(t *testing.T) {
	attrs := []waterfall.Attributes{
		{Kind: waterfall.KindCell, Column: 0, Frame: geom.R(0, 0, 8, 8)},
		{Kind: waterfall.KindHeader, Column: -1, Frame: geom.R(0, 0, 16, 8)},
	}

	cv := rasterize(attrs, geom.R(0, 0, 16, 16), 4, 2)

	tests := []struct {
		x, y int
		want string
	}{
		{0, 0, string(columnColors[0])},
		{1, 0, string(columnColors[0])},
		{3, 0, string(headerColor)},
		{0, 1, ""},
	}
	for _, tt := range tests {
		if got := string(cv.at(tt.x, tt.y)); got != tt.want {
			t.Errorf("at(%d, %d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
	if lines := strings.Count(cv.String(), "\n") + 1; lines != 2 {
		t.Errorf("String() has %d lines, want 2", lines)
	}
}

func TestRasterizeScrolled(t *testing.T) {
	attrs := []waterfall.Attributes{
		{Kind: waterfall.KindCell, Column: 1, Frame: geom.R(4, 16, 4, 8)},
	}

	cv := rasterize(attrs, geom.R(0, 16, 8, 8), 2, 1)
	if cv.at(0, 0) != "" || cv.at(1, 0) != columnColors[1] {
		t.Errorf("row = [%q %q], want cell in column 1", cv.at(0, 0), cv.at(1, 0))
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func demoModel(t *testing.T, fit bool) viewModel {
	t.Helper()
	sc := scenario.Demo(1)
	e := sc.Engine()
	if err := e.Prepare(); err != nil {
		t.Fatal(err)
	}
	m := newViewModel(sc, e, fit)
	m.seed, m.reseed = 1, true
	return m
}

func TestViewModelResize(t *testing.T) {
	m := demoModel(t, true)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	m = next.(viewModel)

	if got := m.engine.Snapshot().Width(); got != 160 {
		t.Errorf("fitted width = %v, want 160", got)
	}
	if m.engine.Stale() {
		t.Error("engine stale after resize")
	}

	next, _ = m.Update(key("f"))
	m = next.(viewModel)
	if got := m.engine.Snapshot().Width(); got != scenario.DemoWidth {
		t.Errorf("unfitted width = %v, want %v", got, scenario.DemoWidth)
	}
}

func TestViewModelScroll(t *testing.T) {
	m := demoModel(t, false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = next.(viewModel)

	next, _ = m.Update(key("G"))
	m = next.(viewModel)
	if m.offset != m.maxOffset() || m.offset == 0 {
		t.Errorf("offset = %v, want bottom %v", m.offset, m.maxOffset())
	}

	next, _ = m.Update(key("g"))
	m = next.(viewModel)
	if m.offset != 0 {
		t.Errorf("offset = %v, want 0", m.offset)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(viewModel)
	if m.offset != 0 {
		t.Errorf("offset = %v, scrolled above the top", m.offset)
	}

	if !strings.Contains(m.View(), "demo") {
		t.Error("View() missing scenario name")
	}
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q did not quit")
	}
}

func TestViewModelReseed(t *testing.T) {
	m := demoModel(t, false)

	next, _ := m.Update(key("r"))
	m = next.(viewModel)

	if m.seed != 2 {
		t.Errorf("seed = %d, want 2", m.seed)
	}
	if mustID(t, m.sc) != mustID(t, scenario.Demo(2)) {
		t.Error("scenario not replaced by Demo(2)")
	}
	want := scenario.Demo(2).Engine()
	if err := want.Prepare(); err != nil {
		t.Fatal(err)
	}
	if got := m.engine.ContentSize(); got != want.ContentSize() {
		t.Errorf("content size = %v, want %v", got, want.ContentSize())
	}
}
