package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/geom"
	"github.com/matzehuels/masonry/pkg/scenario"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

// Terminal cells are roughly twice as tall as they are wide.
const (
	cellWidth  = 4.0 // layout points per terminal column
	cellHeight = 8.0 // layout points per terminal row
	chromeRows = 3   // title, status and help lines
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	input
	fit bool
}

// viewCommand creates the interactive layout viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:   "view [scenario]",
		Short: "Browse a layout in the terminal",
		Long: `Browse a layout in the terminal.

Cells are drawn in column shades, headers in blue and footers in green. With
--fit the layout width follows the terminal, so resizing the window
invalidates and recomputes the layout.

Keys: ↑/↓ scroll, pgup/pgdn page, g/G top/bottom, f toggle fit,
r reseed (demo), q quit.`,
		Args:              opts.args,
		ValidArgsFunction: c.completeScenarios,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.fit, "fit", false, "size the layout to the terminal width")

	return cmd
}

func (c *CLI) runView(ctx context.Context, args []string, opts viewOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	sc, err := c.load(ctx, opts.input, args, cfg)
	if err != nil {
		return err
	}
	e, err := c.prepare(ctx, sc)
	if err != nil {
		return err
	}

	m := newViewModel(sc, e, opts.fit)
	if opts.demo {
		m.seed = opts.seed
		m.reseed = true
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	if vm, ok := final.(viewModel); ok && vm.err != nil {
		return vm.err
	}
	return nil
}

// =============================================================================
// viewModel - Scrollable layout viewer
// =============================================================================

// viewModel is the bubbletea model for the layout viewer.
type viewModel struct {
	sc     *scenario.Scenario
	engine *waterfall.Engine
	fit    bool
	reseed bool
	seed   uint64

	cols, rows int     // terminal size
	offset     float64 // scroll position in layout points
	err        error
}

func newViewModel(sc *scenario.Scenario, e *waterfall.Engine, fit bool) viewModel {
	return viewModel{sc: sc, engine: e, fit: fit, cols: 80, rows: 24}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scroll(-cellHeight)
		case "down", "j":
			m.scroll(cellHeight)
		case "pgup", "b":
			m.scroll(-float64(m.viewRows()) * cellHeight)
		case "pgdown", " ":
			m.scroll(float64(m.viewRows()) * cellHeight)
		case "g", "home":
			m.offset = 0
		case "G", "end":
			m.offset = m.maxOffset()
		case "f":
			m.fit = !m.fit
			m.relayout()
		case "r":
			if m.reseed {
				m.seed++
				width := m.sc.Width
				*m.sc = *scenario.Demo(m.seed)
				m.sc.Width = width
				m.engine.Invalidate(waterfall.ReasonData)
				m.relayout()
			}
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.relayout()
	}
	return m, nil
}

// relayout pushes the bounds into the engine and recomputes if the change
// invalidated the layout.
func (m *viewModel) relayout() {
	width := m.sc.Width
	if m.fit {
		width = float64(m.cols) * cellWidth
	}
	m.engine.SetBounds(geom.Size{Width: width, Height: float64(m.viewRows()) * cellHeight})
	if err := m.engine.PrepareIfNeeded(); err != nil {
		m.err = err
	}
	m.offset = min(m.offset, m.maxOffset())
}

func (m *viewModel) scroll(dy float64) {
	m.offset = math.Max(0, math.Min(m.offset+dy, m.maxOffset()))
}

func (m viewModel) viewRows() int {
	return max(m.rows-chromeRows, 1)
}

func (m viewModel) maxOffset() float64 {
	return math.Max(0, m.engine.ContentSize().Height-float64(m.viewRows())*cellHeight)
}

func (m viewModel) View() string {
	var b strings.Builder

	size := m.engine.ContentSize()
	b.WriteString(StyleTitle.Render(m.sc.Name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · %d items · y %s",
		formatSize(size), m.engine.Snapshot().ItemCount(), trimFloat(m.offset))))
	if m.err != nil {
		b.WriteString("  " + StyleWarning.Render(m.err.Error()))
	}
	b.WriteString("\n")

	viewport := geom.R(0, m.offset, float64(m.cols)*cellWidth, float64(m.viewRows())*cellHeight)
	attrs := append(m.engine.AttributesInRect(viewport), m.engine.SupplementaryInRect(viewport)...)
	b.WriteString(rasterize(attrs, viewport, m.cols, m.viewRows()).String())

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ scroll  f fit  r reseed  q quit"))
	return b.String()
}

// =============================================================================
// Canvas
// =============================================================================

// canvas is a grid of terminal cells, each holding the colour of the layout
// unit painted into it.
type canvas struct {
	cols, rows int
	cells      []lipgloss.Color
}

// rasterize paints attrs into a cols×rows grid covering viewport. Bands are
// painted before cells, so a cell overlapping a band stays visible.
func rasterize(attrs []waterfall.Attributes, viewport geom.Rect, cols, rows int) canvas {
	cv := canvas{cols: cols, rows: rows, cells: make([]lipgloss.Color, cols*rows)}
	for _, pass := range []bool{false, true} {
		for _, a := range attrs {
			if (a.Kind == waterfall.KindCell) != pass {
				continue
			}
			cv.fill(a.Frame.Offset(-viewport.X, -viewport.Y), kindColor(a))
		}
	}
	return cv
}

func (cv canvas) fill(r geom.Rect, color lipgloss.Color) {
	if r.IsEmpty() {
		return
	}
	x0 := max(int(math.Floor(r.MinX()/cellWidth)), 0)
	x1 := min(int(math.Ceil(r.MaxX()/cellWidth)), cv.cols)
	y0 := max(int(math.Floor(r.MinY()/cellHeight)), 0)
	y1 := min(int(math.Ceil(r.MaxY()/cellHeight)), cv.rows)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cv.cells[y*cv.cols+x] = color
		}
	}
}

// at returns the colour painted at column x, row y, or "" for background.
func (cv canvas) at(x, y int) lipgloss.Color {
	return cv.cells[y*cv.cols+x]
}

// String renders the grid, one styled run per colour change.
func (cv canvas) String() string {
	var b strings.Builder
	for y := 0; y < cv.rows; y++ {
		if y > 0 {
			b.WriteString("\n")
		}
		for x := 0; x < cv.cols; {
			color := cv.at(x, y)
			run := 1
			for x+run < cv.cols && cv.at(x+run, y) == color {
				run++
			}
			if color == "" {
				b.WriteString(strings.Repeat(" ", run))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", run)))
			}
			x += run
		}
	}
	return b.String()
}

// kindColor picks the palette colour for a layout unit.
func kindColor(a waterfall.Attributes) lipgloss.Color {
	switch a.Kind {
	case waterfall.KindHeader:
		return headerColor
	case waterfall.KindFooter:
		return footerColor
	}
	return columnColors[a.Column%len(columnColors)]
}
