package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/geom"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

// queryOpts holds the command-line flags for the query command. Exactly one
// of rect, item, header or footer is set.
type queryOpts struct {
	input
	rect   string
	item   string
	header int
	footer int
}

// queryCommand creates the query command for looking up computed geometry.
func (c *CLI) queryCommand() *cobra.Command {
	opts := queryOpts{header: -1, footer: -1}

	cmd := &cobra.Command{
		Use:   "query [scenario]",
		Short: "Look up the geometry of cells and section bands",
		Long: `Look up the geometry of cells and section bands.

Exactly one selector is required:
  --rect x,y,w,h   every cell and band intersecting the rectangle
  --item s,i       the cell at section s, item i
  --header s       the header band of section s
  --footer s       the footer band of section s`,
		Args:              opts.args,
		ValidArgsFunction: c.completeScenarios,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd.Context(), args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.rect, "rect", "", "rectangle x,y,w,h")
	cmd.Flags().StringVar(&opts.item, "item", "", "item index path s,i")
	cmd.Flags().IntVar(&opts.header, "header", opts.header, "section whose header to show")
	cmd.Flags().IntVar(&opts.footer, "footer", opts.footer, "section whose footer to show")
	cmd.MarkFlagsMutuallyExclusive("rect", "item", "header", "footer")
	cmd.MarkFlagsOneRequired("rect", "item", "header", "footer")

	return cmd
}

func (c *CLI) runQuery(ctx context.Context, args []string, opts queryOpts) error {
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

	attrs, err := selectAttributes(e, opts)
	if err != nil {
		return err
	}
	if len(attrs) == 0 {
		printInfo("Nothing matched")
		return nil
	}
	fmt.Println(attributesTable(attrs))
	printDetail("%d matched · content %s", len(attrs), formatSize(e.ContentSize()))
	return nil
}

// selectAttributes runs the query named by opts against e.
func selectAttributes(e *waterfall.Engine, opts queryOpts) ([]waterfall.Attributes, error) {
	switch {
	case opts.rect != "":
		r, err := parseRect(opts.rect)
		if err != nil {
			return nil, err
		}
		return append(e.AttributesInRect(r), e.SupplementaryInRect(r)...), nil
	case opts.item != "":
		p, err := parsePath(opts.item)
		if err != nil {
			return nil, err
		}
		return single(e.AttributesForItem(p))
	case opts.header >= 0:
		return single(e.AttributesForSupplementary(waterfall.KindHeader, waterfall.Path(opts.header, 0)))
	case opts.footer >= 0:
		return single(e.AttributesForSupplementary(waterfall.KindFooter, waterfall.Path(opts.footer, 0)))
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "one of --rect, --item, --header or --footer is required")
}

func single(a waterfall.Attributes, ok bool) ([]waterfall.Attributes, error) {
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no such cell or band")
	}
	return []waterfall.Attributes{a}, nil
}

// attributesTable formats attrs as a rounded lipgloss table.
func attributesTable(attrs []waterfall.Attributes) string {
	rows := make([][]string, len(attrs))
	for i, a := range attrs {
		column := "—"
		if a.Column >= 0 {
			column = strconv.Itoa(a.Column)
		}
		rows[i] = []string{
			string(a.Kind),
			fmt.Sprintf("%d-%d", a.Path.Section, a.Path.Item),
			column,
			trimFloat(a.Frame.X),
			trimFloat(a.Frame.Y),
			trimFloat(a.Frame.Width),
			trimFloat(a.Frame.Height),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Path", "Column", "X", "Y", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col >= 3 {
				return base.Foreground(colorWhite)
			}
			return base.Foreground(kindColor(attrs[row]))
		})

	return t.Render()
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (geom.Rect, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return geom.Rect{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "rect %q (want x,y,w,h)", s)
	}
	return geom.R(v[0], v[1], v[2], v[3]), nil
}

// parsePath parses "s,i".
func parsePath(s string) (waterfall.IndexPath, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return waterfall.IndexPath{}, errors.New(errors.ErrCodeInvalidInput, "item %q (want section,item)", s)
	}
	sec, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	item, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return waterfall.IndexPath{}, errors.New(errors.ErrCodeInvalidInput, "item %q (want section,item)", s)
	}
	return waterfall.Path(sec, item), nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("got %d values, want %d", len(parts), n)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatSize(s geom.Size) string {
	return trimFloat(s.Width) + "×" + trimFloat(s.Height)
}
