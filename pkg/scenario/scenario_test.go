package scenario

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/geom"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

const feedTOML = `
name  = "feed"
width = 70

[config]
column_spacing = 10

[[sections]]
columns       = 2
header_height = 12
items         = [
    { width = 30, height = 30 },
    { width = 30, height = 60 },
    { width = 30, height = 30, column = 1 },
]
`

func TestParseTOML(t *testing.T) {
	s, err := Parse([]byte(feedTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if s.Name != "feed" || s.Width != 70 || len(s.Sections) != 1 {
		t.Fatalf("Parse() = %+v", s)
	}
	// interitem_spacing was omitted and keeps the engine default.
	if s.Config.InteritemSpacing != waterfall.DefaultInteritemSpacing {
		t.Errorf("InteritemSpacing = %v, want default", s.Config.InteritemSpacing)
	}
	if h, ok := s.HeaderHeight(0); !ok || h != 12 {
		t.Errorf("HeaderHeight(0) = %v, %v", h, ok)
	}
	if _, ok := s.FooterHeight(0); ok {
		t.Error("FooterHeight(0) overridden, want default")
	}
	if col, ok := s.ColumnForItem(waterfall.Path(0, 2)); !ok || col != 1 {
		t.Errorf("ColumnForItem(0-2) = %d, %v", col, ok)
	}
	if _, ok := s.ColumnForItem(waterfall.Path(0, 0)); ok {
		t.Error("item 0-0 pinned, want free")
	}
}

func TestParseWithConfig(t *testing.T) {
	base := waterfall.DefaultConfig()
	base.InteritemSpacing = 4
	base.ColumnSpacing = 2

	s, err := ParseWithConfig([]byte(feedTOML), FormatTOML, base)
	if err != nil {
		t.Fatalf("ParseWithConfig() error: %v", err)
	}
	if s.Config.InteritemSpacing != 4 {
		t.Errorf("InteritemSpacing = %v, want 4 from base", s.Config.InteritemSpacing)
	}
	// column_spacing is set in the file and wins over the base.
	if s.Config.ColumnSpacing != 10 {
		t.Errorf("ColumnSpacing = %v, want 10 from file", s.Config.ColumnSpacing)
	}
}

func TestScenarioEngine(t *testing.T) {
	s, err := Parse([]byte(feedTOML), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	e := s.Engine()
	if err := e.Prepare(); err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	want := []geom.Rect{
		geom.R(0, 12, 30, 30),
		geom.R(40, 12, 30, 60),
		geom.R(40, 82, 30, 30),
	}
	for i, w := range want {
		a, ok := e.AttributesForItem(waterfall.Path(0, i))
		if !ok || a.Frame != w {
			t.Errorf("item %d = %v, want %v", i, a.Frame, w)
		}
	}
	if got := e.ContentSize().Height; got != 112 {
		t.Errorf("content height = %v, want 112", got)
	}
}

func TestParseJSONRoundTrip(t *testing.T) {
	src := Demo(7)
	var buf bytes.Buffer
	if err := src.Write(&buf, FormatJSON); err != nil {
		t.Fatal(err)
	}
	got, err := Parse(buf.Bytes(), FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if mustID(t, got) != mustID(t, src) {
		t.Errorf("ID changed across JSON round trip")
	}
}

func TestExportImport(t *testing.T) {
	src := Demo(3)
	for _, name := range []string{"demo.toml", "demo.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := src.Export(path); err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatalf("Import() error: %v", err)
			}
			if mustID(t, got) != mustID(t, src) {
				t.Errorf("Import(%s) ID = %s, want %s", name, mustID(t, got), mustID(t, src))
			}
		})
	}
}

func TestImportNamesFromFile(t *testing.T) {
	s := New("", 100)
	s.Sections = []Section{{Columns: 1}}
	path := filepath.Join(t.TempDir(), "gallery.json")
	if err := s.Export(path); err != nil {
		t.Fatal(err)
	}
	got, err := Import(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "gallery" {
		t.Errorf("Name = %q, want gallery", got.Name)
	}
}

func TestImportMissing(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   errors.Code
	}{
		{"bad json", `{`, FormatJSON, errors.ErrCodeInvalidScenario},
		{"bad toml", `width = `, FormatTOML, errors.ErrCodeInvalidScenario},
		{"unknown format", `{}`, Format("yaml"), errors.ErrCodeInvalidFormat},
		{"zero columns", `{"sections":[{"columns":0}]}`, FormatJSON, errors.ErrCodeInvalidScenario},
		{"negative width", `{"width":-1}`, FormatJSON, errors.ErrCodeInvalidScenario},
		{"negative item", `{"sections":[{"columns":1,"items":[{"width":-1,"height":2}]}]}`, FormatJSON, errors.ErrCodeInvalidScenario},
		{"pinned out of range", `{"sections":[{"columns":2,"items":[{"width":1,"height":2,"column":2}]}]}`, FormatJSON, errors.ErrCodeInvalidScenario},
		{"negative header", `{"sections":[{"columns":1,"header_height":-4}]}`, FormatJSON, errors.ErrCodeInvalidScenario},
		{"too many columns", `{"width":70,"sections":[{"columns":1099511627776,"items":[]}]}`, FormatJSON, errors.ErrCodeInvalidScenario},
		{"nan width", "width = nan", FormatTOML, errors.ErrCodeInvalidScenario},
		{"inf width", "width = inf", FormatTOML, errors.ErrCodeInvalidScenario},
		{"nan spacing", "width = 70\n[config]\ncolumn_spacing = nan", FormatTOML, errors.ErrCodeInvalidScenario},
		{"inf item", "width = 70\n[[sections]]\ncolumns = 1\nitems = [{ width = 30, height = inf }]", FormatTOML, errors.ErrCodeInvalidScenario},
		{"nan insets", "width = 70\n[[sections]]\ncolumns = 1\ninsets = { top = nan }", FormatTOML, errors.ErrCodeInvalidScenario},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidateColumnLimit(t *testing.T) {
	s := New("wide", 70)
	s.Sections = []Section{{Columns: MaxColumns}}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() with %d columns: %v", MaxColumns, err)
	}
	s.Sections[0].Columns = MaxColumns + 1
	if err := s.Validate(); !errors.Is(err, errors.ErrCodeInvalidScenario) {
		t.Errorf("Validate() with %d columns = %v, want %s", MaxColumns+1, err, errors.ErrCodeInvalidScenario)
	}
}

func TestIDNonFinite(t *testing.T) {
	s := New("nan", math.NaN())
	if _, err := s.ID(); !errors.Is(err, errors.ErrCodeInvalidScenario) {
		t.Errorf("ID() error = %v, want %s", err, errors.ErrCodeInvalidScenario)
	}
	a, b := New("a", 70), New("b", 70)
	if mustID(t, a) == mustID(t, b) {
		t.Error("different scenarios share an ID")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"a.toml":    FormatTOML,
		"A.TOML":    FormatTOML,
		"a.json":    FormatJSON,
		"a":         FormatJSON,
		"dir/x.tml": FormatTOML,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestOutOfRangeLookups(t *testing.T) {
	s := Demo(1)
	if n := s.NumberOfItems(9); n != 0 {
		t.Errorf("NumberOfItems(9) = %d", n)
	}
	if n := s.NumberOfColumns(-1); n != 0 {
		t.Errorf("NumberOfColumns(-1) = %d", n)
	}
	if sz := s.SizeForItem(waterfall.Path(0, 99)); sz != (geom.Size{}) {
		t.Errorf("SizeForItem(0-99) = %+v", sz)
	}
	if _, ok := s.SectionInsets(5); ok {
		t.Error("SectionInsets(5) ok")
	}
}

func TestExampleFeed(t *testing.T) {
	s, err := Import(filepath.Join("..", "..", "examples", "feed.toml"))
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if len(s.Sections) != 2 || s.ItemCount() != 12 {
		t.Fatalf("sections = %d, items = %d", len(s.Sections), s.ItemCount())
	}
	e := s.Engine()
	if err := e.Prepare(); err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	if _, ok := e.AttributesForSupplementary(waterfall.KindFooter, waterfall.Path(1, 0)); !ok {
		t.Error("section 1 footer missing")
	}
}

func mustID(t *testing.T, s *Scenario) string {
	t.Helper()
	id, err := s.ID()
	if err != nil {
		t.Fatalf("ID() error: %v", err)
	}
	return id
}
