package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

// Format is a scenario file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath picks the format from a file extension. Unknown extensions
// are JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Parse decodes and validates a scenario. Config values missing from data
// keep the engine defaults.
func Parse(data []byte, format Format) (*Scenario, error) {
	return ParseWithConfig(data, format, waterfall.DefaultConfig())
}

// ParseWithConfig is [Parse] with base supplying the config values missing
// from data.
func ParseWithConfig(data []byte, format Format, base waterfall.Config) (*Scenario, error) {
	s := New("", 0)
	s.Config = base
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode toml")
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scenario format %q", format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Read decodes a scenario from r. Read does not close r.
func Read(r io.Reader, format Format) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data, format)
}

// Import reads the scenario file at path, choosing the format by extension.
// A missing file yields an error coded ErrCodeFileNotFound.
func Import(path string) (*Scenario, error) {
	return ImportWithConfig(path, waterfall.DefaultConfig())
}

// ImportWithConfig is [Import] with base supplying missing config values.
func ImportWithConfig(path string, base waterfall.Config) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scenario %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s, err := ParseWithConfig(data, FormatForPath(path), base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Write encodes s to w in format.
func (s *Scenario) Write(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(s)
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported scenario format %q", format)
	}
}

// Marshal returns the compact JSON encoding used for storage.
func (s *Scenario) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Export writes s to path, choosing the format by extension.
func (s *Scenario) Export(path string) error {
	var buf bytes.Buffer
	if err := s.Write(&buf, FormatForPath(path)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
