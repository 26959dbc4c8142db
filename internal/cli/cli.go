// Package cli implements the masonry command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/internal/config"
	"github.com/matzehuels/masonry/pkg/buildinfo"
	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/observability"
	"github.com/matzehuels/masonry/pkg/scenario"
	"github.com/matzehuels/masonry/pkg/store"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "masonry"

	// defaultSeed is the demo feed seed when --seed is not given.
	defaultSeed = 42
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Masonry computes waterfall layouts",
		Long:         `Masonry lays out sectioned collections of variable-height cells in a waterfall: every cell drops into the shortest column of its section, and sections stack vertically with optional headers and footers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.Logger.GetLevel() <= log.DebugLevel {
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetLayoutHooks(hooks)
				observability.SetStoreHooks(hooks)
				observability.SetHTTPHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/masonry/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.scenarioCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Store
// =============================================================================

// loadConfig reads the file named by --config, or the default location.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	c.Logger.Debug("config loaded", "backend", cfg.Store.Backend, "addr", cfg.Server.Addr)
	return cfg, nil
}

// openScenarios opens the configured store. Callers close the returned store.
func (c *CLI) openScenarios(ctx context.Context, cfg config.Config) (*store.Scenarios, store.Store, error) {
	s, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	return store.NewScenarios(s, cfg.Store.TTL), s, nil
}

// =============================================================================
// Scenario Input
// =============================================================================

// input selects the scenario a command works on: a file, a stored ID, or
// the demo feed.
type input struct {
	demo  bool
	seed  uint64
	width float64
}

func (in *input) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&in.demo, "demo", false, "use the generated demo feed")
	cmd.Flags().Uint64Var(&in.seed, "seed", defaultSeed, "demo feed seed")
	cmd.Flags().Float64Var(&in.width, "width", 0, "override the scenario bounds width")
}

// args returns the positional argument rule for a command taking an input.
func (in *input) args(cmd *cobra.Command, args []string) error {
	if in.demo {
		return cobra.NoArgs(cmd, args)
	}
	return cobra.ExactArgs(1)(cmd, args)
}

// load resolves the scenario. A positional argument naming an existing file
// is imported; anything else is looked up as a stored scenario ID.
func (c *CLI) load(ctx context.Context, in input, args []string, cfg config.Config) (*scenario.Scenario, error) {
	var (
		sc  *scenario.Scenario
		err error
	)
	switch {
	case in.demo:
		sc = scenario.Demo(in.seed)
	case fileExists(args[0]):
		sc, err = scenario.ImportWithConfig(args[0], cfg.Layout)
	default:
		sc, err = c.fetch(ctx, args[0], cfg)
	}
	if err != nil {
		return nil, err
	}
	if in.width < 0 || math.IsNaN(in.width) || math.IsInf(in.width, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "width must be a finite non-negative number, got %g", in.width)
	}
	if in.width > 0 {
		sc.Width = in.width
	}
	return sc, nil
}

func (c *CLI) fetch(ctx context.Context, id string, cfg config.Config) (*scenario.Scenario, error) {
	if err := errors.ValidateScenarioID(id); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s is neither a file nor a scenario id", id)
	}
	scenarios, s, err := c.openScenarios(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return scenarios.Get(ctx, id)
}

// prepare builds an engine for sc and runs the first layout pass.
func (c *CLI) prepare(ctx context.Context, sc *scenario.Scenario) (*waterfall.Engine, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	e := sc.Engine(waterfall.WithLogger(logger))
	if err := e.Prepare(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", sc.Name, err)
	}
	if logger.GetLevel() <= log.DebugLevel {
		prog.done(fmt.Sprintf("Laid out %d items in %d sections", sc.ItemCount(), len(sc.Sections)))
	}
	return e, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
