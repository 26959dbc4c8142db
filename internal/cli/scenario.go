package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/scenario"
	"github.com/matzehuels/masonry/pkg/store"
)

// scenarioCommand creates the scenario management command.
func (c *CLI) scenarioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scenario",
		Aliases: []string{"scenarios"},
		Short:   "Manage stored scenarios",
	}

	cmd.AddCommand(c.scenarioPutCommand())
	cmd.AddCommand(c.scenarioGetCommand())
	cmd.AddCommand(c.scenarioListCommand())
	cmd.AddCommand(c.scenarioDeleteCommand())
	cmd.AddCommand(c.scenarioDemoCommand())
	cmd.AddCommand(c.scenarioPathCommand())

	return cmd
}

// withScenarios runs fn against the configured store.
func (c *CLI) withScenarios(ctx context.Context, fn func(*store.Scenarios) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	scenarios, s, err := c.openScenarios(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(scenarios)
}

// scenarioPutCommand creates the "scenario put" subcommand.
func (c *CLI) scenarioPutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "put [file]",
		Short: "Store a scenario file and print its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			sc, err := scenario.ImportWithConfig(args[0], cfg.Layout)
			if err != nil {
				return err
			}
			return c.withScenarios(ctx, func(r *store.Scenarios) error {
				id, err := r.Put(ctx, sc)
				if err != nil {
					return fmt.Errorf("store %s: %w", args[0], err)
				}
				printSuccess("Stored %s", StyleHighlight.Render(sc.Name))
				printKeyValue("id", id)
				printNewline()
				printNextStep("Lay out", appName+" layout "+id)
				return nil
			})
		},
	}
}

// scenarioGetCommand creates the "scenario get" subcommand.
func (c *CLI) scenarioGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:               "get [id]",
		Short:             "Print or export a stored scenario",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeScenarios,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withScenarios(ctx, func(r *store.Scenarios) error {
				sc, err := r.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return writeScenario(sc, output)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .toml or .json (default: stdout as JSON)")

	return cmd
}

// scenarioListCommand creates the "scenario list" subcommand.
func (c *CLI) scenarioListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored scenario IDs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withScenarios(ctx, func(r *store.Scenarios) error {
				ids, err := r.List(ctx)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					printInfo("No stored scenarios")
					return nil
				}
				for _, id := range ids {
					fmt.Println(id)
				}
				return nil
			})
		},
	}
}

// scenarioDeleteCommand creates the "scenario delete" subcommand.
func (c *CLI) scenarioDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete [id]",
		Aliases:           []string{"rm"},
		Short:             "Delete a stored scenario",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeScenarios,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withScenarios(ctx, func(r *store.Scenarios) error {
				if err := r.Delete(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Deleted %s", args[0])
				return nil
			})
		},
	}
}

// scenarioDemoCommand creates the "scenario demo" subcommand.
func (c *CLI) scenarioDemoCommand() *cobra.Command {
	var (
		output string
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write the generated demo feed as a scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeScenario(scenario.Demo(seed), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .toml or .json (default: stdout as JSON)")
	cmd.Flags().Uint64Var(&seed, "seed", defaultSeed, "demo feed seed")

	return cmd
}

// scenarioPathCommand creates the "scenario path" subcommand.
func (c *CLI) scenarioPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file store directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Store.Backend != store.BackendFile {
				printWarning("store backend is %s, not %s", cfg.Store.Backend, store.BackendFile)
			}
			fmt.Println(cfg.Store.Dir)
			return nil
		},
	}
}

// writeScenario exports sc to path, or prints it as JSON when path is empty.
func writeScenario(sc *scenario.Scenario, path string) error {
	if path == "" {
		return sc.Write(os.Stdout, scenario.FormatJSON)
	}
	if err := sc.Export(path); err != nil {
		return err
	}
	printSuccess("Wrote %s", sc.Name)
	printFile(path)
	return nil
}
