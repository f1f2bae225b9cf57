package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentstation/ledgerlink/internal/cmd/output"
)

// Execute runs the ledgerlink CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	if a.out != nil {
		rootCmd.SetOut(a.out)
	}
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledgerlink",
		Short:   "Asylum accommodation ledger reconciliation CLI",
		Version: a.version,
		Long: `Ledgerlink reconciles a site ledger, a money ledger and a place ledger
into one profile per organisation: every accommodation site, contract and
local area that can be attributed to an owner, operator or prime provider.

It also pairs each current site with its best matching money evidence and
local pressure statistics.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.ledgerlink.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: table, json, yaml, wide")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Ledger locations
	rootCmd.PersistentFlags().StringVarP(&a.config.DataDir, "data-dir", "d", a.config.DataDir, "directory holding sites.json, money.json and places.json")
	rootCmd.PersistentFlags().StringVar(&a.config.SiteLedger, "site-ledger", a.config.SiteLedger, "site ledger file (overrides --data-dir)")
	rootCmd.PersistentFlags().StringVar(&a.config.MoneyLedger, "money-ledger", a.config.MoneyLedger, "money ledger file (overrides --data-dir)")
	rootCmd.PersistentFlags().StringVar(&a.config.PlaceLedger, "place-ledger", a.config.PlaceLedger, "place ledger file (overrides --data-dir)")

	rootCmd.SetVersionTemplate("ledgerlink {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if path := mustGetString(cmd, "config"); path != "" {
		if err := a.applyConfigFile(cmd, path); err != nil {
			return err
		}
	}

	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	a.logger.Debug().
		Str("command", cmd.CommandPath()).
		Interface("flags", changedFlags(cmd)).
		Msg("Running command")

	return nil
}

// changedFlags collects the flags the user set explicitly, local and
// inherited.
func changedFlags(cmd *cobra.Command) map[string]string {
	changed := make(map[string]string)
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if flag.Changed {
			changed[flag.Name] = flag.Value.String()
		}
	})
	return changed
}

// applyConfigFile merges an explicit config file under any flags the user set.
func (a *App) applyConfigFile(cmd *cobra.Command, path string) error {
	file, err := LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	changed := cmd.Flags().Changed
	if !changed("data-dir") {
		a.config.DataDir = file.DataDir
	}
	if !changed("site-ledger") {
		a.config.SiteLedger = file.SiteLedger
	}
	if !changed("money-ledger") {
		a.config.MoneyLedger = file.MoneyLedger
	}
	if !changed("place-ledger") {
		a.config.PlaceLedger = file.PlaceLedger
	}
	if !changed("format") && file.Format != "" {
		a.config.Format = file.Format
	}
	a.config.TopPlaces = file.TopPlaces
	a.config.CacheTTL = file.CacheTTL
	a.config.ConfigFile = path
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.CreateProfilesCommand())
	rootCmd.AddCommand(a.CreateEntityCommand())
	rootCmd.AddCommand(a.CreateTrailsCommand())
	rootCmd.AddCommand(a.CreateReportCommand())

	// Management commands
	rootCmd.AddCommand(a.CreateValidateCommand())
	rootCmd.AddCommand(a.CreateConflictsCommand())
	rootCmd.AddCommand(a.CreateDiffCommand())

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
	rootCmd.AddCommand(a.CreateManCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
