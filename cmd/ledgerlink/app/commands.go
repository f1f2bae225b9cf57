package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/agentstation/ledgerlink/cmd/ledgerlink/cmd/conflicts"
	diffcmd "github.com/agentstation/ledgerlink/cmd/ledgerlink/cmd/diff"
	"github.com/agentstation/ledgerlink/cmd/ledgerlink/cmd/entity"
	profilescmd "github.com/agentstation/ledgerlink/cmd/ledgerlink/cmd/profiles"
	reportcmd "github.com/agentstation/ledgerlink/cmd/ledgerlink/cmd/report"
	trailscmd "github.com/agentstation/ledgerlink/cmd/ledgerlink/cmd/trails"
	"github.com/agentstation/ledgerlink/cmd/ledgerlink/cmd/validate"
)

// CreateProfilesCommand creates the profiles command with app dependencies.
func (a *App) CreateProfilesCommand() *cobra.Command {
	return profilescmd.NewCommand(a)
}

// CreateEntityCommand creates the entity command with app dependencies.
func (a *App) CreateEntityCommand() *cobra.Command {
	return entity.NewCommand(a)
}

// CreateTrailsCommand creates the trails command with app dependencies.
func (a *App) CreateTrailsCommand() *cobra.Command {
	return trailscmd.NewCommand(a)
}

// CreateReportCommand creates the report command with app dependencies.
func (a *App) CreateReportCommand() *cobra.Command {
	return reportcmd.NewCommand(a)
}

// CreateValidateCommand creates the validate command with app dependencies.
func (a *App) CreateValidateCommand() *cobra.Command {
	return validate.NewCommand(a)
}

// CreateConflictsCommand creates the conflicts command with app dependencies.
func (a *App) CreateConflictsCommand() *cobra.Command {
	return conflicts.NewCommand(a)
}

// CreateDiffCommand creates the diff command with app dependencies.
func (a *App) CreateDiffCommand() *cobra.Command {
	return diffcmd.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for ledgerlink CLI.`,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ledgerlink version %s\n", a.version)
			fmt.Fprintf(w, "commit: %s\n", a.commit)
			fmt.Fprintf(w, "built: %s\n", a.date)
			fmt.Fprintf(w, "built by: %s\n", a.builtBy)
			fmt.Fprintf(w, "go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// CreateManCommand creates the hidden man page generator.
func (a *App) CreateManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Long:   `Generate man page for ledgerlink CLI tool.`,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := &doc.GenManHeader{
				Title:   "LEDGERLINK",
				Section: "1",
				Source:  "ledgerlink " + a.version,
				Manual:  "ledgerlink Manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
