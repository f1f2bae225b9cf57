// Package conflicts implements the conflicts command, which reports identity
// values that lost to an earlier writer during a build.
package conflicts

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/ledgerlink/internal/appcontext"
	"github.com/agentstation/ledgerlink/internal/cmd/output"
	"github.com/agentstation/ledgerlink/internal/cmd/table"
	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/errors"
)

// NewCommand creates the conflicts command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var export string
	cmd := &cobra.Command{
		Use:     "conflicts",
		GroupID: "management",
		Short:   "List rejected identity values from the last build",
		Args:    cobra.NoArgs,
		Example: `  ledgerlink conflicts
  ledgerlink conflicts --export provenance.yaml   # Write the full field history`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := app.Ledgers()
			if err != nil {
				return err
			}
			cache, err := app.Cache()
			if err != nil {
				return err
			}
			result, err := cache.Profiles(cmd.Context(), set.Sites, set.Money, set.Places)
			if err != nil {
				return err
			}

			if export != "" {
				f, err := os.OpenFile(export, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
				if err != nil {
					return errors.WrapIO("create", export, err)
				}
				defer f.Close()
				if err := result.Provenance.Write(f); err != nil {
					return errors.WrapIO("write", export, err)
				}
				app.Logger().Info().Str("path", export).Msg("Wrote provenance")
			}

			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), result.Conflicts, func(bool) any {
				return table.ConflictsToTableData(result.Conflicts)
			})
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "write provenance and conflicts as YAML to this file")

	return cmd
}
