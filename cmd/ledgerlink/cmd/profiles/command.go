// Package profiles implements the profiles command.
package profiles

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/agentstation/ledgerlink"
	"github.com/agentstation/ledgerlink/internal/appcontext"
	"github.com/agentstation/ledgerlink/internal/cmd/globals"
	"github.com/agentstation/ledgerlink/internal/cmd/output"
	"github.com/agentstation/ledgerlink/internal/cmd/table"
	"github.com/agentstation/ledgerlink/pkg/profiles"
	"github.com/agentstation/ledgerlink/pkg/save"
)

// NewCommand creates the profiles command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var savePath string
	cmd := &cobra.Command{
		Use:     "profiles",
		GroupID: "core",
		Short:   "List entity profiles built from the ledgers",
		Aliases: []string{"entities"},
		Args:    cobra.NoArgs,
		Example: `  ledgerlink profiles                     # All profiles, highest score first
  ledgerlink profiles --limit 10          # Top ten
  ledgerlink profiles --role operator     # Operators only
  ledgerlink profiles --search mears -o json
  ledgerlink profiles --save build/profiles.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, globals.ParseResources(cmd), savePath)
		},
	}

	globals.AddResourceFlags(cmd)
	cmd.Flags().StringVar(&savePath, "save", "", "also write the full build snapshot to this file (.json or .yaml)")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, flags *globals.ResourceFlags, savePath string) error {
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
	app.Logger().Debug().Msg(result.Summary())

	if savePath != "" {
		fp, err := ledgerlink.Fingerprint(set.Sites, set.Money, set.Places)
		if err != nil {
			return err
		}
		if err := save.Write(save.NewSnapshot(fp, result), save.WithPath(savePath)); err != nil {
			return err
		}
		app.Logger().Info().Str("path", savePath).Str("fingerprint", fp).Msg("Saved build snapshot")
	}

	filtered := Filter(result.Profiles, flags)

	return output.Render(cmd.OutOrStdout(), app.OutputFormat(), filtered, func(wide bool) any {
		return table.ProfilesToTableData(filtered, wide)
	})
}

// Filter applies search, role and limit flags, preserving profile order.
func Filter(list []profiles.EntityProfile, flags *globals.ResourceFlags) []profiles.EntityProfile {
	out := make([]profiles.EntityProfile, 0, len(list))
	for i := range list {
		p := &list[i]
		if !flags.Matches(p.EntityID, p.EntityName, p.CompanyNumber) {
			continue
		}
		if flags.Role != "" && !slices.Contains(p.Roles, flags.Role) {
			continue
		}
		out = append(out, *p)
	}
	return out[:flags.Apply(len(out))]
}
