// Package report implements the report command, which writes an entity
// dossier as Markdown.
package report

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/ledgerlink/cmd/ledgerlink/cmd/entity"
	"github.com/agentstation/ledgerlink/internal/appcontext"
	"github.com/agentstation/ledgerlink/internal/cmd/report"
	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/errors"
)

// NewCommand creates the report command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		out string
		top int
	)
	cmd := &cobra.Command{
		Use:     "report <entity-id>",
		GroupID: "core",
		Short:   "Write a Markdown dossier for one entity",
		Args:    cobra.ExactArgs(1),
		Example: `  ledgerlink report supplier_mears
  ledgerlink report company-03929881 --out reports/example-group.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := entity.NewView(cmd.Context(), app, args[0], entity.Options{Top: top})
			if err != nil {
				return err
			}

			d := report.FromProfile(view.Profile, entity.Sections(view))
			d.Footer = fmt.Sprintf("Generated by ledgerlink %s", app.Version())

			if out == "" {
				return report.Write(cmd.OutOrStdout(), d)
			}

			f, err := os.OpenFile(out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
			if err != nil {
				return errors.WrapIO("create", out, err)
			}
			defer f.Close()
			if err := report.Write(f, d); err != nil {
				return errors.WrapIO("write", out, err)
			}
			app.Logger().Info().Str("path", out).Str("entity", view.Profile.EntityID).Msg("Wrote report")
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write the report to this file instead of stdout")
	cmd.Flags().IntVar(&top, "top", 0, "number of linked places to rank (default from config)")

	return cmd
}
