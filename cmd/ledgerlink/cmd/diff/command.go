// Package diff implements the diff command, which compares a saved build
// snapshot against a fresh build of the current ledgers.
package diff

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/ledgerlink"
	"github.com/agentstation/ledgerlink/internal/appcontext"
	"github.com/agentstation/ledgerlink/internal/cmd/output"
	"github.com/agentstation/ledgerlink/internal/cmd/table"
	"github.com/agentstation/ledgerlink/pkg/differ"
	"github.com/agentstation/ledgerlink/pkg/save"
)

// Report is the diff command's structured output.
type Report struct {
	SnapshotFingerprint string            `json:"snapshotFingerprint" yaml:"snapshotFingerprint"`
	CurrentFingerprint  string            `json:"currentFingerprint" yaml:"currentFingerprint"`
	SameInputs          bool              `json:"sameInputs" yaml:"sameInputs"`
	Changes             *differ.Changeset `json:"changes" yaml:"changes"`
}

// NewCommand creates the diff command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		ignore  []string
		summary bool
	)
	cmd := &cobra.Command{
		Use:     "diff <snapshot>",
		GroupID: "management",
		Short:   "Compare a saved build snapshot with the current ledgers",
		Args:    cobra.ExactArgs(1),
		Example: `  ledgerlink profiles --save last.json
  ledgerlink diff last.json
  ledgerlink diff last.json --ignore score --summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := save.Read(args[0])
			if err != nil {
				return err
			}
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
			fp, err := ledgerlink.Fingerprint(set.Sites, set.Money, set.Places)
			if err != nil {
				return err
			}

			report := Report{
				SnapshotFingerprint: snap.Fingerprint,
				CurrentFingerprint:  fp,
				SameInputs:          snap.Fingerprint == fp,
				Changes:             differ.New(differ.WithIgnoredFields(ignore...)).Profiles(snap.Profiles, result.Profiles),
			}
			app.Logger().Info().
				Bool("same_inputs", report.SameInputs).
				Int("changes", report.Changes.Summary.TotalChanges).
				Msg(report.Changes.String())

			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), report, func(wide bool) any {
				if summary {
					return table.ChangesetSummaryToTableData(report.Changes)
				}
				return table.ChangesetToTableData(report.Changes, wide)
			})
		},
	}

	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "field paths to leave out of the comparison")
	cmd.Flags().BoolVar(&summary, "summary", false, "show only change counts in table output")

	return cmd
}
