// Package trails implements the trails command.
package trails

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/ledgerlink/internal/appcontext"
	"github.com/agentstation/ledgerlink/internal/cmd/globals"
	"github.com/agentstation/ledgerlink/internal/cmd/output"
	"github.com/agentstation/ledgerlink/internal/cmd/table"
	"github.com/agentstation/ledgerlink/pkg/profiles"
	"github.com/agentstation/ledgerlink/pkg/trails"
)

// Row is one trail with the entity profile it most likely belongs to.
type Row struct {
	trails.Trail   `yaml:",inline"`
	BestEntityID   string `json:"bestEntityId,omitempty" yaml:"bestEntityId,omitempty"`
	BestEntityName string `json:"bestEntityName,omitempty" yaml:"bestEntityName,omitempty"`
}

// NewCommand creates the trails command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var match string
	cmd := &cobra.Command{
		Use:     "trails",
		GroupID: "core",
		Short:   "Pair current sites with money evidence and local pressure",
		Args:    cobra.NoArgs,
		Example: `  ledgerlink trails                    # All trails, strongest first
  ledgerlink trails --limit 20 -o wide # Include provider, pressure and entity
  ledgerlink trails --match direct     # Only sites named by a money record`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := globals.ParseResources(cmd)
			var filter *trails.MatchType
			if match != "" {
				mt, err := trails.ParseMatchType(match)
				if err != nil {
					return err
				}
				filter = &mt
			}
			return run(cmd, app, flags, filter)
		},
	}

	globals.AddResourceFlags(cmd)
	cmd.Flags().StringVar(&match, "match", "", "only trails with this match type: direct, provider, none")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, flags *globals.ResourceFlags, match *trails.MatchType) error {
	set, err := app.Ledgers()
	if err != nil {
		return err
	}
	cache, err := app.Cache()
	if err != nil {
		return err
	}

	built, err := cache.Trails(cmd.Context(), set.Sites, set.Money, set.Places)
	if err != nil {
		return err
	}
	result, err := cache.Profiles(cmd.Context(), set.Sites, set.Money, set.Places)
	if err != nil {
		return err
	}

	rows := Rows(built, result.Profiles, flags, match)

	return output.Render(cmd.OutOrStdout(), app.OutputFormat(), rows, func(wide bool) any {
		list := make([]trails.Trail, len(rows))
		names := make([]string, len(rows))
		for i := range rows {
			list[i] = rows[i].Trail
			names[i] = rows[i].BestEntityName
		}
		return table.TrailsToTableData(list, names, wide)
	})
}

// Rows filters trails and attaches the best matching entity to each.
func Rows(list []trails.Trail, candidates []profiles.EntityProfile, flags *globals.ResourceFlags, match *trails.MatchType) []Row {
	rows := make([]Row, 0, len(list))
	for i := range list {
		t := &list[i]
		if match != nil && t.MatchType != *match {
			continue
		}
		if !flags.Matches(t.Title, t.SiteID, t.AreaName, t.PrimeProvider) {
			continue
		}
		row := Row{Trail: *t}
		if best, ok := trails.BestEntity(t, candidates); ok {
			row.BestEntityID = best.EntityID
			row.BestEntityName = best.EntityName
		}
		rows = append(rows, row)
	}
	return rows[:flags.Apply(len(rows))]
}
