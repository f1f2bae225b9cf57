// Package entity implements the entity command, which shows one profile with
// its analytics views.
package entity

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/ledgerlink/internal/appcontext"
	"github.com/agentstation/ledgerlink/internal/cmd/output"
	"github.com/agentstation/ledgerlink/internal/cmd/table"
	"github.com/agentstation/ledgerlink/pkg/analytics"
	"github.com/agentstation/ledgerlink/pkg/logging"
	"github.com/agentstation/ledgerlink/pkg/profiles"
	"github.com/agentstation/ledgerlink/pkg/provenance"
)

// View is the structured output of the entity command.
type View struct {
	Profile    *profiles.EntityProfile            `json:"profile" yaml:"profile"`
	Analytics  analytics.Report                   `json:"analytics" yaml:"analytics"`
	Provenance map[string][]provenance.Provenance `json:"provenance,omitempty" yaml:"provenance,omitempty"`
}

type flags struct {
	top        int
	provenance bool
	fields     []string
}

// NewCommand creates the entity command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:     "entity <entity-id>",
		GroupID: "core",
		Short:   "Show one entity profile with exposure, spread, places and timeline",
		Args:    cobra.ExactArgs(1),
		Example: `  ledgerlink entity sup_1                      # Profile and analytics
  ledgerlink entity company-03929881 --top 3   # Rank three linked places
  ledgerlink entity sup_1 --provenance         # Include identity field history
  ledgerlink entity sup_1 --provenance --fields 'company*'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args[0], f)
		},
	}

	cmd.Flags().IntVar(&f.top, "top", 0, "number of linked places to rank (default from config)")
	cmd.Flags().BoolVar(&f.provenance, "provenance", false, "include the history of identity fields")
	cmd.Flags().StringSliceVar(&f.fields, "fields", nil, "limit provenance to matching fields (glob)")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, entityID string, f *flags) error {
	view, err := NewView(cmd.Context(), app, entityID, Options{Top: f.top, Provenance: f.provenance, Fields: f.fields})
	if err != nil {
		return err
	}

	return output.Render(cmd.OutOrStdout(), app.OutputFormat(), view, func(bool) any {
		return Sections(view)
	})
}

// Options selects what NewView includes.
type Options struct {
	// Top is the number of linked places to rank; zero uses the app default.
	Top        int
	Provenance bool
	// Fields limits provenance to fields matching any glob.
	Fields []string
}

// NewView builds the profile for entityID and analyses it.
func NewView(ctx context.Context, app appcontext.Interface, entityID string, opts Options) (View, error) {
	set, err := app.Ledgers()
	if err != nil {
		return View{}, err
	}
	cache, err := app.Cache()
	if err != nil {
		return View{}, err
	}

	result, err := cache.Profiles(ctx, set.Sites, set.Money, set.Places)
	if err != nil {
		return View{}, err
	}
	profile, err := result.Find(entityID)
	if err != nil {
		return View{}, err
	}

	top := opts.Top
	if top <= 0 {
		top = app.TopPlaces()
	}

	view := View{
		Profile:   profile,
		Analytics: analytics.Analyze(profile, set.Places, top),
	}
	if opts.Provenance {
		view.Provenance = table.FilterFields(result.Provenance.ForEntity(entityID), opts.Fields)
	}

	logger := logging.FromContext(logging.WithEntity(logging.WithLogger(ctx, app.Logger()), entityID))
	logger.Debug().
		Int("top", top).
		Int("regions", len(view.Analytics.RegionalSpread)).
		Int("events", len(view.Analytics.Timeline.Events)).
		Msg("Analysed entity")
	return view, nil
}

// Sections lays the view out as titled tables.
func Sections(v View) output.Sections {
	sections := output.Sections{
		{Title: "Profile", Data: table.ProfileToTableData(v.Profile)},
	}
	if v.Analytics.Exposure.CurrentSites > 0 {
		sections = append(sections, output.Section{Title: "Current site coverage", Data: table.ExposureToTableData(v.Analytics.Exposure)})
	}
	sections = append(sections,
		output.Section{Title: "Regional spread", Data: table.RegionsToTableData(v.Analytics.RegionalSpread)},
		output.Section{Title: "Top linked places", Data: table.AreasToTableData(v.Analytics.TopPlaces)},
		output.Section{Title: "Sites", Data: table.SitesToTableData(v.Profile.Sites())},
		output.Section{Title: "Evidence timeline", Data: table.TimelineToTableData(v.Analytics.Timeline)},
	)
	if v.Analytics.Coverage != nil {
		sections = append(sections, output.Section{Title: "Contract coverage", Data: table.CoverageToTableData(v.Analytics.Coverage)})
	}
	if len(v.Provenance) > 0 {
		sections = append(sections, output.Section{Title: "Provenance", Data: table.ProvenanceToTableData(v.Provenance)})
	}
	return sections
}
