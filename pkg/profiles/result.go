package profiles

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/ledgerlink/pkg/errors"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
	"github.com/agentstation/ledgerlink/pkg/provenance"
)

// Result represents the outcome of a build.
type Result struct {
	// Profiles sorted by score desc, then entity name
	Profiles []EntityProfile

	// Provenance of identity fields, keyed "entityKey:field"; nil when tracking is off
	Provenance provenance.Map

	// Conflicts lists competing identity values that were turned away
	Conflicts []provenance.Conflict

	// Stats about the passes
	Stats Stats
}

// Stats counts what the passes saw.
type Stats struct {
	SupplierProfiles        int           `json:"supplierProfiles" yaml:"supplierProfiles"`
	SupplierProfilesSkipped int           `json:"supplierProfilesSkipped" yaml:"supplierProfilesSkipped"`
	MoneyRecords            int           `json:"moneyRecords" yaml:"moneyRecords"`
	MoneyRecordsSkipped     int           `json:"moneyRecordsSkipped" yaml:"moneyRecordsSkipped"`
	Sites                   int           `json:"sites" yaml:"sites"`
	EntityLinks             int           `json:"entityLinks" yaml:"entityLinks"`
	EntityLinksSkipped      int           `json:"entityLinksSkipped" yaml:"entityLinksSkipped"`
	BindingsDropped         int           `json:"bindingsDropped" yaml:"bindingsDropped"`
	Accumulators            int           `json:"accumulators" yaml:"accumulators"`
	Rekeyed                 int           `json:"rekeyed" yaml:"rekeyed"`
	Merged                  int           `json:"merged" yaml:"merged"`
	Conflicts               int           `json:"conflicts" yaml:"conflicts"`
	Duration                time.Duration `json:"durationNs" yaml:"durationNs"`
}

// Find returns the profile with entityID.
func (r *Result) Find(entityID string) (*EntityProfile, error) {
	return Find(r.Profiles, entityID)
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("Built %d entity profiles from %d supplier profiles, %d money records and %d sites (%d conflicts)",
		len(r.Profiles), r.Stats.SupplierProfiles, r.Stats.MoneyRecords, r.Stats.Sites, len(r.Conflicts))
}

// Find returns the profile with entityID from profiles.
func Find(profiles []EntityProfile, entityID string) (*EntityProfile, error) {
	for i := range profiles {
		if profiles[i].EntityID == entityID {
			return &profiles[i], nil
		}
	}
	return nil, errors.NewNotFoundError("entity", entityID)
}

// Build runs every pass over the ledgers and finalizes the profiles.
func Build(ctx context.Context, site *ledgers.SiteLedger, money *ledgers.MoneyLedger, place *ledgers.PlaceLedger, opts ...Option) (*Result, error) {
	b, err := NewBuilder(site, money, place, opts...)
	if err != nil {
		return nil, err
	}
	if err := b.Run(ctx); err != nil {
		return nil, err
	}
	return b.Finalize()
}

// BuildEntityProfiles is Build without provenance, returning only the ranked
// profiles.
func BuildEntityProfiles(site *ledgers.SiteLedger, money *ledgers.MoneyLedger, place *ledgers.PlaceLedger) ([]EntityProfile, error) {
	result, err := Build(context.Background(), site, money, place, WithProvenance(false))
	if err != nil {
		return nil, err
	}
	return result.Profiles, nil
}
