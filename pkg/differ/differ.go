package differ

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/ledgerlink/pkg/profiles"
)

// Differ compares two profile builds.
type Differ interface {
	Profiles(existing, updated []profiles.EntityProfile) *Changeset
}

type differ struct {
	ignoreFields map[string]bool
	membership   bool
}

// New creates a Differ. Membership comparison is on by default.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreFields: make(map[string]bool),
		membership:   true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Profiles compares two profile lists keyed by entity id. Added, updated and
// removed entries are sorted by entity id.
func (diff *differ) Profiles(existing, updated []profiles.EntityProfile) *Changeset {
	changeset := &Changeset{
		Added:   []profiles.EntityProfile{},
		Updated: []ProfileUpdate{},
		Removed: []profiles.EntityProfile{},
	}

	existingMap := make(map[string]profiles.EntityProfile, len(existing))
	for _, p := range existing {
		existingMap[p.EntityID] = p
	}
	updatedMap := make(map[string]profiles.EntityProfile, len(updated))
	for _, p := range updated {
		updatedMap[p.EntityID] = p
	}

	for id, next := range updatedMap {
		prev, ok := existingMap[id]
		if !ok {
			changeset.Added = append(changeset.Added, next)
			continue
		}
		if update := diff.profile(prev, next); update != nil {
			changeset.Updated = append(changeset.Updated, *update)
		}
	}
	for id, prev := range existingMap {
		if _, ok := updatedMap[id]; !ok {
			changeset.Removed = append(changeset.Removed, prev)
		}
	}

	sortChangeset(changeset)
	changeset.Summary = calculateSummary(changeset)
	return changeset
}

// profile compares two profiles and returns an update if they differ.
func (diff *differ) profile(existing, updated profiles.EntityProfile) *ProfileUpdate {
	var changes []FieldChange

	diff.field(&changes, "entityName", existing.EntityName, updated.EntityName)
	diff.field(&changes, "companyNumber", existing.CompanyNumber, updated.CompanyNumber)
	diff.field(&changes, "primaryRole", existing.PrimaryRole, updated.PrimaryRole)
	diff.field(&changes, "roles", strings.Join(existing.Roles, ","), strings.Join(updated.Roles, ","))
	diff.field(&changes, "riskLevel", existing.RiskLevel, updated.RiskLevel)
	diff.field(&changes, "routeFamilies", strings.Join(existing.RouteFamilies, ","), strings.Join(updated.RouteFamilies, ","))
	diff.count(&changes, "currentSiteCount", existing.CurrentSiteCount, updated.CurrentSiteCount)
	diff.count(&changes, "historicalSiteCount", existing.HistoricalSiteCount, updated.HistoricalSiteCount)
	diff.count(&changes, "unresolvedCurrentSiteCount", existing.UnresolvedCurrentSiteCount, updated.UnresolvedCurrentSiteCount)
	diff.count(&changes, "moneyRecordCount", existing.MoneyRecordCount, updated.MoneyRecordCount)
	diff.count(&changes, "integritySignalCount", existing.IntegritySignalCount, updated.IntegritySignalCount)
	diff.count(&changes, "linkedAreaCount", existing.LinkedAreaCount, updated.LinkedAreaCount)
	diff.field(&changes, "publicContractValueGbp", formatValue(existing.PublicContractValueGBP), formatValue(updated.PublicContractValueGBP))
	diff.count(&changes, "score", existing.Score, updated.Score)

	if diff.membership {
		diff.members(&changes, "currentSites", siteIDs(existing.CurrentSites), siteIDs(updated.CurrentSites))
		diff.members(&changes, "historicalSites", siteIDs(existing.HistoricalSites), siteIDs(updated.HistoricalSites))
		diff.members(&changes, "moneyRecords", recordIDs(existing), recordIDs(updated))
		diff.members(&changes, "linkedAreas", areaKeys(existing.LinkedAreas), areaKeys(updated.LinkedAreas))
	}

	if len(changes) == 0 {
		return nil
	}
	return &ProfileUpdate{
		EntityID:   updated.EntityID,
		EntityName: updated.EntityName,
		Changes:    changes,
	}
}

func (diff *differ) field(changes *[]FieldChange, path, oldValue, newValue string) {
	if oldValue == newValue || diff.ignoreFields[path] {
		return
	}
	*changes = append(*changes, FieldChange{
		Path:     path,
		OldValue: oldValue,
		NewValue: newValue,
		Type:     ChangeTypeUpdate,
	})
}

func (diff *differ) count(changes *[]FieldChange, path string, oldValue, newValue int) {
	diff.field(changes, path, strconv.Itoa(oldValue), strconv.Itoa(newValue))
}

// members records one add or remove change per element that appears on only
// one side. Both inputs must be sorted.
func (diff *differ) members(changes *[]FieldChange, path string, existing, updated []string) {
	if diff.ignoreFields[path] {
		return
	}
	for _, id := range updated {
		if _, found := slices.BinarySearch(existing, id); !found {
			*changes = append(*changes, FieldChange{Path: path, NewValue: id, Type: ChangeTypeAdd})
		}
	}
	for _, id := range existing {
		if _, found := slices.BinarySearch(updated, id); !found {
			*changes = append(*changes, FieldChange{Path: path, OldValue: id, Type: ChangeTypeRemove})
		}
	}
}

// sortChangeset sorts all slices in the changeset.
func sortChangeset(changeset *Changeset) {
	byID := func(a, b profiles.EntityProfile) int { return strings.Compare(a.EntityID, b.EntityID) }
	slices.SortFunc(changeset.Added, byID)
	slices.SortFunc(changeset.Removed, byID)
	slices.SortFunc(changeset.Updated, func(a, b ProfileUpdate) int {
		return strings.Compare(a.EntityID, b.EntityID)
	})
}

// Helper functions

func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.0f", *v)
}

func siteIDs(bindings []profiles.SiteBinding) []string {
	out := make([]string, 0, len(bindings))
	for i := range bindings {
		out = append(out, bindings[i].SiteID)
	}
	slices.Sort(out)
	return out
}

func recordIDs(p profiles.EntityProfile) []string {
	out := make([]string, 0, len(p.MoneyRecords))
	for i := range p.MoneyRecords {
		out = append(out, p.MoneyRecords[i].RecordID)
	}
	slices.Sort(out)
	return out
}

func areaKeys(areas []profiles.LinkedArea) []string {
	out := make([]string, 0, len(areas))
	for i := range areas {
		out = append(out, areas[i].AreaKey)
	}
	slices.Sort(out)
	return out
}
