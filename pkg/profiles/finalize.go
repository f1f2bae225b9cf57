package profiles

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agentstation/ledgerlink/pkg/authority"
	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/errors"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
)

// Finalize converts every accumulator into an EntityProfile and ranks the
// collection by score desc, then entity name, then entity id. The Builder
// cannot be used again afterwards.
func (b *Builder) Finalize() (*Result, error) {
	switch b.state {
	case stateNew:
		return nil, &errors.ValidationError{Field: "builder", Message: "passes have not run"}
	case stateFinalized:
		return nil, &errors.ValidationError{Field: "builder", Message: "already finalized"}
	}
	b.state = stateFinalized

	profiles := make([]EntityProfile, 0, len(b.order))
	taken := make(map[string]bool, len(b.order))
	for _, key := range b.order {
		acc := b.accs[key]
		p := acc.finalize(b.places)
		if id := uniqueID(p.EntityID, taken); id != p.EntityID {
			b.logger.Warn().
				Str("entity_key", key).
				Str("entity_id", p.EntityID).
				Str("assigned", id).
				Msg("Entity id already taken")
			b.track(acc, "entityId", id, true, origin{pass: PassFinalize}, "id "+p.EntityID+" already taken")
			p.EntityID = id
		}
		taken[p.EntityID] = true
		profiles = append(profiles, p)
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		a, c := &profiles[i], &profiles[j]
		if a.Score != c.Score {
			return a.Score > c.Score
		}
		if a.EntityName != c.EntityName {
			return a.EntityName < c.EntityName
		}
		return a.EntityID < c.EntityID
	})

	b.stats.Accumulators = len(b.accs)
	b.stats.Duration = time.Since(b.started)

	result := &Result{
		Profiles: profiles,
		Stats:    b.stats,
	}
	if m := b.tracker.Map(); m != nil {
		result.Provenance = m
		result.Conflicts = m.Conflicts()
	}

	b.logger.Info().
		Int("profiles", len(profiles)).
		Int("conflicts", len(result.Conflicts)).
		Int("records_skipped", b.stats.MoneyRecordsSkipped).
		Int("bindings_dropped", b.stats.BindingsDropped).
		Dur("duration", b.stats.Duration).
		Msg("Built entity profiles")

	return result, nil
}

// uniqueID suffixes id with -2, -3... until it is not in taken.
func uniqueID(id string, taken map[string]bool) string {
	if !taken[id] {
		return id
	}
	for n := 2; ; n++ {
		if next := fmt.Sprintf("%s-%d", id, n); !taken[next] {
			return next
		}
	}
}

func (a *accumulator) finalize(places *ledgers.PlaceIndex) EntityProfile {
	roles := authority.SortRoles(a.roles.values())
	routeFamilies := a.routeFamilies.values()
	sort.Strings(routeFamilies)
	notes := a.notes.values()
	sort.Strings(notes)

	name := a.entityName
	if name == "" {
		name = a.companyNumber
	}

	p := EntityProfile{
		EntityID:      a.entityID(),
		EntityName:    name,
		CompanyNumber: a.companyNumber,
		PrimaryRole:   authority.PrimaryRole(roles),
		Roles:         roles,
		RoleLabels:    authority.RoleLabels(roles),
		RiskLevel:     a.riskLevel,
		RouteFamilies: routeFamilies,
		CurrentSites:  []SiteBinding{},
		MoneyRecords:  make([]ledgers.MoneyRecord, 0, len(a.records)),
		SourceLinks:   append([]SourceLink{}, a.links...),
		Notes:         notes,
	}
	p.HistoricalSites = []SiteBinding{}

	for _, id := range a.bindingOrder {
		sb := a.bindings[id].finalize()
		if sb.IsCurrent() {
			p.CurrentSites = append(p.CurrentSites, sb)
			if sb.EntityCoverage == ledgers.CoverageUnresolved {
				p.UnresolvedCurrentSiteCount++
			}
		} else {
			p.HistoricalSites = append(p.HistoricalSites, sb)
		}
	}
	sortBindings(p.CurrentSites)
	sortBindings(p.HistoricalSites)

	for _, r := range a.records {
		p.MoneyRecords = append(p.MoneyRecords, *r)
		if r.ValueGBP != nil {
			sum := *r.ValueGBP
			if p.PublicContractValueGBP != nil {
				sum += *p.PublicContractValueGBP
			}
			p.PublicContractValueGBP = &sum
		}
	}

	p.LinkedAreas = linkedAreas(p.CurrentSites, places)

	p.CurrentSiteCount = len(p.CurrentSites)
	p.HistoricalSiteCount = len(p.HistoricalSites)
	p.MoneyRecordCount = len(p.MoneyRecords)
	p.IntegritySignalCount = a.signals.len()
	p.LinkedAreaCount = len(p.LinkedAreas)
	p.Score = p.CurrentSiteCount*constants.ScorePerCurrentSite +
		p.MoneyRecordCount*constants.ScorePerMoneyRecord +
		p.IntegritySignalCount*constants.ScorePerIntegritySignal +
		p.LinkedAreaCount*constants.ScorePerLinkedArea +
		p.UnresolvedCurrentSiteCount*constants.ScorePerUnresolvedCurrentSite
	p.Description = describe(&p)
	return p
}

func (b *binding) finalize() SiteBinding {
	roles := authority.SortRoles(b.roles.values())
	s := b.site
	signals := newStringSet()
	for i := range s.IntegritySignals {
		signals.add(signalKey(s.SiteID, i, &s.IntegritySignals[i]))
	}
	return SiteBinding{
		SiteID:               s.SiteID,
		SiteName:             s.SiteName,
		AreaName:             s.AreaName,
		AreaCode:             s.AreaCode,
		RegionName:           s.RegionName,
		CountryName:          s.CountryName,
		Status:               s.Status,
		EntityCoverage:       s.EntityCoverage,
		FirstPublicDate:      s.FirstPublicDate,
		LastPublicDate:       s.LastPublicDate,
		Roles:                roles,
		RoleLabels:           authority.RoleLabels(roles),
		IntegritySignalCount: signals.len(),
	}
}

// sortBindings orders current sites first, then by signal count desc,
// site name and site id.
func sortBindings(bindings []SiteBinding) {
	sort.SliceStable(bindings, func(i, j int) bool {
		a, b := &bindings[i], &bindings[j]
		if a.IsCurrent() != b.IsCurrent() {
			return a.IsCurrent()
		}
		if a.IntegritySignalCount != b.IntegritySignalCount {
			return a.IntegritySignalCount > b.IntegritySignalCount
		}
		if a.SiteName != b.SiteName {
			return a.SiteName < b.SiteName
		}
		return a.SiteID < b.SiteID
	})
}

// linkedAreas groups current sites by area code, else area name, and joins
// place statistics onto each group.
func linkedAreas(current []SiteBinding, places *ledgers.PlaceIndex) []LinkedArea {
	byKey := make(map[string]int)
	areas := []LinkedArea{}
	for _, sb := range current {
		key := sb.AreaCode
		if key == "" {
			key = sb.AreaName
		}
		if key == "" {
			continue
		}
		i, ok := byKey[key]
		if !ok {
			i = len(areas)
			byKey[key] = i
			areas = append(areas, newLinkedArea(key, &sb, places))
		}
		areas[i].CurrentSiteCount++
		areas[i].SiteIDs = append(areas[i].SiteIDs, sb.SiteID)
	}
	slices.SortStableFunc(areas, func(a, b LinkedArea) int {
		if c := CompareAreas(&a, &b); c != 0 {
			return c
		}
		return strings.Compare(a.AreaKey, b.AreaKey)
	})
	return areas
}

func newLinkedArea(key string, sb *SiteBinding, places *ledgers.PlaceIndex) LinkedArea {
	area := LinkedArea{
		AreaKey:     key,
		AreaCode:    sb.AreaCode,
		AreaName:    sb.AreaName,
		RegionName:  sb.RegionName,
		CountryName: sb.CountryName,
		SiteIDs:     []string{},
	}
	place, ok := places.Lookup(sb.AreaCode, sb.AreaName)
	if !ok {
		return area
	}
	area.HasPlaceStats = true
	area.SupportedAsylum = place.SupportedAsylum
	area.SupportedAsylumRate = place.SupportedAsylumRate
	area.ContingencyAccommodation = place.ContingencyAccommodation
	if area.AreaCode == "" {
		area.AreaCode = place.AreaCode
	}
	if area.AreaName == "" {
		area.AreaName = place.AreaName
	}
	if place.RegionName != "" {
		area.RegionName = place.RegionName
	}
	if place.CountryName != "" {
		area.CountryName = place.CountryName
	}
	return area
}

var printer = message.NewPrinter(language.BritishEnglish)

// describe writes the one-line profile summary.
func describe(p *EntityProfile) string {
	var sb strings.Builder
	sb.WriteString(authority.RoleLabel(p.PrimaryRole))
	fmt.Fprintf(&sb, " linked to %s and %s",
		plural(p.CurrentSiteCount, "current site"),
		plural(p.HistoricalSiteCount, "historical site"))
	if p.LinkedAreaCount > 0 {
		fmt.Fprintf(&sb, " across %s", plural(p.LinkedAreaCount, "area"))
	}
	fmt.Fprintf(&sb, ", with %s", plural(p.MoneyRecordCount, "money record"))
	if v := p.PublicContractValueGBP; v != nil {
		sb.WriteString(printer.Sprintf(" worth £%.0f disclosed", *v))
	}
	if p.IntegritySignalCount > 0 {
		fmt.Fprintf(&sb, " and %s", plural(p.IntegritySignalCount, "integrity signal"))
	}
	sb.WriteString(".")
	return sb.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
