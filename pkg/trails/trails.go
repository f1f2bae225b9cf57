// Package trails pairs each current site with its best money evidence and
// local pressure figures, producing ranked investigation trails.
package trails

import (
	"math"
	"slices"
	"strings"

	"github.com/agentstation/ledgerlink/pkg/authority"
	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/errors"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
	"github.com/agentstation/ledgerlink/pkg/normalize"
	"github.com/agentstation/ledgerlink/pkg/profiles"
)

// Trail links one current site to its money evidence and area pressure.
type Trail struct {
	Title                string           `json:"title" yaml:"title"`
	SiteID               string           `json:"siteId" yaml:"siteId"`
	SiteName             string           `json:"siteName" yaml:"siteName"`
	AreaName             string           `json:"areaName" yaml:"areaName"`
	AreaCode             string           `json:"areaCode,omitempty" yaml:"areaCode,omitempty"`
	RegionName           string           `json:"regionName" yaml:"regionName"`
	EntityCoverage       ledgers.Coverage `json:"entityCoverage" yaml:"entityCoverage"`
	IntegritySignalCount int              `json:"integritySignalCount" yaml:"integritySignalCount"`
	PrimeProvider        string           `json:"primeProvider,omitempty" yaml:"primeProvider,omitempty"`

	HasPlaceStats            bool `json:"hasPlaceStats" yaml:"hasPlaceStats"`
	SupportedAsylum          int  `json:"supportedAsylum" yaml:"supportedAsylum"`
	ContingencyAccommodation int  `json:"contingencyAccommodation" yaml:"contingencyAccommodation"`

	MatchType       MatchType `json:"matchType" yaml:"matchType"`
	RecordIDs       []string  `json:"recordIds" yaml:"recordIds"`
	LeadRecordID    string    `json:"leadRecordId,omitempty" yaml:"leadRecordId,omitempty"`
	LeadRecordTitle string    `json:"leadRecordTitle,omitempty" yaml:"leadRecordTitle,omitempty"`

	Score int `json:"score" yaml:"score"`
}

// Build produces one trail per current site, highest score first.
func Build(site *ledgers.SiteLedger, money *ledgers.MoneyLedger, place *ledgers.PlaceLedger) ([]Trail, error) {
	switch {
	case site == nil:
		return nil, errors.NewLedgerError(constants.LedgerSite, "", "document is missing", nil)
	case money == nil:
		return nil, errors.NewLedgerError(constants.LedgerMoney, "", "document is missing", nil)
	case place == nil:
		return nil, errors.NewLedgerError(constants.LedgerPlace, "", "document is missing", nil)
	}

	places := ledgers.NewPlaceIndex(place)
	trails := []Trail{}
	for i := range site.Sites {
		s := &site.Sites[i]
		if s.SiteID == "" || !s.IsCurrent() {
			continue
		}
		trails = append(trails, newTrail(s, money, places))
	}

	slices.SortStableFunc(trails, func(a, b Trail) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.SiteID, b.SiteID)
	})
	return trails, nil
}

func newTrail(s *ledgers.Site, money *ledgers.MoneyLedger, places *ledgers.PlaceIndex) Trail {
	t := Trail{
		Title:                s.SiteName,
		SiteID:               s.SiteID,
		SiteName:             s.SiteName,
		AreaName:             s.AreaName,
		AreaCode:             s.AreaCode,
		RegionName:           s.RegionName,
		EntityCoverage:       s.EntityCoverage,
		IntegritySignalCount: len(s.IntegritySignals),
		RecordIDs:            []string{},
	}
	if t.Title == "" {
		t.Title = s.SiteID
	}
	if s.PrimeProvider != nil {
		t.PrimeProvider = s.PrimeProvider.Provider
	}
	if area, ok := places.Lookup(s.AreaCode, s.AreaName); ok {
		t.HasPlaceStats = true
		t.SupportedAsylum = area.SupportedAsylum
		t.ContingencyAccommodation = area.ContingencyAccommodation
	}

	matchType, records := Match(s, money)
	t.MatchType = matchType
	for _, r := range records {
		t.RecordIDs = append(t.RecordIDs, r.RecordID)
	}
	if len(records) > 0 {
		t.LeadRecordID = records[0].RecordID
		t.LeadRecordTitle = records[0].Title
	}
	t.Score = score(&t)
	return t
}

// Match finds the money evidence for a site: records naming the site id,
// else asylum support records whose supplier matches the prime provider.
// Matched records are ordered by disclosed value desc, undisclosed last,
// then title.
func Match(s *ledgers.Site, money *ledgers.MoneyLedger) (MatchType, []*ledgers.MoneyRecord) {
	var direct []*ledgers.MoneyRecord
	for i := range money.Records {
		if money.Records[i].ReferencesSite(s.SiteID) {
			direct = append(direct, &money.Records[i])
		}
	}
	if len(direct) > 0 {
		return MatchDirect, rankRecords(direct)
	}

	if s.PrimeProvider == nil || strings.TrimSpace(s.PrimeProvider.Provider) == "" {
		return MatchNone, nil
	}
	var provider []*ledgers.MoneyRecord
	for i := range money.Records {
		r := &money.Records[i]
		if r.RouteFamily == constants.RouteFamilyAsylumSupport && normalize.NamesMatch(r.SupplierName, s.PrimeProvider.Provider) {
			provider = append(provider, r)
		}
	}
	if len(provider) > 0 {
		return MatchProvider, rankRecords(provider)
	}
	return MatchNone, nil
}

func rankRecords(records []*ledgers.MoneyRecord) []*ledgers.MoneyRecord {
	slices.SortStableFunc(records, func(a, b *ledgers.MoneyRecord) int {
		switch {
		case a.ValueGBP != nil && b.ValueGBP == nil:
			return -1
		case a.ValueGBP == nil && b.ValueGBP != nil:
			return 1
		case a.ValueGBP != nil && *a.ValueGBP != *b.ValueGBP:
			if *a.ValueGBP > *b.ValueGBP {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Title, b.Title)
	})
	return records
}

func score(t *Trail) int {
	var s int
	switch t.EntityCoverage {
	case ledgers.CoverageUnresolved:
		s = constants.TrailBaseUnresolved
	case ledgers.CoveragePartial:
		s = constants.TrailBasePartial
	default:
		s = constants.TrailBaseResolved
	}
	if t.MatchType == MatchDirect {
		s += constants.TrailDirectMatch
	} else {
		s += constants.TrailIndirectMatch
	}
	s += t.IntegritySignalCount * constants.TrailPerIntegritySignal
	s += t.ContingencyAccommodation
	s += int(math.Floor(float64(t.SupportedAsylum)/constants.TrailSupportedDivisor + 0.5))
	return s
}

// BestEntity returns the profile that best explains a trail. A profile earns
// points for holding the site, for holding one of the trail's records and for
// being a prime provider; profiles earning nothing are never returned. Ties
// go to the higher profile score, then the entity name.
func BestEntity(t *Trail, candidates []profiles.EntityProfile) (*profiles.EntityProfile, bool) {
	var best *profiles.EntityProfile
	bestScore := 0
	for i := range candidates {
		p := &candidates[i]
		s := lookupScore(t, p)
		if s == 0 {
			continue
		}
		if best == nil || s > bestScore ||
			(s == bestScore && (p.Score > best.Score || (p.Score == best.Score && p.EntityName < best.EntityName))) {
			best, bestScore = p, s
		}
	}
	return best, best != nil
}

func lookupScore(t *Trail, p *profiles.EntityProfile) int {
	s := 0
	if p.HasSite(t.SiteID) {
		s += constants.LookupSiteMatch
	}
	for _, id := range t.RecordIDs {
		if p.HasRecord(id) {
			s += constants.LookupRecordMatch
			break
		}
	}
	if p.PrimaryRole == authority.RolePrimeProvider {
		s += constants.LookupPrimeRole
	}
	return s
}
