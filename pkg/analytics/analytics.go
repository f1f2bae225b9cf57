// Package analytics derives read-only views from a finalized entity profile:
// exposure by coverage, regional spread, top linked places, an evidence
// timeline and, for prime providers, the overlap between contracted regions
// and place-level pressure. Every function is pure.
package analytics

import (
	"math"
	"slices"
	"strings"

	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
	"github.com/agentstation/ledgerlink/pkg/profiles"
)

// UnknownRegion labels sites whose region is blank.
const UnknownRegion = "Unknown"

// ExposureSummary breaks an entity's current sites down by entity coverage.
type ExposureSummary struct {
	CurrentSites      int                  `json:"currentSites" yaml:"currentSites"`
	Unresolved        int                  `json:"unresolved" yaml:"unresolved"`
	Partial           int                  `json:"partial" yaml:"partial"`
	Resolved          int                  `json:"resolved" yaml:"resolved"`
	UnresolvedPercent int                  `json:"unresolvedPercent" yaml:"unresolvedPercent"`
	PartialPercent    int                  `json:"partialPercent" yaml:"partialPercent"`
	ResolvedPercent   int                  `json:"resolvedPercent" yaml:"resolvedPercent"`
	LeadArea          *profiles.LinkedArea `json:"leadArea,omitempty" yaml:"leadArea,omitempty"`
}

// Exposure counts current sites per coverage level and picks the lead area.
func Exposure(p *profiles.EntityProfile) ExposureSummary {
	s := ExposureSummary{CurrentSites: len(p.CurrentSites)}
	for i := range p.CurrentSites {
		switch p.CurrentSites[i].EntityCoverage {
		case ledgers.CoverageUnresolved:
			s.Unresolved++
		case ledgers.CoveragePartial:
			s.Partial++
		case ledgers.CoverageResolved:
			s.Resolved++
		}
	}
	s.UnresolvedPercent = percent(s.Unresolved, s.CurrentSites)
	s.PartialPercent = percent(s.Partial, s.CurrentSites)
	s.ResolvedPercent = percent(s.Resolved, s.CurrentSites)

	if areas := rankAreas(p.LinkedAreas); len(areas) > 0 {
		s.LeadArea = &areas[0]
	}
	return s
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}

// RegionSpread aggregates sites and linked areas in one region.
type RegionSpread struct {
	RegionName                    string `json:"regionName" yaml:"regionName"`
	CountryName                   string `json:"countryName" yaml:"countryName"`
	CurrentSiteCount              int    `json:"currentSiteCount" yaml:"currentSiteCount"`
	HistoricalSiteCount           int    `json:"historicalSiteCount" yaml:"historicalSiteCount"`
	NonResolvedCurrentSiteCount   int    `json:"nonResolvedCurrentSiteCount" yaml:"nonResolvedCurrentSiteCount"`
	LinkedAreaCount               int    `json:"linkedAreaCount" yaml:"linkedAreaCount"`
	SupportedAsylumTotal          int    `json:"supportedAsylumTotal" yaml:"supportedAsylumTotal"`
	ContingencyAccommodationTotal int    `json:"contingencyAccommodationTotal" yaml:"contingencyAccommodationTotal"`
}

type regionKey struct {
	region  string
	country string
}

// RegionalSpread groups every bound site and linked area by region and
// country. Regions are ordered by current sites, then current sites not yet
// resolved, then supported asylum, all descending, then by name.
func RegionalSpread(p *profiles.EntityProfile) []RegionSpread {
	index := make(map[regionKey]int)
	var out []RegionSpread
	get := func(region, country string) *RegionSpread {
		if strings.TrimSpace(region) == "" {
			region = UnknownRegion
		}
		k := regionKey{region, country}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, RegionSpread{RegionName: region, CountryName: country})
		}
		return &out[i]
	}

	for _, s := range p.Sites() {
		r := get(s.RegionName, s.CountryName)
		if !s.IsCurrent() {
			r.HistoricalSiteCount++
			continue
		}
		r.CurrentSiteCount++
		if s.EntityCoverage != ledgers.CoverageResolved {
			r.NonResolvedCurrentSiteCount++
		}
	}
	for _, a := range p.LinkedAreas {
		r := get(a.RegionName, a.CountryName)
		r.LinkedAreaCount++
		r.SupportedAsylumTotal += a.SupportedAsylum
		r.ContingencyAccommodationTotal += a.ContingencyAccommodation
	}

	slices.SortStableFunc(out, func(a, b RegionSpread) int {
		switch {
		case a.CurrentSiteCount != b.CurrentSiteCount:
			return b.CurrentSiteCount - a.CurrentSiteCount
		case a.NonResolvedCurrentSiteCount != b.NonResolvedCurrentSiteCount:
			return b.NonResolvedCurrentSiteCount - a.NonResolvedCurrentSiteCount
		case a.SupportedAsylumTotal != b.SupportedAsylumTotal:
			return b.SupportedAsylumTotal - a.SupportedAsylumTotal
		case a.RegionName != b.RegionName:
			return strings.Compare(a.RegionName, b.RegionName)
		}
		return strings.Compare(a.CountryName, b.CountryName)
	})
	return out
}

// TopLinkedPlaces returns the n highest-pressure linked areas. n <= 0 uses
// constants.DefaultTopPlaces.
func TopLinkedPlaces(p *profiles.EntityProfile, n int) []profiles.LinkedArea {
	if n <= 0 {
		n = constants.DefaultTopPlaces
	}
	areas := rankAreas(p.LinkedAreas)
	if len(areas) > n {
		areas = areas[:n]
	}
	return areas
}

func rankAreas(areas []profiles.LinkedArea) []profiles.LinkedArea {
	out := slices.Clone(areas)
	slices.SortStableFunc(out, func(a, b profiles.LinkedArea) int {
		if c := profiles.CompareAreas(&a, &b); c != 0 {
			return c
		}
		return strings.Compare(a.AreaKey, b.AreaKey)
	})
	return out
}

// Report bundles every view for one profile.
type Report struct {
	Exposure       ExposureSummary       `json:"exposure" yaml:"exposure"`
	RegionalSpread []RegionSpread        `json:"regionalSpread" yaml:"regionalSpread"`
	TopPlaces      []profiles.LinkedArea `json:"topPlaces" yaml:"topPlaces"`
	Timeline       EvidenceTimeline      `json:"timeline" yaml:"timeline"`
	Coverage       *CoverageOverlap      `json:"coverage,omitempty" yaml:"coverage,omitempty"`
}

// Analyze computes every view. Coverage is nil unless the profile is a prime
// provider.
func Analyze(p *profiles.EntityProfile, place *ledgers.PlaceLedger, topN int) Report {
	r := Report{
		Exposure:       Exposure(p),
		RegionalSpread: RegionalSpread(p),
		TopPlaces:      TopLinkedPlaces(p, topN),
		Timeline:       Timeline(p),
	}
	if c, ok := ContractCoverage(p, place); ok {
		r.Coverage = c
	}
	return r
}
