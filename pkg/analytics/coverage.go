package analytics

import (
	"slices"
	"strings"

	"github.com/agentstation/ledgerlink/pkg/authority"
	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
	"github.com/agentstation/ledgerlink/pkg/normalize"
	"github.com/agentstation/ledgerlink/pkg/profiles"
)

// regionSynonyms expands contract geography labels that cover several
// place-ledger regions.
var regionSynonyms = map[string][]string{
	"midlands":         {"East Midlands", "West Midlands"},
	"south of england": {"London", "South East", "South West"},
}

// CoveredArea is a place-ledger area inside a prime provider's contracted
// geography.
type CoveredArea struct {
	AreaCode                 string   `json:"areaCode" yaml:"areaCode"`
	AreaName                 string   `json:"areaName" yaml:"areaName"`
	RegionName               string   `json:"regionName" yaml:"regionName"`
	CountryName              string   `json:"countryName" yaml:"countryName"`
	SupportedAsylum          int      `json:"supportedAsylum" yaml:"supportedAsylum"`
	SupportedAsylumRate      *float64 `json:"supportedAsylumRate" yaml:"supportedAsylumRate"`
	ContingencyAccommodation int      `json:"contingencyAccommodation" yaml:"contingencyAccommodation"`
	Label                    string   `json:"label" yaml:"label"`
}

// CoverageOverlap relates prime-contract geography to place statistics.
type CoverageOverlap struct {
	RecordIDs                     []string      `json:"recordIds" yaml:"recordIds"`
	Labels                        []string      `json:"labels" yaml:"labels"`
	UnmatchedLabels               []string      `json:"unmatchedLabels" yaml:"unmatchedLabels"`
	Areas                         []CoveredArea `json:"areas" yaml:"areas"`
	SupportedAsylumTotal          int           `json:"supportedAsylumTotal" yaml:"supportedAsylumTotal"`
	ContingencyAccommodationTotal int           `json:"contingencyAccommodationTotal" yaml:"contingencyAccommodationTotal"`
}

// ParseGeographyScope splits a pipe or semicolon delimited scope into
// distinct trimmed labels, keeping their order.
func ParseGeographyScope(scope string) []string {
	parts := strings.FieldsFunc(scope, func(r rune) bool { return r == '|' || r == ';' })
	seen := make(map[string]bool, len(parts))
	var out []string
	for _, part := range parts {
		label := strings.TrimSpace(part)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}

// ExpandLabels replaces synonym labels with the regions they stand for.
func ExpandLabels(labels []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, label := range labels {
		expanded := []string{label}
		if regions, ok := regionSynonyms[normalize.Name(label)]; ok {
			expanded = regions
		}
		for _, l := range expanded {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	return out
}

// ContractCoverage intersects a prime provider's contracted geography with
// the place ledger. It reports false for any other primary role.
func ContractCoverage(p *profiles.EntityProfile, place *ledgers.PlaceLedger) (*CoverageOverlap, bool) {
	if p.PrimaryRole != authority.RolePrimeProvider || place == nil {
		return nil, false
	}

	c := &CoverageOverlap{
		RecordIDs:       []string{},
		UnmatchedLabels: []string{},
		Areas:           []CoveredArea{},
	}
	var raw []string
	for i := range p.MoneyRecords {
		r := &p.MoneyRecords[i]
		if r.RecordType != constants.RecordTypePrimeContract {
			continue
		}
		c.RecordIDs = append(c.RecordIDs, r.RecordID)
		raw = append(raw, ParseGeographyScope(r.GeographyScope)...)
	}
	c.Labels = ExpandLabels(raw)
	if c.Labels == nil {
		c.Labels = []string{}
	}

	matched := make(map[string]bool)
	for i := range place.Areas {
		a := &place.Areas[i]
		label, ok := matchLabel(c.Labels, a)
		if !ok {
			continue
		}
		matched[label] = true
		c.Areas = append(c.Areas, CoveredArea{
			AreaCode:                 a.AreaCode,
			AreaName:                 a.AreaName,
			RegionName:               a.RegionName,
			CountryName:              a.CountryName,
			SupportedAsylum:          a.SupportedAsylum,
			SupportedAsylumRate:      a.SupportedAsylumRate,
			ContingencyAccommodation: a.ContingencyAccommodation,
			Label:                    label,
		})
		c.SupportedAsylumTotal += a.SupportedAsylum
		c.ContingencyAccommodationTotal += a.ContingencyAccommodation
	}
	for _, l := range c.Labels {
		if !matched[l] {
			c.UnmatchedLabels = append(c.UnmatchedLabels, l)
		}
	}

	slices.SortStableFunc(c.Areas, compareCovered)
	return c, true
}

// matchLabel returns the first label naming the area's region or country.
func matchLabel(labels []string, a *ledgers.PlaceArea) (string, bool) {
	region, country := normalize.Name(a.RegionName), normalize.Name(a.CountryName)
	for _, l := range labels {
		n := normalize.Name(l)
		if n == "" {
			continue
		}
		if n == region || n == country {
			return l, true
		}
	}
	return "", false
}

// compareCovered ranks by supported asylum, contingency accommodation and
// supported asylum rate, all descending, then area name. A missing rate
// ranks below any reported rate.
func compareCovered(a, b CoveredArea) int {
	switch {
	case a.SupportedAsylum != b.SupportedAsylum:
		return b.SupportedAsylum - a.SupportedAsylum
	case a.ContingencyAccommodation != b.ContingencyAccommodation:
		return b.ContingencyAccommodation - a.ContingencyAccommodation
	}
	ra, rb := rate(a.SupportedAsylumRate), rate(b.SupportedAsylumRate)
	switch {
	case ra > rb:
		return -1
	case ra < rb:
		return 1
	case a.AreaName != b.AreaName:
		return strings.Compare(a.AreaName, b.AreaName)
	}
	return strings.Compare(a.AreaCode, b.AreaCode)
}

func rate(r *float64) float64 {
	if r == nil {
		return -1
	}
	return *r
}
