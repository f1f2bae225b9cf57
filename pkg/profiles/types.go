package profiles

import (
	"strings"

	"github.com/agentstation/ledgerlink/pkg/ledgers"
)

// SourceKind classifies where a source link was observed.
type SourceKind string

// Source link kinds.
const (
	SourceSupplierProfile SourceKind = "supplier_profile"
	SourceMoneyRow        SourceKind = "money_row"
	SourceHotelLink       SourceKind = "hotel_link"
	SourceHotelSite       SourceKind = "hotel_site"
	SourcePrimeProvider   SourceKind = "prime_provider"
)

// SourceLink is one piece of public evidence behind a profile.
type SourceLink struct {
	Kind  SourceKind `json:"kind" yaml:"kind"`
	URL   string     `json:"url" yaml:"url"`
	Title string     `json:"title,omitempty" yaml:"title,omitempty"`
}

// EntityProfile is the reconciled view of one organisation.
// Profiles are values; nothing in this package mutates one after Finalize.
type EntityProfile struct {
	EntityID      string   `json:"entityId" yaml:"entityId"`
	EntityName    string   `json:"entityName" yaml:"entityName"`
	CompanyNumber string   `json:"companyNumber,omitempty" yaml:"companyNumber,omitempty"`
	PrimaryRole   string   `json:"primaryRole" yaml:"primaryRole"`
	Roles         []string `json:"roles" yaml:"roles"`
	RoleLabels    []string `json:"roleLabels" yaml:"roleLabels"`
	RiskLevel     string   `json:"riskLevel,omitempty" yaml:"riskLevel,omitempty"`
	RouteFamilies []string `json:"routeFamilies" yaml:"routeFamilies"`

	CurrentSiteCount           int `json:"currentSiteCount" yaml:"currentSiteCount"`
	HistoricalSiteCount        int `json:"historicalSiteCount" yaml:"historicalSiteCount"`
	UnresolvedCurrentSiteCount int `json:"unresolvedCurrentSiteCount" yaml:"unresolvedCurrentSiteCount"`
	MoneyRecordCount           int `json:"moneyRecordCount" yaml:"moneyRecordCount"`
	IntegritySignalCount       int `json:"integritySignalCount" yaml:"integritySignalCount"`
	LinkedAreaCount            int `json:"linkedAreaCount" yaml:"linkedAreaCount"`

	// PublicContractValueGBP is nil when no attached record disclosed a value.
	PublicContractValueGBP *float64 `json:"publicContractValueGbp" yaml:"publicContractValueGbp"`

	CurrentSites    []SiteBinding         `json:"currentSites" yaml:"currentSites"`
	HistoricalSites []SiteBinding         `json:"historicalSites" yaml:"historicalSites"`
	MoneyRecords    []ledgers.MoneyRecord `json:"moneyRecords" yaml:"moneyRecords"`
	LinkedAreas     []LinkedArea          `json:"linkedAreas" yaml:"linkedAreas"`
	SourceLinks     []SourceLink          `json:"sourceLinks" yaml:"sourceLinks"`
	Notes           []string              `json:"notes" yaml:"notes"`

	Score       int    `json:"score" yaml:"score"`
	Description string `json:"description" yaml:"description"`
}

// SiteBinding is a site attached to a profile together with the roles the
// entity holds there.
type SiteBinding struct {
	SiteID               string             `json:"siteId" yaml:"siteId"`
	SiteName             string             `json:"siteName" yaml:"siteName"`
	AreaName             string             `json:"areaName" yaml:"areaName"`
	AreaCode             string             `json:"areaCode,omitempty" yaml:"areaCode,omitempty"`
	RegionName           string             `json:"regionName" yaml:"regionName"`
	CountryName          string             `json:"countryName" yaml:"countryName"`
	Status               ledgers.SiteStatus `json:"status" yaml:"status"`
	EntityCoverage       ledgers.Coverage   `json:"entityCoverage" yaml:"entityCoverage"`
	FirstPublicDate      string             `json:"firstPublicDate,omitempty" yaml:"firstPublicDate,omitempty"`
	LastPublicDate       string             `json:"lastPublicDate,omitempty" yaml:"lastPublicDate,omitempty"`
	Roles                []string           `json:"roles" yaml:"roles"`
	RoleLabels           []string           `json:"roleLabels" yaml:"roleLabels"`
	IntegritySignalCount int                `json:"integritySignalCount" yaml:"integritySignalCount"`
}

// IsCurrent reports whether the bound site is current.
func (b *SiteBinding) IsCurrent() bool {
	return b.Status == ledgers.StatusCurrent
}

// LinkedArea summarises the current sites an entity holds in one area, with
// the place ledger's statistics for that area when they were found.
type LinkedArea struct {
	AreaKey                  string   `json:"areaKey" yaml:"areaKey"`
	AreaCode                 string   `json:"areaCode,omitempty" yaml:"areaCode,omitempty"`
	AreaName                 string   `json:"areaName" yaml:"areaName"`
	RegionName               string   `json:"regionName" yaml:"regionName"`
	CountryName              string   `json:"countryName" yaml:"countryName"`
	CurrentSiteCount         int      `json:"currentSiteCount" yaml:"currentSiteCount"`
	SiteIDs                  []string `json:"siteIds" yaml:"siteIds"`
	HasPlaceStats            bool     `json:"hasPlaceStats" yaml:"hasPlaceStats"`
	SupportedAsylum          int      `json:"supportedAsylum" yaml:"supportedAsylum"`
	SupportedAsylumRate      *float64 `json:"supportedAsylumRate" yaml:"supportedAsylumRate"`
	ContingencyAccommodation int      `json:"contingencyAccommodation" yaml:"contingencyAccommodation"`
}

// Sites returns current then historical bindings.
func (p *EntityProfile) Sites() []SiteBinding {
	out := make([]SiteBinding, 0, len(p.CurrentSites)+len(p.HistoricalSites))
	out = append(out, p.CurrentSites...)
	return append(out, p.HistoricalSites...)
}

// HasSite reports whether siteID is bound to the profile.
func (p *EntityProfile) HasSite(siteID string) bool {
	for _, partition := range [][]SiteBinding{p.CurrentSites, p.HistoricalSites} {
		for i := range partition {
			if partition[i].SiteID == siteID {
				return true
			}
		}
	}
	return false
}

// HasRecord reports whether a money record with recordID is attached.
func (p *EntityProfile) HasRecord(recordID string) bool {
	for i := range p.MoneyRecords {
		if p.MoneyRecords[i].RecordID == recordID {
			return true
		}
	}
	return false
}

// CompareAreas orders linked areas by supported asylum desc, contingency
// accommodation desc, current site count desc, then name.
func CompareAreas(a, b *LinkedArea) int {
	switch {
	case a.SupportedAsylum != b.SupportedAsylum:
		return b.SupportedAsylum - a.SupportedAsylum
	case a.ContingencyAccommodation != b.ContingencyAccommodation:
		return b.ContingencyAccommodation - a.ContingencyAccommodation
	case a.CurrentSiteCount != b.CurrentSiteCount:
		return b.CurrentSiteCount - a.CurrentSiteCount
	}
	return strings.Compare(a.AreaName, b.AreaName)
}
