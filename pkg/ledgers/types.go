// Package ledgers defines the three canonical input documents (site, money
// and place ledgers), loads them from JSON or YAML, and rejects documents
// that break their top-level contract.
package ledgers

// SiteStatus is the publication status of an accommodation site.
type SiteStatus string

// Site statuses.
const (
	StatusCurrent    SiteStatus = "current"
	StatusHistorical SiteStatus = "historical"
	StatusOther      SiteStatus = "other"
)

// Coverage describes how completely a site's ownership chain is documented.
type Coverage string

// Entity coverage levels.
const (
	CoverageUnresolved Coverage = "unresolved"
	CoveragePartial    Coverage = "partial"
	CoverageResolved   Coverage = "resolved"
)

// SiteLedger is the site ledger document.
type SiteLedger struct {
	Sites []Site `json:"sites"`
	Areas []Area `json:"areas"`
}

// Site is one named accommodation site.
type Site struct {
	SiteID               string            `json:"siteId"`
	SiteName             string            `json:"siteName"`
	AreaName             string            `json:"areaName"`
	AreaCode             string            `json:"areaCode,omitempty"`
	RegionName           string            `json:"regionName"`
	CountryName          string            `json:"countryName"`
	Status               SiteStatus        `json:"status"`
	EntityCoverage       Coverage          `json:"entityCoverage"`
	Confidence           string            `json:"confidence,omitempty"`
	PeopleHousedReported *int              `json:"peopleHousedReported,omitempty"`
	FirstPublicDate      string            `json:"firstPublicDate,omitempty"`
	LastPublicDate       string            `json:"lastPublicDate,omitempty"`
	SourceTitle          string            `json:"sourceTitle,omitempty"`
	SourceURL            string            `json:"sourceUrl,omitempty"`
	EntityLinks          []EntityLink      `json:"entityLinks,omitempty"`
	IntegritySignals     []IntegritySignal `json:"integritySignals,omitempty"`
	PrimeProvider        *PrimeProvider    `json:"primeProvider,omitempty"`
}

// IsCurrent reports whether the site is currently in use.
func (s *Site) IsCurrent() bool {
	return s.Status == StatusCurrent
}

// EntityLink ties a site to an organisation in a given role.
type EntityLink struct {
	EntityName    string   `json:"entityName"`
	CompanyNumber string   `json:"companyNumber,omitempty"`
	LinkRole      string   `json:"linkRole"`
	Confidence    string   `json:"confidence,omitempty"`
	SourceURLs    []string `json:"sourceUrls,omitempty"`
	SourceTitles  []string `json:"sourceTitles,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// IntegritySignal is a flagged concern attached to a site.
type IntegritySignal struct {
	SignalID   string `json:"signalId"`
	SignalType string `json:"signalType,omitempty"`
	Severity   string `json:"severity,omitempty"`
	Title      string `json:"title,omitempty"`
	SourceURL  string `json:"sourceUrl,omitempty"`
}

// PrimeProvider names the regional asylum accommodation contractor for a site.
type PrimeProvider struct {
	Provider    string   `json:"provider"`
	Regions     []string `json:"regions,omitempty"`
	SourceTitle string   `json:"sourceTitle,omitempty"`
	SourceURL   string   `json:"sourceUrl,omitempty"`
}

// Area is the site ledger's own area summary.
type Area struct {
	AreaCode    string `json:"areaCode,omitempty"`
	AreaName    string `json:"areaName"`
	RegionName  string `json:"regionName"`
	CountryName string `json:"countryName"`
	SiteCount   int    `json:"siteCount,omitempty"`
}

// MoneyLedger is the money ledger document.
type MoneyLedger struct {
	Records          []MoneyRecord     `json:"records"`
	SupplierProfiles []SupplierProfile `json:"supplierProfiles"`
}

// MoneyRecord is one public contract, funding or cost row.
// ValueGBP is nil when the value was not disclosed; that is not zero.
type MoneyRecord struct {
	RecordID              string       `json:"recordId"`
	RecordType            string       `json:"recordType"`
	Title                 string       `json:"title"`
	BuyerName             string       `json:"buyerName"`
	SupplierID            string       `json:"supplierId,omitempty"`
	SupplierName          string       `json:"supplierName,omitempty"`
	SupplierCompanyNumber string       `json:"supplierCompanyNumber,omitempty"`
	SupplierRole          string       `json:"supplierRole,omitempty"`
	RouteFamily           string       `json:"routeFamily,omitempty"`
	ValueGBP              *float64     `json:"valueGbp"`
	SiteIDs               []string     `json:"siteIds,omitempty"`
	LinkedSites           []LinkedSite `json:"linkedSites,omitempty"`
	GeographyScope        string       `json:"geographyScope,omitempty"`
	PublishedDate         string       `json:"publishedDate,omitempty"`
	AwardDate             string       `json:"awardDate,omitempty"`
	StartDate             string       `json:"startDate,omitempty"`
	EndDate               string       `json:"endDate,omitempty"`
	SourceTitle           string       `json:"sourceTitle,omitempty"`
	SourceURL             string       `json:"sourceUrl,omitempty"`
}

// ReferencesSite reports whether the record lists siteID directly.
func (r *MoneyRecord) ReferencesSite(siteID string) bool {
	for _, id := range r.SiteIDs {
		if id == siteID {
			return true
		}
	}
	return false
}

// LinkedSite is the denormalized site summary carried on a money record.
type LinkedSite struct {
	SiteID   string `json:"siteId"`
	SiteName string `json:"siteName"`
	AreaName string `json:"areaName,omitempty"`
}

// SupplierProfile is the money ledger's per-supplier rollup.
type SupplierProfile struct {
	SupplierID             string   `json:"supplierId"`
	EntityName             string   `json:"entityName"`
	EntityRole             string   `json:"entityRole"`
	CompanyNumber          string   `json:"companyNumber,omitempty"`
	RouteFamilies          []string `json:"routeFamilies,omitempty"`
	SiteIDs                []string `json:"siteIds,omitempty"`
	PublicContractCount    int      `json:"publicContractCount"`
	PublicContractValueGBP *float64 `json:"publicContractValueGbp"`
	RiskLevel              string   `json:"riskLevel,omitempty"`
	IntegritySignalCount   int      `json:"integritySignalCount"`
	SourceURLs             []string `json:"sourceUrls,omitempty"`
	Notes                  string   `json:"notes,omitempty"`
}

// PlaceLedger is the place ledger document.
type PlaceLedger struct {
	Areas []PlaceArea `json:"areas"`
}

// PlaceArea carries local authority asylum statistics.
type PlaceArea struct {
	AreaCode                 string   `json:"areaCode"`
	AreaName                 string   `json:"areaName"`
	RegionName               string   `json:"regionName"`
	CountryName              string   `json:"countryName"`
	SupportedAsylum          int      `json:"supportedAsylum"`
	SupportedAsylumRate      *float64 `json:"supportedAsylumRate"`
	ContingencyAccommodation int      `json:"contingencyAccommodation"`
}
