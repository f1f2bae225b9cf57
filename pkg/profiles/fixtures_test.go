package profiles_test

import (
	"github.com/agentstation/ledgerlink/pkg/ledgers"
)

func ptr[T any](v T) *T {
	return &v
}

// fixture returns a small but complete set of ledgers:
// Example Group (company 03929881) owns or operates three sites under two
// name variants; Mears Group is a prime provider with two money records.
func fixture() (*ledgers.SiteLedger, *ledgers.MoneyLedger, *ledgers.PlaceLedger) {
	site := &ledgers.SiteLedger{
		Sites: []ledgers.Site{
			{
				SiteID:         "site_1",
				SiteName:       "Alpha Hotel",
				AreaName:       "Barnsley",
				AreaCode:       "E08000016",
				RegionName:     "Yorkshire and The Humber",
				CountryName:    "England",
				Status:         ledgers.StatusCurrent,
				EntityCoverage: ledgers.CoverageUnresolved,
				SourceURL:      "https://example.org/sites/1",
				EntityLinks: []ledgers.EntityLink{{
					EntityName:    "Example Group Ltd",
					CompanyNumber: "03929881",
					LinkRole:      "owner_group",
					SourceURLs:    []string{"https://example.org/title/1"},
					SourceTitles:  []string{"Land Registry"},
				}},
				IntegritySignals: []ledgers.IntegritySignal{
					{SignalID: "sig_1", Title: "Fire safety notice"},
					{SignalID: "sig_2", Title: "Inspection failure"},
				},
				PrimeProvider: &ledgers.PrimeProvider{
					Provider:    "Mears Group",
					SourceURL:   "https://example.org/prime/1",
					SourceTitle: "Prime contract",
				},
			},
			{
				SiteID:         "site_2",
				SiteName:       "Beta Hotel",
				AreaName:       "Barnsley",
				AreaCode:       "E08000016",
				RegionName:     "Yorkshire and The Humber",
				CountryName:    "England",
				Status:         ledgers.StatusCurrent,
				EntityCoverage: ledgers.CoveragePartial,
				EntityLinks: []ledgers.EntityLink{{
					EntityName:    "Example Group",
					CompanyNumber: "03929881",
					LinkRole:      "operator",
					Notes:         "Operates via subsidiary",
				}},
			},
			{
				SiteID:         "site_3",
				SiteName:       "Gamma House",
				AreaName:       "Leeds",
				AreaCode:       "E08000035",
				RegionName:     "Yorkshire and The Humber",
				CountryName:    "England",
				Status:         ledgers.StatusHistorical,
				EntityCoverage: ledgers.CoverageResolved,
				EntityLinks: []ledgers.EntityLink{{
					EntityName: "Example Group",
					LinkRole:   "freeholder",
				}},
			},
		},
	}

	money := &ledgers.MoneyLedger{
		SupplierProfiles: []ledgers.SupplierProfile{
			{
				SupplierID:    "supplier_mears",
				EntityName:    "Mears Group",
				EntityRole:    "prime_provider",
				RouteFamilies: []string{"asylum_support"},
				SiteIDs:       []string{"site_1", "site_missing"},
				RiskLevel:     "medium",
				SourceURLs:    []string{"https://example.org/suppliers/mears"},
				Notes:         "Regional prime",
			},
		},
		Records: []ledgers.MoneyRecord{
			{
				RecordID:    "rec_1",
				Title:       "AASC North East",
				SupplierID:  "supplier_mears",
				RouteFamily: "asylum_support",
				ValueGBP:    ptr(1000.0),
				SourceTitle: "Contracts Finder",
				SourceURL:   "https://example.org/contracts/1",
			},
			{
				RecordID:     "rec_2",
				Title:        "Hotel costs",
				SupplierName: "Mears Group",
			},
			{
				RecordID:    "rec_1",
				Title:       "AASC North East",
				SupplierID:  "supplier_mears",
				SourceTitle: "Contracts Finder",
				SourceURL:   "https://example.org/contracts/1",
			},
			{
				RecordID: "rec_3",
				Title:    "Unattributed spend",
				ValueGBP: ptr(50.0),
			},
		},
	}

	place := &ledgers.PlaceLedger{
		Areas: []ledgers.PlaceArea{
			{
				AreaCode:                 "E08000016",
				AreaName:                 "Barnsley",
				RegionName:               "Yorkshire and The Humber",
				CountryName:              "England",
				SupportedAsylum:          900,
				SupportedAsylumRate:      ptr(3.6),
				ContingencyAccommodation: 120,
			},
		},
	}
	return site, money, place
}
