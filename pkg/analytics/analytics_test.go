package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ledgerlink/pkg/analytics"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
	"github.com/agentstation/ledgerlink/pkg/profiles"
)

func ptr[T any](v T) *T {
	return &v
}

func current(id, region, country string, coverage ledgers.Coverage) profiles.SiteBinding {
	return profiles.SiteBinding{
		SiteID:         id,
		SiteName:       "Site " + id,
		RegionName:     region,
		CountryName:    country,
		Status:         ledgers.StatusCurrent,
		EntityCoverage: coverage,
	}
}

func TestExposure(t *testing.T) {
	p := &profiles.EntityProfile{
		CurrentSites: []profiles.SiteBinding{
			current("a", "North West", "England", ledgers.CoverageUnresolved),
			current("b", "North West", "England", ledgers.CoverageUnresolved),
			current("c", "North West", "England", ledgers.CoveragePartial),
			current("d", "North West", "England", ledgers.CoverageResolved),
		},
		LinkedAreas: []profiles.LinkedArea{
			{AreaKey: "A", AreaName: "Alpha", SupportedAsylum: 100, ContingencyAccommodation: 5},
			{AreaKey: "B", AreaName: "Bravo", SupportedAsylum: 100, ContingencyAccommodation: 10},
			{AreaKey: "C", AreaName: "Charlie", SupportedAsylum: 50, ContingencyAccommodation: 90},
		},
	}

	s := analytics.Exposure(p)
	assert.Equal(t, 4, s.CurrentSites)
	assert.Equal(t, 2, s.Unresolved)
	assert.Equal(t, 1, s.Partial)
	assert.Equal(t, 1, s.Resolved)
	assert.Equal(t, 50, s.UnresolvedPercent)
	assert.Equal(t, 25, s.PartialPercent)
	assert.Equal(t, 25, s.ResolvedPercent)
	require.NotNil(t, s.LeadArea)
	assert.Equal(t, "Bravo", s.LeadArea.AreaName)
}

func TestExposureRoundsAndHandlesEmpty(t *testing.T) {
	p := &profiles.EntityProfile{
		CurrentSites: []profiles.SiteBinding{
			current("a", "", "", ledgers.CoverageUnresolved),
			current("b", "", "", ledgers.CoveragePartial),
			current("c", "", "", ledgers.CoveragePartial),
		},
	}
	s := analytics.Exposure(p)
	assert.Equal(t, 33, s.UnresolvedPercent)
	assert.Equal(t, 67, s.PartialPercent)
	assert.Nil(t, s.LeadArea)

	empty := analytics.Exposure(&profiles.EntityProfile{})
	assert.Zero(t, empty.CurrentSites)
	assert.Zero(t, empty.UnresolvedPercent)
}

func TestRegionalSpread(t *testing.T) {
	historical := current("h", "London", "England", ledgers.CoverageResolved)
	historical.Status = ledgers.StatusHistorical
	p := &profiles.EntityProfile{
		CurrentSites: []profiles.SiteBinding{
			current("a", "Scotland", "Scotland", ledgers.CoverageUnresolved),
			current("b", "North West", "England", ledgers.CoverageResolved),
			current("c", "North West", "England", ledgers.CoveragePartial),
			current("d", "", "Wales", ledgers.CoverageResolved),
		},
		HistoricalSites: []profiles.SiteBinding{historical},
		LinkedAreas: []profiles.LinkedArea{
			{AreaKey: "S1", RegionName: "Scotland", CountryName: "Scotland", SupportedAsylum: 900, ContingencyAccommodation: 40},
			{AreaKey: "N1", RegionName: "North West", CountryName: "England", SupportedAsylum: 500},
			{AreaKey: "N2", RegionName: "North West", CountryName: "England", SupportedAsylum: 250},
		},
	}

	spread := analytics.RegionalSpread(p)
	require.Len(t, spread, 4)

	assert.Equal(t, "North West", spread[0].RegionName)
	assert.Equal(t, 2, spread[0].CurrentSiteCount)
	assert.Equal(t, 1, spread[0].NonResolvedCurrentSiteCount)
	assert.Equal(t, 2, spread[0].LinkedAreaCount)
	assert.Equal(t, 750, spread[0].SupportedAsylumTotal)

	assert.Equal(t, "Scotland", spread[1].RegionName)
	assert.Equal(t, 900, spread[1].SupportedAsylumTotal)
	assert.Equal(t, 40, spread[1].ContingencyAccommodationTotal)

	assert.Equal(t, analytics.UnknownRegion, spread[2].RegionName)
	assert.Equal(t, "Wales", spread[2].CountryName)

	assert.Equal(t, "London", spread[3].RegionName)
	assert.Equal(t, 0, spread[3].CurrentSiteCount)
	assert.Equal(t, 1, spread[3].HistoricalSiteCount)
}

func TestTopLinkedPlaces(t *testing.T) {
	areas := make([]profiles.LinkedArea, 0, 7)
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		areas = append(areas, profiles.LinkedArea{AreaKey: name, AreaName: name, SupportedAsylum: i * 10})
	}
	p := &profiles.EntityProfile{LinkedAreas: areas}

	top := analytics.TopLinkedPlaces(p, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "G", top[0].AreaName)
	assert.Equal(t, "F", top[1].AreaName)

	assert.Len(t, analytics.TopLinkedPlaces(p, 0), 5)
	assert.Equal(t, "A", p.LinkedAreas[0].AreaName, "input must not be reordered")
}

func TestTimeline(t *testing.T) {
	p := &profiles.EntityProfile{
		CurrentSites: []profiles.SiteBinding{{
			SiteID: "cur", SiteName: "Current Hotel", Status: ledgers.StatusCurrent,
			FirstPublicDate: "2023-01-05", LastPublicDate: "2024-03-01",
		}},
		HistoricalSites: []profiles.SiteBinding{
			{
				SiteID: "old", SiteName: "Old Hotel", Status: ledgers.StatusHistorical,
				FirstPublicDate: "2022-06-01", LastPublicDate: "2023-09-30",
			},
			{
				SiteID: "same", SiteName: "Brief Hotel", Status: ledgers.StatusHistorical,
				FirstPublicDate: "2022-06-01", LastPublicDate: "2022-06-01",
			},
		},
		MoneyRecords: []ledgers.MoneyRecord{
			{RecordID: "r1", Title: "Hotel contract", PublishedDate: "2024-02-10", AwardDate: "2023-12-01"},
			{RecordID: "r2", Title: "Undated", PublishedDate: "unknown"},
		},
	}

	tl := analytics.Timeline(p)
	var titles []string
	for _, e := range tl.Events {
		titles = append(titles, e.Date+" "+e.Title)
	}
	assert.Equal(t, []string{
		"2024-02-10 Hotel contract published",
		"2023-12-01 Hotel contract awarded",
		"2023-09-30 Old Hotel last publicly visible",
		"2023-01-05 Current Hotel first publicly listed",
		"2022-06-01 Brief Hotel first publicly listed",
		"2022-06-01 Old Hotel first publicly listed",
	}, titles)
	assert.Equal(t, "2024-02-10", tl.Latest)
	assert.Equal(t, "2022-06-01", tl.Earliest)
	assert.Equal(t, analytics.EventMoneyPublished, tl.Events[0].Kind)
	assert.Equal(t, "r1", tl.Events[0].RecordID)

	empty := analytics.Timeline(&profiles.EntityProfile{})
	assert.Empty(t, empty.Events)
	assert.NotNil(t, empty.Events)
	assert.Empty(t, empty.Earliest)
}

func TestTimelineAcceptsLooseDates(t *testing.T) {
	p := &profiles.EntityProfile{
		HistoricalSites: []profiles.SiteBinding{{
			SiteID: "yr", SiteName: "Year Hotel", Status: ledgers.StatusHistorical,
			FirstPublicDate: "2024", LastPublicDate: "2024-03-01 09:00:00",
		}},
		MoneyRecords: []ledgers.MoneyRecord{
			{RecordID: "r1", Title: "Framework", PublishedDate: "2024-02-01T10:00:00"},
		},
	}

	tl := analytics.Timeline(p)
	require.Len(t, tl.Events, 3)
	assert.Equal(t, analytics.EventSiteLastPublic, tl.Events[0].Kind)
	assert.Equal(t, "2024-03-01 09:00:00", tl.Latest)
	assert.Equal(t, analytics.EventMoneyPublished, tl.Events[1].Kind)
	assert.Equal(t, analytics.EventSiteFirstPublic, tl.Events[2].Kind)
	assert.Equal(t, "2024", tl.Earliest)
}

func TestParseGeographyScope(t *testing.T) {
	tests := []struct {
		scope string
		want  []string
	}{
		{"", nil},
		{"North West", []string{"North West"}},
		{" Midlands | North West;Wales ", []string{"Midlands", "North West", "Wales"}},
		{"Wales;;Wales|", []string{"Wales"}},
	}
	for _, tt := range tests {
		t.Run(tt.scope, func(t *testing.T) {
			assert.Equal(t, tt.want, analytics.ParseGeographyScope(tt.scope))
		})
	}
}

func TestExpandLabels(t *testing.T) {
	got := analytics.ExpandLabels([]string{"Midlands", "South of England", "West Midlands", "Wales"})
	assert.Equal(t, []string{"East Midlands", "West Midlands", "London", "South East", "South West", "Wales"}, got)
}

func primeProfile() *profiles.EntityProfile {
	return &profiles.EntityProfile{
		EntityID:    "supplier_serco",
		PrimaryRole: "prime_provider",
		MoneyRecords: []ledgers.MoneyRecord{
			{RecordID: "p1", RecordType: "prime_contract", GeographyScope: "Midlands | North West; Atlantis"},
			{RecordID: "x1", RecordType: "grant", GeographyScope: "Wales"},
			{RecordID: "p2", RecordType: "prime_contract", GeographyScope: "midlands"},
		},
	}
}

func placeLedger() *ledgers.PlaceLedger {
	return &ledgers.PlaceLedger{Areas: []ledgers.PlaceArea{
		{AreaCode: "E1", AreaName: "Birmingham", RegionName: "West Midlands", CountryName: "England", SupportedAsylum: 1500, SupportedAsylumRate: ptr(13.1), ContingencyAccommodation: 300},
		{AreaCode: "E2", AreaName: "Leicester", RegionName: "East Midlands", CountryName: "England", SupportedAsylum: 900, SupportedAsylumRate: ptr(24.0), ContingencyAccommodation: 50},
		{AreaCode: "E3", AreaName: "Nottingham", RegionName: "East Midlands", CountryName: "England", SupportedAsylum: 900, SupportedAsylumRate: ptr(30.0), ContingencyAccommodation: 50},
		{AreaCode: "E4", AreaName: "Manchester", RegionName: "North West", CountryName: "England", SupportedAsylum: 1500, ContingencyAccommodation: 300},
		{AreaCode: "W1", AreaName: "Cardiff", RegionName: "Wales", CountryName: "Wales", SupportedAsylum: 2000},
	}}
}

func TestContractCoverage(t *testing.T) {
	c, ok := analytics.ContractCoverage(primeProfile(), placeLedger())
	require.True(t, ok)

	assert.Equal(t, []string{"p1", "p2"}, c.RecordIDs)
	assert.Equal(t, []string{"East Midlands", "West Midlands", "North West", "Atlantis"}, c.Labels)
	assert.Equal(t, []string{"Atlantis"}, c.UnmatchedLabels)

	var names []string
	for _, a := range c.Areas {
		names = append(names, a.AreaName)
	}
	assert.Equal(t, []string{"Birmingham", "Manchester", "Nottingham", "Leicester"}, names)
	assert.Equal(t, "West Midlands", c.Areas[0].Label)
	assert.Equal(t, 4800, c.SupportedAsylumTotal)
	assert.Equal(t, 700, c.ContingencyAccommodationTotal)
}

func TestContractCoverageOnlyForPrimeProviders(t *testing.T) {
	p := primeProfile()
	p.PrimaryRole = "operator"
	c, ok := analytics.ContractCoverage(p, placeLedger())
	assert.False(t, ok)
	assert.Nil(t, c)
}

func TestAnalyze(t *testing.T) {
	r := analytics.Analyze(primeProfile(), placeLedger(), 3)
	require.NotNil(t, r.Coverage)
	assert.Len(t, r.Coverage.Areas, 4)
	assert.Empty(t, r.TopPlaces)
	assert.Empty(t, r.RegionalSpread)
}
