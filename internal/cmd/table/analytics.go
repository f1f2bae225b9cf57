package table

import (
	"fmt"
	"strconv"

	"github.com/agentstation/ledgerlink/pkg/analytics"
)

// ExposureToTableData renders the coverage breakdown of current sites.
func ExposureToTableData(e analytics.ExposureSummary) Data {
	rows := [][]string{
		{"Unresolved", strconv.Itoa(e.Unresolved), fmt.Sprintf("%d%%", e.UnresolvedPercent)},
		{"Partial", strconv.Itoa(e.Partial), fmt.Sprintf("%d%%", e.PartialPercent)},
		{"Resolved", strconv.Itoa(e.Resolved), fmt.Sprintf("%d%%", e.ResolvedPercent)},
	}
	return Data{
		Headers:         []string{"Coverage", "Sites", "Share"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight},
	}
}

// RegionsToTableData converts a regional spread to table format.
func RegionsToTableData(regions []analytics.RegionSpread) Data {
	rows := make([][]string, 0, len(regions))
	for _, r := range regions {
		rows = append(rows, []string{
			r.RegionName,
			OrDash(r.CountryName),
			strconv.Itoa(r.CurrentSiteCount),
			strconv.Itoa(r.HistoricalSiteCount),
			strconv.Itoa(r.NonResolvedCurrentSiteCount),
			strconv.Itoa(r.LinkedAreaCount),
			strconv.Itoa(r.SupportedAsylumTotal),
		})
	}
	return Data{
		Headers:         []string{"Region", "Country", "Current", "Historical", "Not Resolved", "Areas", "Supported"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight},
	}
}

// TimelineToTableData converts evidence events to table format.
func TimelineToTableData(t analytics.EvidenceTimeline) Data {
	rows := make([][]string, 0, len(t.Events))
	for _, e := range t.Events {
		rows = append(rows, []string{e.Date, string(e.Kind), Truncate(e.Title, 60)})
	}
	return Data{
		Headers: []string{"Date", "Kind", "Event"},
		Rows:    rows,
	}
}

// CoverageToTableData converts a contract coverage overlap to table format.
func CoverageToTableData(c *analytics.CoverageOverlap) Data {
	rows := make([][]string, 0, len(c.Areas))
	for _, a := range c.Areas {
		rows = append(rows, []string{
			a.Label,
			a.AreaName,
			OrDash(a.RegionName),
			strconv.Itoa(a.SupportedAsylum),
			FormatRate(a.SupportedAsylumRate),
			strconv.Itoa(a.ContingencyAccommodation),
		})
	}
	return Data{
		Headers:         []string{"Label", "Area", "Region", "Supported", "Rate", "Contingency"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight},
	}
}
