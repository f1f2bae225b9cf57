package table

import (
	"strconv"

	"github.com/agentstation/ledgerlink/pkg/profiles"
)

// ProfilesToTableData converts entity profiles to table format.
func ProfilesToTableData(list []profiles.EntityProfile, wide bool) Data {
	headers := []string{"Entity", "Name", "Role", "Current", "Historical", "Money", "Score"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight}
	if wide {
		headers = append(headers, "Company", "Risk", "Areas", "Signals", "Contract Value")
		align = append(align, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight)
	}

	rows := make([][]string, 0, len(list))
	for i := range list {
		p := &list[i]
		role := "-"
		if len(p.RoleLabels) > 0 {
			role = p.RoleLabels[0]
		}
		row := []string{
			p.EntityID,
			Truncate(p.EntityName, 40),
			role,
			strconv.Itoa(p.CurrentSiteCount),
			strconv.Itoa(p.HistoricalSiteCount),
			strconv.Itoa(p.MoneyRecordCount),
			strconv.Itoa(p.Score),
		}
		if wide {
			row = append(row,
				OrDash(p.CompanyNumber),
				OrDash(p.RiskLevel),
				strconv.Itoa(p.LinkedAreaCount),
				strconv.Itoa(p.IntegritySignalCount),
				FormatGBP(p.PublicContractValueGBP),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// ProfileToTableData renders one profile as a property/value table.
func ProfileToTableData(p *profiles.EntityProfile) Data {
	rows := [][]string{
		{"Entity ID", p.EntityID},
		{"Name", p.EntityName},
		{"Company Number", OrDash(p.CompanyNumber)},
		{"Roles", Join(p.RoleLabels)},
		{"Risk Level", OrDash(p.RiskLevel)},
		{"Route Families", Join(p.RouteFamilies)},
		{"Current Sites", strconv.Itoa(p.CurrentSiteCount)},
		{"Historical Sites", strconv.Itoa(p.HistoricalSiteCount)},
		{"Unresolved Current Sites", strconv.Itoa(p.UnresolvedCurrentSiteCount)},
		{"Money Records", strconv.Itoa(p.MoneyRecordCount)},
		{"Integrity Signals", strconv.Itoa(p.IntegritySignalCount)},
		{"Linked Areas", strconv.Itoa(p.LinkedAreaCount)},
		{"Contract Value", FormatGBP(p.PublicContractValueGBP)},
		{"Score", strconv.Itoa(p.Score)},
		{"Description", p.Description},
	}
	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// SitesToTableData converts site bindings to table format.
func SitesToTableData(sites []profiles.SiteBinding) Data {
	rows := make([][]string, 0, len(sites))
	for i := range sites {
		s := &sites[i]
		rows = append(rows, []string{
			s.SiteID,
			Truncate(s.SiteName, 40),
			OrDash(s.AreaName),
			string(s.Status),
			string(s.EntityCoverage),
			Join(s.RoleLabels),
			strconv.Itoa(s.IntegritySignalCount),
		})
	}
	return Data{
		Headers:         []string{"Site", "Name", "Area", "Status", "Coverage", "Roles", "Signals"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight},
	}
}

// AreasToTableData converts linked areas to table format.
func AreasToTableData(areas []profiles.LinkedArea) Data {
	rows := make([][]string, 0, len(areas))
	for i := range areas {
		a := &areas[i]
		supported, contingency := "-", "-"
		if a.HasPlaceStats {
			supported = strconv.Itoa(a.SupportedAsylum)
			contingency = strconv.Itoa(a.ContingencyAccommodation)
		}
		rows = append(rows, []string{
			a.AreaName,
			OrDash(a.RegionName),
			strconv.Itoa(a.CurrentSiteCount),
			supported,
			FormatRate(a.SupportedAsylumRate),
			contingency,
		})
	}
	return Data{
		Headers:         []string{"Area", "Region", "Current", "Supported", "Rate", "Contingency"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight},
	}
}
