package table

import (
	"strconv"

	"github.com/agentstation/ledgerlink/pkg/trails"
)

// TrailsToTableData converts trails to table format. best holds the best
// matching entity name per trail, aligned by index; it may be shorter.
func TrailsToTableData(list []trails.Trail, best []string, wide bool) Data {
	headers := []string{"Site", "Area", "Coverage", "Match", "Lead Record", "Score"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "Prime Provider", "Supported", "Signals", "Entity")
		align = append(align, AlignLeft, AlignRight, AlignRight, AlignLeft)
	}

	rows := make([][]string, 0, len(list))
	for i := range list {
		t := &list[i]
		row := []string{
			Truncate(t.Title, 40),
			OrDash(t.AreaName),
			string(t.EntityCoverage),
			t.MatchType.String(),
			Truncate(OrDash(t.LeadRecordTitle), 40),
			strconv.Itoa(t.Score),
		}
		if wide {
			supported := "-"
			if t.HasPlaceStats {
				supported = strconv.Itoa(t.SupportedAsylum)
			}
			entity := "-"
			if i < len(best) {
				entity = OrDash(best[i])
			}
			row = append(row,
				OrDash(t.PrimeProvider),
				supported,
				strconv.Itoa(t.IntegritySignalCount),
				entity,
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}
