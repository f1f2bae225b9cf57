package table

import (
	"strconv"

	"github.com/agentstation/ledgerlink/pkg/differ"
)

// ChangesetToTableData lists one row per added or removed profile and one row
// per field change on updated profiles. Narrow output folds each update into
// a single row with the changed field paths.
func ChangesetToTableData(cs *differ.Changeset, wide bool) Data {
	headers := []string{"Change", "Entity", "Name", "Detail"}
	if wide {
		headers = []string{"Change", "Entity", "Name", "Field", "Old", "New"}
	}

	var rows [][]string
	for i := range cs.Added {
		p := &cs.Added[i]
		rows = append(rows, pad([]string{"added", p.EntityID, Truncate(p.EntityName, 40), "score " + strconv.Itoa(p.Score)}, len(headers)))
	}
	for _, u := range cs.Updated {
		if !wide {
			paths := make([]string, 0, len(u.Changes))
			seen := map[string]bool{}
			for _, c := range u.Changes {
				if !seen[c.Path] {
					seen[c.Path] = true
					paths = append(paths, c.Path)
				}
			}
			rows = append(rows, []string{"updated", u.EntityID, Truncate(u.EntityName, 40), Truncate(Join(paths), 60)})
			continue
		}
		for _, c := range u.Changes {
			rows = append(rows, []string{string(c.Type), u.EntityID, Truncate(u.EntityName, 40), c.Path, OrDash(c.OldValue), OrDash(c.NewValue)})
		}
	}
	for i := range cs.Removed {
		p := &cs.Removed[i]
		rows = append(rows, pad([]string{"removed", p.EntityID, Truncate(p.EntityName, 40), "score " + strconv.Itoa(p.Score)}, len(headers)))
	}

	return Data{Headers: headers, Rows: rows}
}

// ChangesetSummaryToTableData renders the changeset counts.
func ChangesetSummaryToTableData(cs *differ.Changeset) Data {
	s := cs.Summary
	return Data{
		Headers:         []string{"Added", "Updated", "Removed", "Field Changes"},
		Rows:            [][]string{{strconv.Itoa(s.Added), strconv.Itoa(s.Updated), strconv.Itoa(s.Removed), strconv.Itoa(s.FieldChanges)}},
		ColumnAlignment: []Align{AlignRight, AlignRight, AlignRight, AlignRight},
	}
}

func pad(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "-")
	}
	return row
}
