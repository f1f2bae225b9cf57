package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/ledgerlink/internal/matcher"
	"github.com/agentstation/ledgerlink/pkg/provenance"
)

// ProvenanceToTableData converts field history to table format.
// Shows all fields and their history in a single unified table.
func ProvenanceToTableData(fieldProvenance map[string][]provenance.Provenance) Data {
	var rows [][]string

	fields := make([]string, 0, len(fieldProvenance))
	for field := range fieldProvenance {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		history := fieldProvenance[field]
		if len(history) == 0 {
			continue
		}

		// Build order, oldest first
		sorted := make([]provenance.Provenance, len(history))
		copy(sorted, history)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Sequence < sorted[j].Sequence
		})

		// Arrow marks the value that survived
		kept := -1
		for i := range sorted {
			if sorted[i].Accepted {
				kept = i
			}
		}

		for i, entry := range sorted {
			fieldName := ""
			if i == 0 {
				fieldName = field
			}
			indicator := ""
			if i == kept {
				indicator = "→"
			}
			rows = append(rows, []string{
				fieldName,
				indicator,
				formatValueAsYAML(entry.Value),
				entry.Pass,
				entry.Ledger,
				OrDash(entry.Row),
				formatAccepted(entry.Accepted),
				entry.Reason,
			})
		}
	}

	return Data{
		Headers: []string{"Field", "Curr", "Value", "Pass", "Ledger", "Row", "Outcome", "Reason"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft,   // Field
			AlignCenter, // Curr
			AlignLeft,   // Value
			AlignLeft,   // Pass
			AlignLeft,   // Ledger
			AlignLeft,   // Row
			AlignLeft,   // Outcome
			AlignLeft,   // Reason
		},
	}
}

// ConflictsToTableData converts identity conflicts to table format.
func ConflictsToTableData(conflicts []provenance.Conflict) Data {
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{
			c.EntityKey,
			c.Field,
			formatValueAsYAML(c.Kept),
			formatValueAsYAML(c.Rejected),
			c.Pass,
			OrDash(c.Row),
		})
	}
	return Data{
		Headers: []string{"Entity Key", "Field", "Kept", "Rejected", "Pass", "Row"},
		Rows:    rows,
	}
}

// MatchField checks if a field matches any of the provided patterns.
// Supports wildcard matching (e.g., "company*" matches "companyNumber").
// Matching is case-insensitive.
func MatchField(field string, patterns []string) bool {
	mm, err := matcher.NewMultiMatcher(patterns, matcher.Glob)
	if err != nil {
		return false
	}
	return mm.Match(field)
}

// FilterFields keeps the fields matching any pattern.
func FilterFields(fieldProvenance map[string][]provenance.Provenance, patterns []string) map[string][]provenance.Provenance {
	if len(patterns) == 0 {
		return fieldProvenance
	}
	mm, err := matcher.NewMultiMatcher(patterns, matcher.Glob)
	if err != nil {
		return map[string][]provenance.Provenance{}
	}
	out := make(map[string][]provenance.Provenance)
	for field, history := range fieldProvenance {
		if mm.Match(field) {
			out[field] = history
		}
	}
	return out
}

// formatValueAsYAML formats a provenance value for display.
// Complex values are rendered as YAML, simple values as-is.
func formatValueAsYAML(val any) string {
	if val == nil {
		return "<nil>"
	}

	switch v := val.(type) {
	case string:
		if v == "" {
			return "<empty>"
		}
		return v
	case int, int64:
		return fmt.Sprintf("%d", v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%.2f", v)
	case bool:
		return fmt.Sprintf("%t", v)
	}

	yamlBytes, err := yaml.Marshal(val)
	if err != nil {
		return fmt.Sprintf("%v", val)
	}
	return strings.TrimSuffix(string(yamlBytes), "\n")
}

func formatAccepted(accepted bool) string {
	if accepted {
		return "kept"
	}
	return "rejected"
}
