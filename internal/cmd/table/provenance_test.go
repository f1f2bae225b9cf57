package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/ledgerlink/pkg/provenance"
)

func TestFilterFields(t *testing.T) {
	history := map[string][]provenance.Provenance{
		"entityName":    {{Field: "entityName", Value: "Mears Group"}},
		"companyNumber": {{Field: "companyNumber", Value: "03929881"}},
		"riskLevel":     {{Field: "riskLevel", Value: "medium"}},
	}

	assert.Len(t, FilterFields(history, nil), 3)

	got := FilterFields(history, []string{"ENTITY*", "risk?evel"})
	assert.Len(t, got, 2)
	assert.Contains(t, got, "entityName")
	assert.Contains(t, got, "riskLevel")

	assert.Empty(t, FilterFields(history, []string{"[bad"}))
	assert.True(t, MatchField("companyNumber", nil))
	assert.False(t, MatchField("companyNumber", []string{"entity*"}))
}
