package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/ledgerlink/pkg/analytics"
	"github.com/agentstation/ledgerlink/pkg/profiles"
	"github.com/agentstation/ledgerlink/pkg/provenance"
)

func titles(v View) []string {
	var out []string
	for _, s := range Sections(v) {
		out = append(out, s.Title)
	}
	return out
}

func TestSections(t *testing.T) {
	p := &profiles.EntityProfile{EntityID: "sup_1", EntityName: "Mears Group"}

	v := View{Profile: p, Analytics: analytics.Analyze(p, nil, 5)}
	got := titles(v)
	assert.Equal(t, "Profile", got[0])
	assert.NotContains(t, got, "Current site coverage")
	assert.NotContains(t, got, "Contract coverage")
	assert.NotContains(t, got, "Provenance")

	v.Analytics.Exposure.CurrentSites = 1
	v.Analytics.Coverage = &analytics.CoverageOverlap{}
	v.Provenance = map[string][]provenance.Provenance{
		"entityName": {{Value: "Mears Group", Accepted: true}},
	}
	got = titles(v)
	assert.Contains(t, got, "Current site coverage")
	assert.Contains(t, got, "Contract coverage")
	assert.Contains(t, got, "Provenance")
}
