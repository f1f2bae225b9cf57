package differ

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ledgerlink/pkg/ledgers"
	"github.com/agentstation/ledgerlink/pkg/profiles"
)

func profile(id string, score int, sites ...string) profiles.EntityProfile {
	p := profiles.EntityProfile{
		EntityID:         id,
		EntityName:       "Entity " + id,
		PrimaryRole:      "owner_group",
		Roles:            []string{"owner_group"},
		CurrentSiteCount: len(sites),
		Score:            score,
	}
	for _, s := range sites {
		p.CurrentSites = append(p.CurrentSites, profiles.SiteBinding{SiteID: s, Status: ledgers.StatusCurrent})
	}
	return p
}

func TestProfilesNoChanges(t *testing.T) {
	list := []profiles.EntityProfile{profile("a", 10, "s1"), profile("b", 5)}

	cs := New().Profiles(list, list)

	assert.True(t, cs.IsEmpty())
	assert.False(t, cs.HasChanges())
	assert.Equal(t, "No changes detected", cs.String())
}

func TestProfilesAddedRemoved(t *testing.T) {
	existing := []profiles.EntityProfile{profile("b", 5), profile("a", 10)}
	updated := []profiles.EntityProfile{profile("c", 1), profile("a", 10)}

	cs := New().Profiles(existing, updated)

	require.Len(t, cs.Added, 1)
	assert.Equal(t, "c", cs.Added[0].EntityID)
	require.Len(t, cs.Removed, 1)
	assert.Equal(t, "b", cs.Removed[0].EntityID)
	assert.Empty(t, cs.Updated)
	assert.Equal(t, 2, cs.Summary.TotalChanges)
	assert.Equal(t, "Profiles: 1 added, 1 removed", cs.String())
}

func TestProfilesUpdated(t *testing.T) {
	value := 2500000.0
	prev := profile("a", 10, "s1", "s2")
	next := profile("a", 16, "s2", "s3", "s4")
	next.PublicContractValueGBP = &value

	cs := New().Profiles([]profiles.EntityProfile{prev}, []profiles.EntityProfile{next})

	require.Len(t, cs.Updated, 1)
	changes := cs.Updated[0].Changes
	assert.Contains(t, changes, FieldChange{Path: "currentSiteCount", OldValue: "2", NewValue: "3", Type: ChangeTypeUpdate})
	assert.Contains(t, changes, FieldChange{Path: "publicContractValueGbp", NewValue: "2500000", Type: ChangeTypeUpdate})
	assert.Contains(t, changes, FieldChange{Path: "score", OldValue: "10", NewValue: "16", Type: ChangeTypeUpdate})
	assert.Contains(t, changes, FieldChange{Path: "currentSites", NewValue: "s3", Type: ChangeTypeAdd})
	assert.Contains(t, changes, FieldChange{Path: "currentSites", NewValue: "s4", Type: ChangeTypeAdd})
	assert.Contains(t, changes, FieldChange{Path: "currentSites", OldValue: "s1", Type: ChangeTypeRemove})
	assert.Len(t, changes, 6)
	assert.Equal(t, 6, cs.Summary.FieldChanges)
}

func TestOptions(t *testing.T) {
	prev := profile("a", 10, "s1")
	next := profile("a", 12, "s2")

	t.Run("ignored fields", func(t *testing.T) {
		cs := New(WithIgnoredFields("score", "currentSites")).Profiles(
			[]profiles.EntityProfile{prev}, []profiles.EntityProfile{next})
		assert.True(t, cs.IsEmpty())
	})

	t.Run("membership disabled", func(t *testing.T) {
		cs := New(WithMembership(false)).Profiles(
			[]profiles.EntityProfile{prev}, []profiles.EntityProfile{next})
		require.Len(t, cs.Updated, 1)
		want := []FieldChange{{Path: "score", OldValue: "10", NewValue: "12", Type: ChangeTypeUpdate}}
		if diff := cmp.Diff(want, cs.Updated[0].Changes); diff != "" {
			t.Errorf("changes mismatch (-want +got):\n%s", diff)
		}
	})
}
