package ledgers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ledgerlink/pkg/ledgers"
)

func TestSiteIndex(t *testing.T) {
	idx := ledgers.NewSiteIndex(&ledgers.SiteLedger{Sites: []ledgers.Site{
		{SiteID: "a", SiteName: "First"},
		{SiteID: "a", SiteName: "Duplicate"},
		{SiteName: "No id"},
		{SiteID: "b", SiteName: "Second"},
	}})

	assert.Equal(t, 2, idx.Len())
	site, ok := idx.Get("a")
	require.True(t, ok)
	assert.Equal(t, "First", site.SiteName)

	_, ok = idx.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 0, ledgers.NewSiteIndex(nil).Len())
}

func TestPlaceIndexLookup(t *testing.T) {
	idx := ledgers.NewPlaceIndex(&ledgers.PlaceLedger{Areas: []ledgers.PlaceArea{
		{AreaCode: "E08000035", AreaName: "Leeds", SupportedAsylum: 10},
		{AreaCode: "E06000001", AreaName: "Hartlepool", SupportedAsylum: 20},
	}})

	t.Run("by code", func(t *testing.T) {
		area, ok := idx.Lookup("E06000001", "ignored")
		require.True(t, ok)
		assert.Equal(t, "Hartlepool", area.AreaName)
	})

	t.Run("falls back to name", func(t *testing.T) {
		area, ok := idx.Lookup("UNKNOWN", "LEEDS ")
		require.True(t, ok)
		assert.Equal(t, 10, area.SupportedAsylum)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok := idx.Lookup("", "Nowhere")
		assert.False(t, ok)
	})
}
