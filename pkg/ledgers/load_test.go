package ledgers_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/ledgerlink/pkg/errors"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
)

const siteJSON = `{
  "sites": [
    {
      "siteId": "site_1",
      "siteName": "Riverside Hotel",
      "areaName": "Leeds",
      "areaCode": "E08000035",
      "regionName": "Yorkshire and The Humber",
      "countryName": "England",
      "status": "current",
      "entityCoverage": "partial",
      "peopleHousedReported": 120,
      "entityLinks": [
        {"entityName": "Example Group Ltd", "companyNumber": "03929881", "linkRole": "owner_group",
         "sourceUrls": ["https://example.org/a"], "sourceTitles": ["Land registry title"]}
      ],
      "integritySignals": [{"signalId": "sig_1", "title": "Fire safety notice"}],
      "primeProvider": {"provider": "Mears", "regions": ["Yorkshire and The Humber"]}
    }
  ],
  "areas": []
}`

const moneyJSON = `{
  "records": [
    {"recordId": "rec_1", "recordType": "contract", "title": "Hotel block booking",
     "buyerName": "Home Office", "supplierName": "Mears Group", "valueGbp": null,
     "siteIds": ["site_1"]}
  ],
  "supplierProfiles": []
}`

const placeYAML = `
areas:
  - areaCode: E08000035
    areaName: Leeds
    regionName: Yorkshire and The Humber
    countryName: England
    supportedAsylum: 1520
    supportedAsylumRate: 18.4
    contingencyAccommodation: 310
`

func TestParseSiteLedger(t *testing.T) {
	ledger, err := ledgers.ParseSiteLedger([]byte(siteJSON), ledgers.FormatJSON)
	require.NoError(t, err)
	require.Len(t, ledger.Sites, 1)

	site := ledger.Sites[0]
	assert.Equal(t, "site_1", site.SiteID)
	assert.True(t, site.IsCurrent())
	assert.Equal(t, ledgers.CoveragePartial, site.EntityCoverage)
	require.NotNil(t, site.PeopleHousedReported)
	assert.Equal(t, 120, *site.PeopleHousedReported)
	require.Len(t, site.EntityLinks, 1)
	assert.Equal(t, "03929881", site.EntityLinks[0].CompanyNumber)
	require.NotNil(t, site.PrimeProvider)
	assert.Equal(t, "Mears", site.PrimeProvider.Provider)
}

func TestParseMoneyLedgerKeepsNullValue(t *testing.T) {
	ledger, err := ledgers.ParseMoneyLedger([]byte(moneyJSON), ledgers.FormatJSON)
	require.NoError(t, err)
	require.Len(t, ledger.Records, 1)
	assert.Nil(t, ledger.Records[0].ValueGBP)
	assert.True(t, ledger.Records[0].ReferencesSite("site_1"))
	assert.False(t, ledger.Records[0].ReferencesSite("site_2"))
}

func TestParsePlaceLedgerYAML(t *testing.T) {
	ledger, err := ledgers.ParsePlaceLedger([]byte(placeYAML), ledgers.FormatYAML)
	require.NoError(t, err)
	require.Len(t, ledger.Areas, 1)
	assert.Equal(t, 1520, ledger.Areas[0].SupportedAsylum)
	require.NotNil(t, ledger.Areas[0].SupportedAsylumRate)
	assert.InDelta(t, 18.4, *ledger.Areas[0].SupportedAsylumRate, 0.001)
}

func TestStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		parse   func() error
		ledger  string
		wantRow string
	}{
		{
			name: "missing sites array",
			parse: func() error {
				_, err := ledgers.ParseSiteLedger([]byte(`{"areas": []}`), ledgers.FormatJSON)
				return err
			},
			ledger: "site",
		},
		{
			name: "records is not an array",
			parse: func() error {
				_, err := ledgers.ParseMoneyLedger([]byte(`{"records": {}}`), ledgers.FormatJSON)
				return err
			},
			ledger: "money",
		},
		{
			name: "row of the wrong type",
			parse: func() error {
				_, err := ledgers.ParsePlaceLedger([]byte(`{"areas": [{"areaName": "Leeds"}, "Bradford"]}`), ledgers.FormatJSON)
				return err
			},
			ledger:  "place",
			wantRow: "areas.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse()
			require.Error(t, err)
			assert.True(t, pkgerrors.IsStructural(err))

			var ledgerErr *pkgerrors.LedgerError
			require.True(t, errors.As(err, &ledgerErr))
			assert.Equal(t, tt.ledger, ledgerErr.Ledger)
			assert.Equal(t, tt.wantRow, ledgerErr.Row)
		})
	}
}

func TestMalformedJSONIsStructural(t *testing.T) {
	_, err := ledgers.ParseSiteLedger([]byte(`{"sites": [`), ledgers.FormatJSON)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsStructural(err))
}

func TestRowsWithoutIdentityAreNotStructural(t *testing.T) {
	doc := `{"sites": [{"siteName": ""}, {}], "areas": []}`
	ledger, err := ledgers.ParseSiteLedger([]byte(doc), ledgers.FormatJSON)
	require.NoError(t, err)
	assert.Len(t, ledger.Sites, 2)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sites.json"), []byte(siteJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "money.json"), []byte(moneyJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "places.yaml"), []byte(placeYAML), 0o644))

	paths := ledgers.DefaultPaths(dir)
	paths.Place = filepath.Join(dir, "places.yaml")

	set, err := ledgers.Load(paths)
	require.NoError(t, err)
	assert.Len(t, set.Sites.Sites, 1)
	assert.Len(t, set.Money.Records, 1)
	assert.Len(t, set.Places.Areas, 1)

	require.NoError(t, ledgers.ValidateFile("place", paths.Place))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := ledgers.LoadSiteLedger(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var ioErr *pkgerrors.IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.False(t, pkgerrors.IsStructural(err))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, ledgers.FormatYAML, ledgers.FormatFromPath("a/places.YML"))
	assert.Equal(t, ledgers.FormatYAML, ledgers.FormatFromPath("places.yaml"))
	assert.Equal(t, ledgers.FormatJSON, ledgers.FormatFromPath("places.json"))
	assert.Equal(t, ledgers.FormatJSON, ledgers.FormatFromPath("places"))
}
