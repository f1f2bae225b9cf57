package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ledgerlink/pkg/ledgers"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("sites.json", `{"sites": []}`)
	write("money.json", `{"records": {}}`)
	write("places.yaml", "areas: []\n")

	checks := Run(ledgers.Paths{
		Site:  filepath.Join(dir, "sites.json"),
		Money: filepath.Join(dir, "money.json"),
		Place: filepath.Join(dir, "places.yaml"),
	})
	require.Len(t, checks, 3)

	assert.Equal(t, "site", checks[0].Ledger)
	assert.True(t, checks[0].Valid)
	assert.False(t, checks[1].Valid)
	assert.NotEmpty(t, checks[1].Error)
	assert.True(t, checks[2].Valid)

	data := toTable(checks)
	assert.Equal(t, "invalid", data.Rows[1][2])
}

func TestRunMissingFile(t *testing.T) {
	checks := Run(ledgers.DefaultPaths(t.TempDir()))
	for _, c := range checks {
		assert.False(t, c.Valid, c.Ledger)
	}
}
