package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/ledgerlink/pkg/normalize"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Serco Group plc", "serco-group-plc"},
		{"  Clearsprings Ready Homes Ltd.  ", "clearsprings-ready-homes-ltd"},
		{"Mears -- Group", "mears-group"},
		{"---", ""},
		{"Hôtel Ibis", "h-tel-ibis"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Slugify(tt.in))
		})
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "example group ltd", normalize.Name("Example Group, Ltd."))
	assert.Equal(t, "a b", normalize.Name("  A&B "))
	assert.Equal(t, "", normalize.Name("!!!"))
}

func TestEntityKey(t *testing.T) {
	t.Run("company number preferred", func(t *testing.T) {
		assert.Equal(t, "03929881", normalize.EntityKey("Example Group", "03929881"))
		assert.Equal(t, "03929881", normalize.EntityKey("Example Group Ltd", "03929881"))
	})

	t.Run("company number lowercased", func(t *testing.T) {
		assert.Equal(t, "sc123456", normalize.EntityKey("Scottish Co", "SC123456"))
	})

	t.Run("falls back to normalized name", func(t *testing.T) {
		assert.Equal(t, "acme ltd", normalize.EntityKey("ACME Ltd.", "  "))
	})

	t.Run("no identity", func(t *testing.T) {
		assert.Equal(t, "", normalize.EntityKey("", ""))
	})
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"equal after normalization", "SERCO", "serco", true},
		{"provider contained in supplier", "Serco", "Serco Group", true},
		{"supplier contained in provider", "Mears Group PLC", "Mears", true},
		{"different organisations", "Mears", "Serco", false},
		{"both empty", "", "", false},
		{"one empty", "Serco", "", false},
		{"punctuation only", "--", "Serco", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.NamesMatch(tt.a, tt.b))
		})
	}
}
