package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/agentstation/ledgerlink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "entity",
			ID:       "serco",
		}
		assert.Equal(t, "entity with ID serco not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("entity", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "ttl",
			Message: "must be positive",
		}
		assert.Equal(t, "validation failed for field ttl: must be positive", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
	})
}

func TestLedgerError(t *testing.T) {
	tests := []struct {
		name     string
		err      *pkgerrors.LedgerError
		expected string
	}{
		{
			name:     "document level",
			err:      &pkgerrors.LedgerError{Ledger: "site", Message: "sites is required"},
			expected: "site ledger: sites is required",
		},
		{
			name:     "row level",
			err:      &pkgerrors.LedgerError{Ledger: "money", Row: "records.4", Message: "expected object"},
			expected: "money ledger row records.4: expected object",
		},
		{
			name:     "row and field",
			err:      &pkgerrors.LedgerError{Ledger: "place", Row: "areas.0", Field: "supportedAsylum", Message: "expected number"},
			expected: "place ledger row areas.0 field supportedAsylum: expected number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, pkgerrors.IsStructural(tt.err))
			assert.False(t, pkgerrors.IsNotFound(tt.err))
		})
	}
}

func TestParseErrorIsStructural(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := pkgerrors.WrapParse("json", "sites.json", cause)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsStructural(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "sites.json")
}

func TestWrapHelpersNil(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("json", "x", nil))
	assert.NoError(t, pkgerrors.WrapLedger("site", nil))
}

func TestWrapIO(t *testing.T) {
	cause := errors.New("permission denied")
	err := pkgerrors.WrapIO("read", "/tmp/sites.json", cause)
	var ioErr *pkgerrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Operation)
	assert.Equal(t, "IO error during read of /tmp/sites.json: permission denied", err.Error())
}
