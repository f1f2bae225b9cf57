package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/ledgerlink"
	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
	"github.com/agentstation/ledgerlink/pkg/logging"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	CacheFunc        func() (*ledgerlink.Cache, error)
	LedgersFunc      func() (*ledgers.Set, error)
	LedgerPathsFunc  func() ledgers.Paths
	TopPlacesFunc    func() int
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Cache returns a cache using the mock function or a fresh default cache.
func (m *Mock) Cache() (*ledgerlink.Cache, error) {
	if m.CacheFunc != nil {
		return m.CacheFunc()
	}
	return ledgerlink.New()
}

// Ledgers returns a ledger set using the mock function or nil.
func (m *Mock) Ledgers() (*ledgers.Set, error) {
	if m.LedgersFunc != nil {
		return m.LedgersFunc()
	}
	return nil, nil
}

// LedgerPaths returns ledger paths using the mock function or the defaults
// for the working directory.
func (m *Mock) LedgerPaths() ledgers.Paths {
	if m.LedgerPathsFunc != nil {
		return m.LedgerPathsFunc()
	}
	return ledgers.DefaultPaths(".")
}

// TopPlaces returns the ranking size using the mock function or the default.
func (m *Mock) TopPlaces() int {
	if m.TopPlacesFunc != nil {
		return m.TopPlacesFunc()
	}
	return constants.DefaultTopPlaces
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns the version using the mock function or "test".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "test"
}

// Commit returns the commit using the mock function or "test".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "test"
}

// Date returns the date using the mock function or "test".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "test"
}

// BuiltBy returns the builder using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

var _ Interface = (*Mock)(nil)
