// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/ledgerlink"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/ledgerlink/app implements this interface,
// providing dependency injection for commands while maintaining testability.
type Interface interface {
	// Cache returns the build cache, creating it lazily if needed.
	Cache() (*ledgerlink.Cache, error)

	// Ledgers returns the loaded ledger set, reading the files on first use.
	Ledgers() (*ledgers.Set, error)

	// LedgerPaths returns the configured ledger file locations.
	LedgerPaths() ledgers.Paths

	// TopPlaces returns how many linked places entity views rank.
	TopPlaces() int

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
