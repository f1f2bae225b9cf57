// Package constants provides shared constants used throughout the ledgerlink
// codebase: ledger vocabularies, scoring weights, limits and file permissions.
package constants

import "time"

// Ledger names used in errors and log fields.
const (
	LedgerSite  = "site"
	LedgerMoney = "money"
	LedgerPlace = "place"
)

// Default ledger file names inside a data directory.
const (
	SiteLedgerFile  = "sites.json"
	MoneyLedgerFile = "money.json"
	PlaceLedgerFile = "places.json"
)

// Route families and record types referenced by the matchers.
const (
	// RouteFamilyAsylumSupport marks money rows paid under the asylum support contracts
	RouteFamilyAsylumSupport = "asylum_support"

	// RecordTypePrimeContract marks the regional prime-provider contract rows
	RecordTypePrimeContract = "prime_contract"
)

// Profile score weights.
const (
	ScorePerCurrentSite           = 180
	ScorePerMoneyRecord           = 50
	ScorePerIntegritySignal       = 30
	ScorePerLinkedArea            = 20
	ScorePerUnresolvedCurrentSite = 40
)

// Trail score weights.
const (
	TrailBaseUnresolved     = 300
	TrailBasePartial        = 220
	TrailBaseResolved       = 160
	TrailDirectMatch        = 80
	TrailIndirectMatch      = 35
	TrailPerIntegritySignal = 20
	TrailSupportedDivisor   = 5
)

// Best-entity lookup weights.
const (
	LookupSiteMatch   = 30
	LookupRecordMatch = 50
	LookupPrimeRole   = 10
)

// Limit constants
const (
	// DefaultTopPlaces is the default number of linked places shown for an entity
	DefaultTopPlaces = 5

	// DefaultCacheTTL is how long a built profile collection stays cached
	DefaultCacheTTL = 10 * time.Minute

	// DefaultCacheCleanup is how often expired cache entries are purged
	DefaultCacheCleanup = 30 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
