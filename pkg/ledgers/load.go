package ledgers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/errors"
)

// Format is the serialization of a ledger file.
type Format string

// Supported ledger formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension; anything that is
// not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Set bundles the three ledgers a build consumes.
type Set struct {
	Sites  *SiteLedger
	Money  *MoneyLedger
	Places *PlaceLedger
}

// Paths locates the three ledger files.
type Paths struct {
	Site  string
	Money string
	Place string
}

// DefaultPaths returns the conventional file names inside dir.
func DefaultPaths(dir string) Paths {
	return Paths{
		Site:  filepath.Join(dir, constants.SiteLedgerFile),
		Money: filepath.Join(dir, constants.MoneyLedgerFile),
		Place: filepath.Join(dir, constants.PlaceLedgerFile),
	}
}

// Load reads all three ledgers. The first failure aborts the load.
func Load(paths Paths) (*Set, error) {
	sites, err := LoadSiteLedger(paths.Site)
	if err != nil {
		return nil, err
	}
	money, err := LoadMoneyLedger(paths.Money)
	if err != nil {
		return nil, err
	}
	places, err := LoadPlaceLedger(paths.Place)
	if err != nil {
		return nil, err
	}
	return &Set{Sites: sites, Money: money, Places: places}, nil
}

// LoadSiteLedger reads and validates a site ledger file.
func LoadSiteLedger(path string) (*SiteLedger, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSiteLedger(data, FormatFromPath(path))
}

// LoadMoneyLedger reads and validates a money ledger file.
func LoadMoneyLedger(path string) (*MoneyLedger, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMoneyLedger(data, FormatFromPath(path))
}

// LoadPlaceLedger reads and validates a place ledger file.
func LoadPlaceLedger(path string) (*PlaceLedger, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePlaceLedger(data, FormatFromPath(path))
}

// ParseSiteLedger validates and decodes a site ledger document.
func ParseSiteLedger(data []byte, format Format) (*SiteLedger, error) {
	var ledger SiteLedger
	if err := decode(constants.LedgerSite, data, format, &ledger); err != nil {
		return nil, err
	}
	return &ledger, nil
}

// ParseMoneyLedger validates and decodes a money ledger document.
func ParseMoneyLedger(data []byte, format Format) (*MoneyLedger, error) {
	var ledger MoneyLedger
	if err := decode(constants.LedgerMoney, data, format, &ledger); err != nil {
		return nil, err
	}
	return &ledger, nil
}

// ParsePlaceLedger validates and decodes a place ledger document.
func ParsePlaceLedger(data []byte, format Format) (*PlaceLedger, error) {
	var ledger PlaceLedger
	if err := decode(constants.LedgerPlace, data, format, &ledger); err != nil {
		return nil, err
	}
	return &ledger, nil
}

// ValidateFile runs only the structural check on a ledger file.
func ValidateFile(ledger, path string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	doc, err := toJSON(ledger, data, FormatFromPath(path))
	if err != nil {
		return err
	}
	return ValidateDocument(ledger, doc)
}

func decode(ledger string, data []byte, format Format, out any) error {
	doc, err := toJSON(ledger, data, format)
	if err != nil {
		return err
	}
	if err := ValidateDocument(ledger, doc); err != nil {
		return err
	}
	if err := json.Unmarshal(doc, out); err != nil {
		return errors.NewParseError(string(FormatJSON), ledger+" ledger", err.Error(), err)
	}
	return nil
}

// toJSON normalizes YAML input to JSON so a single schema and decoder
// serve both formats.
func toJSON(ledger string, data []byte, format Format) ([]byte, error) {
	if format != FormatYAML {
		return data, nil
	}
	doc, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, errors.NewParseError(string(FormatYAML), ledger+" ledger", err.Error(), err)
	}
	return doc, nil
}

func readFile(path string) ([]byte, error) {
	// Path comes from configuration, not request input
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}
