package ledgers

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/errors"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var schemaFiles = map[string]string{
	constants.LedgerSite:  "schemas/site.schema.json",
	constants.LedgerMoney: "schemas/money.schema.json",
	constants.LedgerPlace: "schemas/place.schema.json",
}

// ValidateDocument checks a JSON document against the top-level contract of
// the named ledger. Every violation found is reported; the first one is
// returned as a *errors.LedgerError wrapping the rest.
func ValidateDocument(ledger string, doc []byte) error {
	path, ok := schemaFiles[ledger]
	if !ok {
		return errors.NewValidationError("ledger", ledger, "unknown ledger")
	}
	schema, err := schemaFS.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return errors.NewLedgerError(ledger, "", "document is not valid JSON", err)
	}
	if result.Valid() {
		return nil
	}

	violations := result.Errors()
	first := violations[0]
	row, field := splitFieldPath(first.Field())
	ledgerErr := &errors.LedgerError{
		Ledger:  ledger,
		Row:     row,
		Field:   field,
		Message: first.Description(),
	}
	if len(violations) > 1 {
		msgs := make([]string, 0, len(violations)-1)
		for _, v := range violations[1:] {
			msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field(), v.Description()))
		}
		ledgerErr.Err = errors.New(strings.Join(msgs, "; "))
	}
	return ledgerErr
}

// splitFieldPath turns a schema error path such as "sites.3.entityLinks"
// into the row ("sites.3") and the field inside it ("entityLinks").
func splitFieldPath(path string) (row, field string) {
	if path == "" || path == "(root)" {
		return "", ""
	}
	parts := strings.Split(path, ".")
	if len(parts) >= 2 && isIndex(parts[1]) {
		return parts[0] + "." + parts[1], strings.Join(parts[2:], ".")
	}
	return "", path
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
