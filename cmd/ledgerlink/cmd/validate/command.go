// Package validate implements the validate command.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/ledgerlink/internal/appcontext"
	"github.com/agentstation/ledgerlink/internal/cmd/output"
	"github.com/agentstation/ledgerlink/internal/cmd/table"
	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
)

// Check is the validation outcome of one ledger file.
type Check struct {
	Ledger string `json:"ledger" yaml:"ledger"`
	Path   string `json:"path" yaml:"path"`
	Valid  bool   `json:"valid" yaml:"valid"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewCommand creates the validate command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		GroupID: "management",
		Short:   "Check the structure of the three ledger files",
		Long: `Validate checks each ledger file against its schema: the top-level
collections must exist and every row must be an object with the expected
field types. Rows missing identity are not reported; builds skip them.`,
		Args: cobra.NoArgs,
		Example: `  ledgerlink validate
  ledgerlink validate --data-dir ./data
  ledgerlink validate --money-ledger money.yaml -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checks := Run(app.LedgerPaths())

			err := output.Render(cmd.OutOrStdout(), app.OutputFormat(), checks, func(bool) any {
				return toTable(checks)
			})
			if err != nil {
				return err
			}

			failed := 0
			for _, c := range checks {
				if !c.Valid {
					failed++
					app.Logger().Error().Str("ledger", c.Ledger).Str("path", c.Path).Msg(c.Error)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d ledgers failed validation", failed, len(checks))
			}
			return nil
		},
	}
}

// Run validates every ledger file and reports each outcome.
func Run(paths ledgers.Paths) []Check {
	files := []struct {
		ledger string
		path   string
	}{
		{constants.LedgerSite, paths.Site},
		{constants.LedgerMoney, paths.Money},
		{constants.LedgerPlace, paths.Place},
	}

	checks := make([]Check, 0, len(files))
	for _, f := range files {
		check := Check{Ledger: f.ledger, Path: f.path, Valid: true}
		if err := ledgers.ValidateFile(f.ledger, f.path); err != nil {
			check.Valid = false
			check.Error = err.Error()
		}
		checks = append(checks, check)
	}
	return checks
}

func toTable(checks []Check) table.Data {
	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		status := "ok"
		if !c.Valid {
			status = "invalid"
		}
		rows = append(rows, []string{c.Ledger, c.Path, status, table.OrDash(c.Error)})
	}
	return table.Data{
		Headers: []string{"Ledger", "Path", "Status", "Error"},
		Rows:    rows,
	}
}
