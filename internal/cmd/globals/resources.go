package globals

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/ledgerlink/internal/matcher"
)

// ResourceFlags holds flags for listing commands.
type ResourceFlags struct {
	Limit  int
	Search string
	Role   string

	search matcher.Matcher
}

// ParseResources extracts resource flags from a command.
// The command must have had AddResourceFlags called on it, otherwise this will panic.
func ParseResources(cmd *cobra.Command) *ResourceFlags {
	return &ResourceFlags{
		Limit:  mustGetInt(cmd, "limit"),
		Search: mustGetString(cmd, "search"),
		Role:   mustGetString(cmd, "role"),
	}
}

// AddResourceFlags adds listing flags to a command.
func AddResourceFlags(cmd *cobra.Command) *ResourceFlags {
	flags := &ResourceFlags{}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")
	cmd.Flags().StringVar(&flags.Search, "search", "",
		"Search term: plain text, glob (mears*) or regex (^company-)")
	cmd.Flags().StringVar(&flags.Role, "role", "",
		"Filter by role (e.g. owner_group, operator, prime_provider)")

	return flags
}

// Matches reports whether any text matches the search term, ignoring case.
// An empty search matches everything. A term that fails to compile as a
// pattern is matched as plain text.
func (f *ResourceFlags) Matches(text ...string) bool {
	if f.Search == "" {
		return true
	}
	if f.search == nil || f.search.Pattern() != f.Search {
		m, err := matcher.New(matcher.Auto, f.Search)
		if err != nil {
			m = matcher.MustNew(matcher.Substring, f.Search)
		}
		f.search = m
	}
	return f.search.MatchAny(text...)
}

// Apply truncates n results to the limit, returning the count to keep.
func (f *ResourceFlags) Apply(n int) int {
	if f.Limit > 0 && n > f.Limit {
		return f.Limit
	}
	return n
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
