// Package normalize derives identifiers and match keys from organisation
// names and company numbers. Identity is decided here and only here: two
// ledger rows describe the same organisation when they share a company number
// or, failing that, a normalized name.
package normalize

import "strings"

// Slugify lowercases name and collapses every run of characters outside
// [a-z0-9] into a single hyphen, trimming hyphens at either end.
func Slugify(name string) string {
	return collapse(name, '-')
}

// Name lowercases name and collapses every run of characters outside
// [a-z0-9] into a single space, trimming at either end.
func Name(name string) string {
	return collapse(name, ' ')
}

// EntityKey returns the lowercased company number when one is present and
// otherwise the normalized name. An empty result means the row carries no
// usable identity.
func EntityKey(name, companyNumber string) string {
	if cn := strings.ToLower(strings.TrimSpace(companyNumber)); cn != "" {
		return cn
	}
	return Name(name)
}

// NamesMatch reports whether two names refer to the same organisation for
// trail matching: equal after normalization, or one contained in the other.
func NamesMatch(a, b string) bool {
	na, nb := Name(a), Name(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}

func collapse(s string, sep byte) string {
	lower := strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(lower))
	pending := false
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte(sep)
			}
			pending = false
			b.WriteByte(c)
			continue
		}
		pending = true
	}
	return b.String()
}
