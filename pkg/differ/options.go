package differ

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithIgnoredFields sets field paths to ignore during comparison.
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}

// WithMembership enables per-element changes for site, record and area
// membership. When disabled only the counts are compared.
func WithMembership(enabled bool) Option {
	return func(d *differ) {
		d.membership = enabled
	}
}
