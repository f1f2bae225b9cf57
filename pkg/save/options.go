package save

import (
	"io"

	"github.com/agentstation/ledgerlink/pkg/errors"
)

// Option configures where and how Write stores a snapshot.
type Option func(*destination)

// destination is the resolved target of one Write call.
type destination struct {
	path   string
	w      io.Writer
	format Format
}

// WithPath writes the snapshot to a file, creating parent directories. The
// format follows the extension unless WithFormat is also given.
func WithPath(path string) Option {
	return func(d *destination) { d.path = path }
}

// WithWriter writes the snapshot to w instead of a file. It takes
// precedence over WithPath.
func WithWriter(w io.Writer) Option {
	return func(d *destination) { d.w = w }
}

// WithFormat forces the encoding regardless of option order or extension.
func WithFormat(f Format) Option {
	return func(d *destination) { d.format = f }
}

func resolve(opts []Option) (*destination, error) {
	d := &destination{}
	for _, opt := range opts {
		opt(d)
	}
	if d.w == nil && d.path == "" {
		return nil, errors.NewValidationError("path", "", "no path or writer configured for saving")
	}
	if d.format == "" {
		d.format = FormatFromPath(d.path)
	}
	if !d.format.valid() {
		return nil, errors.NewValidationError("format", string(d.format), "unsupported save format")
	}
	return d, nil
}
