// Package save writes profile builds to files or writers for presentation
// layers that read a static snapshot instead of building in process.
package save

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/errors"
	"github.com/agentstation/ledgerlink/pkg/profiles"
	"github.com/agentstation/ledgerlink/pkg/provenance"
)

// Snapshot is one profile build with the fingerprint of its inputs.
type Snapshot struct {
	Fingerprint string                   `json:"fingerprint" yaml:"fingerprint"`
	Summary     string                   `json:"summary" yaml:"summary"`
	Stats       profiles.Stats           `json:"stats" yaml:"stats"`
	Profiles    []profiles.EntityProfile `json:"profiles" yaml:"profiles"`
	Conflicts   []provenance.Conflict    `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

// NewSnapshot captures a build result.
func NewSnapshot(fingerprint string, result *profiles.Result) *Snapshot {
	return &Snapshot{
		Fingerprint: fingerprint,
		Summary:     result.Summary(),
		Stats:       result.Stats,
		Profiles:    result.Profiles,
		Conflicts:   result.Conflicts,
	}
}

// Write encodes the snapshot to the configured writer, or to the configured
// path when no writer is set.
func Write(snap *Snapshot, opts ...Option) error {
	dest, err := resolve(opts)
	if err != nil {
		return err
	}

	data, err := dest.format.marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if dest.w != nil {
		_, err := dest.w.Write(data)
		return err
	}

	dir := filepath.Dir(dest.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	if err := os.WriteFile(dest.path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", dest.path, err)
	}
	return nil
}

// Read loads a snapshot previously written by Write. The format follows the
// file extension.
func Read(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("snapshot", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}

	format := FormatFromPath(path)
	var snap Snapshot
	if err := format.unmarshal(data, &snap); err != nil {
		return nil, errors.WrapParse(string(format), path, err)
	}
	return &snap, nil
}
