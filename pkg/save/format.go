package save

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format is the encoding of a saved snapshot.
type Format string

// Supported snapshot encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml and .yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func (f Format) valid() bool {
	return f == FormatJSON || f == FormatYAML
}

func (f Format) marshal(snap *Snapshot) ([]byte, error) {
	if f == FormatYAML {
		return yaml.MarshalWithOptions(snap, yaml.Indent(2), yaml.IndentSequence(false))
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (f Format) unmarshal(data []byte, snap *Snapshot) error {
	if f == FormatYAML {
		return yaml.Unmarshal(data, snap)
	}
	return json.Unmarshal(data, snap)
}
