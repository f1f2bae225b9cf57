// Package provenance records which ledger row set each identity field of an
// entity during a build, and which competing values were turned away.
package provenance

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// Provenance is one write attempt on an entity field.
type Provenance struct {
	Sequence int    `json:"sequence" yaml:"sequence"` // Order of the attempt within the build
	Pass     string `json:"pass" yaml:"pass"`         // Builder pass, e.g. "supplier"
	Ledger   string `json:"ledger" yaml:"ledger"`     // Ledger the row came from
	Row      string `json:"row" yaml:"row"`           // Row identifier (supplier id, record id, site id)
	Field    string `json:"field" yaml:"field"`       // Field path, e.g. "companyNumber"
	Value    any    `json:"value" yaml:"value"`       // Offered value
	Accepted bool   `json:"accepted" yaml:"accepted"` // Whether the value was kept
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Map tracks provenance for many entities.
type Map map[string][]Provenance // key is "entityKey:field"

// Conflict is a rejected value that differed from the one kept.
type Conflict struct {
	EntityKey string `json:"entityKey" yaml:"entityKey"`
	Field     string `json:"field" yaml:"field"`
	Kept      any    `json:"kept" yaml:"kept"`
	Rejected  any    `json:"rejected" yaml:"rejected"`
	Pass      string `json:"pass" yaml:"pass"`
	Row       string `json:"row" yaml:"row"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Tracker manages provenance tracking during a build.
type Tracker interface {
	// Track records a write attempt for a field
	Track(entityKey, field string, p Provenance)

	// FindByField retrieves provenance for a specific field
	FindByField(entityKey, field string) []Provenance

	// FindByEntity retrieves all provenance for an entity
	FindByEntity(entityKey string) map[string][]Provenance

	// Rekey moves an entity's provenance to a new key
	Rekey(oldKey, newKey string)

	// Map returns a copy of the complete provenance map
	Map() Map

	// Clear removes all provenance data
	Clear()
}

type tracker struct {
	provenance Map
	enabled    bool
	seq        int
}

// NewTracker creates a new provenance tracker. A disabled tracker accepts
// calls and records nothing.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		provenance: make(Map),
		enabled:    enabled,
	}
}

// Track records a write attempt for a field.
func (p *tracker) Track(entityKey, field string, history Provenance) {
	if !p.enabled {
		return
	}
	p.seq++
	history.Sequence = p.seq
	history.Field = field
	key := makeKey(entityKey, field)
	p.provenance[key] = append(p.provenance[key], history)
}

// FindByField retrieves provenance for a specific field.
func (p *tracker) FindByField(entityKey, field string) []Provenance {
	if !p.enabled {
		return nil
	}
	return p.provenance[makeKey(entityKey, field)]
}

// FindByEntity retrieves all provenance for an entity.
func (p *tracker) FindByEntity(entityKey string) map[string][]Provenance {
	if !p.enabled {
		return nil
	}
	result := make(map[string][]Provenance)
	prefix := entityKey + ":"
	for key, info := range p.provenance {
		if field, found := strings.CutPrefix(key, prefix); found && !strings.Contains(field, ":") {
			result[field] = info
		}
	}
	return result
}

// Rekey moves an entity's provenance to a new key.
func (p *tracker) Rekey(oldKey, newKey string) {
	if !p.enabled || oldKey == newKey {
		return
	}
	for field, info := range p.FindByEntity(oldKey) {
		delete(p.provenance, makeKey(oldKey, field))
		nk := makeKey(newKey, field)
		merged := append(p.provenance[nk], info...)
		sort.SliceStable(merged, func(i, j int) bool { return merged[i].Sequence < merged[j].Sequence })
		p.provenance[nk] = merged
	}
}

// Map returns a copy of the complete provenance map.
func (p *tracker) Map() Map {
	if !p.enabled {
		return nil
	}
	result := make(Map, len(p.provenance))
	for k, v := range p.provenance {
		result[k] = append([]Provenance{}, v...)
	}
	return result
}

// Clear removes all provenance data.
func (p *tracker) Clear() {
	p.provenance = make(Map)
	p.seq = 0
}

func makeKey(entityKey, field string) string {
	return entityKey + ":" + field
}

// splitKey separates "entityKey:field". Entity keys never contain ':'
// because they are company numbers or normalized names.
func splitKey(key string) (entityKey, field string, ok bool) {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

// Conflicts lists every rejected value that differed from the value kept,
// ordered by entity key, field and sequence.
func (m Map) Conflicts() []Conflict {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Conflict
	for _, key := range keys {
		entityKey, field, ok := splitKey(key)
		if !ok {
			continue
		}
		kept := lastAccepted(m[key])
		if kept == nil {
			continue
		}
		for _, info := range m[key] {
			if info.Accepted || fmt.Sprint(info.Value) == fmt.Sprint(kept.Value) {
				continue
			}
			out = append(out, Conflict{
				EntityKey: entityKey,
				Field:     field,
				Kept:      kept.Value,
				Rejected:  info.Value,
				Pass:      info.Pass,
				Row:       info.Row,
				Reason:    info.Reason,
			})
		}
	}
	return out
}

// ForEntity returns the field history of the entity whose accepted
// entityId is entityID, keyed by field. It returns nil when no entity
// carries that id.
func (m Map) ForEntity(entityID string) map[string][]Provenance {
	var entityKey string
	for key, history := range m {
		ek, field, ok := splitKey(key)
		if !ok || field != "entityId" {
			continue
		}
		if last := lastAccepted(history); last != nil && fmt.Sprint(last.Value) == entityID {
			entityKey = ek
			break
		}
	}
	if entityKey == "" {
		return nil
	}
	result := make(map[string][]Provenance)
	for key, history := range m {
		if ek, field, ok := splitKey(key); ok && ek == entityKey {
			result[field] = history
		}
	}
	return result
}

func lastAccepted(history []Provenance) *Provenance {
	var kept *Provenance
	for i := range history {
		if history[i].Accepted {
			kept = &history[i]
		}
	}
	return kept
}

// String renders a human-readable provenance report.
func (m Map) String() string {
	var sb strings.Builder
	sb.WriteString("Provenance Report\n")
	sb.WriteString("=================\n\n")

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	current := ""
	for _, key := range keys {
		entityKey, field, ok := splitKey(key)
		if !ok {
			continue
		}
		if entityKey != current {
			if current != "" {
				sb.WriteString("\n")
			}
			sb.WriteString(entityKey + "\n")
			sb.WriteString(strings.Repeat("-", 40) + "\n")
			current = entityKey
		}
		sb.WriteString(fmt.Sprintf("  %s:\n", field))
		for _, info := range m[key] {
			mark := "rejected"
			if info.Accepted {
				mark = "kept"
			}
			sb.WriteString(fmt.Sprintf("    - %v (%s, %s pass, row %s)\n", info.Value, mark, info.Pass, info.Row))
		}
	}
	return sb.String()
}

// File is the on-disk provenance document.
type File struct {
	Provenance Map        `yaml:"provenance"`
	Conflicts  []Conflict `yaml:"conflicts,omitempty"`
}

// Write encodes the map and its conflicts as YAML.
func (m Map) Write(w io.Writer) error {
	data, err := yaml.Marshal(File{Provenance: m, Conflicts: m.Conflicts()})
	if err != nil {
		return fmt.Errorf("failed to encode provenance: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Load reads provenance data from a YAML file.
// Returns nil, nil if the file doesn't exist (not an error).
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read provenance file: %w", err)
	}

	var pf File
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse provenance file: %w", err)
	}
	return &pf, nil
}
