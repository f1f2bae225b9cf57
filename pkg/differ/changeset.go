// Package differ compares two profile builds and reports what moved between
// them.
package differ

import (
	"fmt"
	"strings"

	"github.com/agentstation/ledgerlink/pkg/profiles"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates an item was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates an item was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates an item was removed.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific profile field.
type FieldChange struct {
	Path     string     `json:"path" yaml:"path"`                             // Field path (e.g., "currentSites")
	OldValue string     `json:"oldValue,omitempty" yaml:"oldValue,omitempty"` // Previous value (string representation)
	NewValue string     `json:"newValue,omitempty" yaml:"newValue,omitempty"` // New value (string representation)
	Type     ChangeType `json:"type" yaml:"type"`
}

// ProfileUpdate represents an update to a profile present in both builds.
type ProfileUpdate struct {
	EntityID   string        `json:"entityId" yaml:"entityId"`
	EntityName string        `json:"entityName" yaml:"entityName"`
	Changes    []FieldChange `json:"changes" yaml:"changes"`
}

// Changeset represents all profile changes between two builds.
type Changeset struct {
	Added   []profiles.EntityProfile `json:"added" yaml:"added"`
	Updated []ProfileUpdate          `json:"updated" yaml:"updated"`
	Removed []profiles.EntityProfile `json:"removed" yaml:"removed"`
	Summary ChangesetSummary         `json:"summary" yaml:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	Added        int `json:"added" yaml:"added"`
	Updated      int `json:"updated" yaml:"updated"`
	Removed      int `json:"removed" yaml:"removed"`
	FieldChanges int `json:"fieldChanges" yaml:"fieldChanges"`
	TotalChanges int `json:"totalChanges" yaml:"totalChanges"`
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return c.Summary.TotalChanges == 0
}

// calculateSummary computes the summary for a changeset.
func calculateSummary(c *Changeset) ChangesetSummary {
	fields := 0
	for _, u := range c.Updated {
		fields += len(u.Changes)
	}
	return ChangesetSummary{
		Added:        len(c.Added),
		Updated:      len(c.Updated),
		Removed:      len(c.Removed),
		FieldChanges: fields,
		TotalChanges: len(c.Added) + len(c.Updated) + len(c.Removed),
	}
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	if len(c.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(c.Added)))
	}
	if len(c.Updated) > 0 {
		parts = append(parts, fmt.Sprintf("%d updated (%d field changes)", len(c.Updated), c.Summary.FieldChanges))
	}
	if len(c.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", len(c.Removed)))
	}
	return "Profiles: " + strings.Join(parts, ", ")
}
