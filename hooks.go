package ledgerlink

import (
	"sync"

	"github.com/agentstation/ledgerlink/pkg/profiles"
	"github.com/agentstation/ledgerlink/pkg/provenance"
)

// Hook function types for build events
type (
	// BuiltHook is called after a profile collection is built, not when one is served from cache
	BuiltHook func(fingerprint string, result *profiles.Result)

	// ConflictHook is called once per identity conflict in a fresh build
	ConflictHook func(conflict provenance.Conflict)
)

// hooks manages build callbacks
type hooks struct {
	mu         sync.RWMutex
	onBuilt    []BuiltHook
	onConflict []ConflictHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnBuilt registers a callback for fresh builds
func (h *hooks) OnBuilt(fn BuiltHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBuilt = append(h.onBuilt, fn)
}

// OnConflict registers a callback for identity conflicts
func (h *hooks) OnConflict(fn ConflictHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onConflict = append(h.onConflict, fn)
}

// triggerBuilt runs every hook for a fresh build
func (h *hooks) triggerBuilt(fingerprint string, result *profiles.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, fn := range h.onBuilt {
		fn(fingerprint, result)
	}
	for _, c := range result.Conflicts {
		for _, fn := range h.onConflict {
			fn(c)
		}
	}
}
