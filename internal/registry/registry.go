// Package registry holds the tools the host knows about and resolves the
// effective tool set for a run by merging explicit configuration with an
// optionally inherited profile.
package registry

import (
	"fmt"
	"sort"

	"github.com/lintgate/lintgate/internal/types"
)

// Registry is the set of all tools known to the host, keyed by id.
type Registry struct {
	byID map[string]types.ToolDescriptor
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byID: make(map[string]types.ToolDescriptor)}
}

// Register adds a tool. Registering a duplicate id is an error.
func (r *Registry) Register(d types.ToolDescriptor) error {
	if d.ID == "" {
		return fmt.Errorf("tool descriptor has empty id")
	}
	if _, ok := r.byID[d.ID]; ok {
		return fmt.Errorf("tool %q is already registered", d.ID)
	}
	r.byID[d.ID] = d
	return nil
}

// Lookup returns the descriptor for an exact id.
func (r *Registry) Lookup(id string) (types.ToolDescriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// All returns every registered descriptor sorted by id.
func (r *Registry) All() []types.ToolDescriptor {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]types.ToolDescriptor, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	return out
}
