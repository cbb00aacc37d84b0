package status

import (
	"sync"

	"notpickedup/internal/pkg/errs"
)

// Registry is the host-global status registry. Registering a key again replaces
// its definition, so repeated startup registration is harmless.
type Registry struct {
	mu    sync.RWMutex
	order []Key
	defs  map[Key]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[Key]Definition)}
}

// Register stores def under its key. Registering a key again overwrites the
// earlier definition and keeps its position.
func (r *Registry) Register(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Key()]; !exists {
		r.order = append(r.order, def.Key())
	}
	r.defs[def.Key()] = def
	return nil
}

// Get returns the definition registered for key, or errs.ObjectNotFoundError.
func (r *Registry) Get(key Key) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[key]
	if !ok {
		return Definition{}, errs.NewObjectNotFoundError("status", key.String())
	}
	return def, nil
}

// All returns definitions in registration order.
func (r *Registry) All() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, key := range r.order {
		defs = append(defs, r.defs[key])
	}
	return defs
}
