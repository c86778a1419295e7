package page

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps page IDs to constructors
type Registry struct {
	mu    sync.RWMutex
	ctors map[ID]Constructor
}

// NewRegistry - creates an empty registry
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[ID]Constructor)}
}

// DefaultRegistry - registry with every page of the login flow
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(LoginID, newLoginPage)
	r.MustRegister(HomeID, newHomePage)
	r.MustRegister(PasswordRecoverID, newPasswordRecoverPage)
	return r
}

// Register - adds a constructor; IDs may be registered once
func (r *Registry) Register(id ID, ctor Constructor) error {
	if id == "" || ctor == nil {
		return fmt.Errorf("page id and constructor are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[id]; ok {
		return fmt.Errorf("page %q already registered", id)
	}
	r.ctors[id] = ctor
	return nil
}

// MustRegister - Register that panics on error
func (r *Registry) MustRegister(id ID, ctor Constructor) {
	if err := r.Register(id, ctor); err != nil {
		panic(err)
	}
}

func (r *Registry) lookup(id ID) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[id]
	return ctor, ok
}

// IDs - registered IDs in sorted order
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ID, 0, len(r.ctors))
	for id := range r.ctors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
