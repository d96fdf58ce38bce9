package assets

import "sync"

// registryKey is the canonical identity of a registered instrument.
type registryKey struct {
	kind Kind
	name string
}

// Registry is the canonical identity cache for instruments. Constructing an
// instrument whose (kind, canonical name) is already registered returns the
// existing instance and re-applies the supplied price; see getOrReprice.
//
// A Registry holds its entries for its own lifetime; there is no eviction.
// Use separate registries to isolate tests.
type Registry struct {
	mu     sync.Mutex
	assets map[registryKey]Asset
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{assets: make(map[registryKey]Asset)}
}

// getOrReprice is the single upsert-on-construct path behind every
// instrument constructor. The lookup and insert happen under one lock so
// concurrent construction of the same name cannot create duplicates. On a
// cache hit only the price is re-applied: the existing instance keeps its
// other fields. All naming and validation happens before this is called, so
// a failed construction never touches the registry.
func (r *Registry) getOrReprice(kind Kind, name string, price Price, create func() Asset) Asset {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{kind: kind, name: name}
	a, ok := r.assets[key]
	if !ok {
		a = create()
		r.assets[key] = a
	}
	a.SetPrice(price)
	return a
}

// Lookup returns the registered instrument for the given kind and canonical
// name, if any.
func (r *Registry) Lookup(kind Kind, name string) (Asset, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[registryKey{kind: kind, name: name}]
	return a, ok
}

// Len returns the number of registered instruments.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.assets)
}

// All returns a snapshot of every registered instrument.
func (r *Registry) All() []Asset {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Asset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, a)
	}
	return out
}

// Reset drops every registered instrument.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = make(map[registryKey]Asset)
}
