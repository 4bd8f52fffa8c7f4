package reactive

import "sync"

// Dep is the set of subscribers that read one key of one target.
type Dep map[Subscriber]struct{}

// KeyToDepMap holds the deps of every tracked key of a target.
type KeyToDepMap map[Key]Dep

// TargetMap stores {target -> key -> dep} connections. A slot is created
// when a target is first wrapped and lives as long as the raw target does.
//
// The outer map is safe for concurrent use. The KeyToDepMap values belong
// to the tracking layer and must be confined to one goroutine.
type TargetMap struct {
	mu      sync.Mutex
	entries map[any]KeyToDepMap
}

func newTargetMap() *TargetMap {
	return &TargetMap{entries: make(map[any]KeyToDepMap)}
}

// Get returns the slot for target.
func (m *TargetMap) Get(target Target) (KeyToDepMap, bool) {
	if target == nil || !isObject(target) {
		return nil, false
	}
	id := target.handle().id
	m.mu.Lock()
	defer m.mu.Unlock()
	deps, ok := m.entries[id]
	return deps, ok
}

// Has reports whether target has a slot.
func (m *TargetMap) Has(target Target) bool {
	_, ok := m.Get(target)
	return ok
}

// Ensure returns the slot for target, creating an empty one if needed.
func (m *TargetMap) Ensure(target Target) KeyToDepMap {
	if deps, ok := m.Get(target); ok {
		return deps
	}
	id := target.handle().id
	m.mu.Lock()
	deps, ok := m.entries[id]
	if !ok {
		deps = make(KeyToDepMap)
		m.entries[id] = deps
	}
	m.mu.Unlock()
	if !ok {
		target.onReclaim(func() {
			m.mu.Lock()
			delete(m.entries, id)
			m.mu.Unlock()
		})
	}
	return deps
}

// Len returns the number of slots.
func (m *TargetMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
