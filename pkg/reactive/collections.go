package reactive

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/go-drift/reactivity/pkg/errors"
)

// hashable reports whether key can be used as a Go map key without
// panicking.
func hashable(key Key) bool {
	if key == nil {
		return true
	}
	return reflect.TypeOf(key).Comparable()
}

// Map is a keyed collection that iterates in insertion order. Keys must be
// comparable; other keys are ignored.
type Map struct {
	entries map[any]any
	order   []any
}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{entries: make(map[any]any)}
}

func (m *Map) Tag() Tag            { return TagMap }
func (m *Map) handle() handle      { return handleOf(m) }
func (m *Map) onReclaim(fn func()) { whenReclaimed(m, fn) }

func (m *Map) Get(key Key) (any, bool) {
	if !hashable(key) {
		return nil, false
	}
	v, ok := m.entries[key]
	return v, ok
}

func (m *Map) Set(key Key, value any) {
	if !hashable(key) {
		return
	}
	if m.entries == nil {
		m.entries = make(map[any]any)
	}
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = value
}

func (m *Map) Has(key Key) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *Map) Delete(key Key) bool {
	if !m.Has(key) {
		return false
	}
	delete(m.entries, key)
	m.order = slices.DeleteFunc(m.order, func(k any) bool { return k == key })
	return true
}

func (m *Map) Size() int { return len(m.order) }

func (m *Map) Clear() {
	clear(m.entries)
	m.order = nil
}

// Range calls fn for each entry in insertion order until fn returns false.
// Entries added during iteration are not visited.
func (m *Map) Range(fn func(key, value any) bool) {
	for _, k := range slices.Clone(m.order) {
		v, ok := m.entries[k]
		if !ok {
			continue
		}
		if !fn(k, v) {
			return
		}
	}
}

// Set is a collection of unique comparable values in insertion order.
type Set struct {
	members map[any]struct{}
	order   []any
}

// NewSet creates a set holding values.
func NewSet(values ...any) *Set {
	s := &Set{members: make(map[any]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s *Set) Tag() Tag            { return TagSet }
func (s *Set) handle() handle      { return handleOf(s) }
func (s *Set) onReclaim(fn func()) { whenReclaimed(s, fn) }

func (s *Set) Add(value any) {
	if !hashable(value) || s.Has(value) {
		return
	}
	if s.members == nil {
		s.members = make(map[any]struct{})
	}
	s.members[value] = struct{}{}
	s.order = append(s.order, value)
}

func (s *Set) Has(value Key) bool {
	if !hashable(value) {
		return false
	}
	_, ok := s.members[value]
	return ok
}

func (s *Set) Delete(value Key) bool {
	if !s.Has(value) {
		return false
	}
	delete(s.members, value)
	s.order = slices.DeleteFunc(s.order, func(v any) bool { return v == value })
	return true
}

func (s *Set) Size() int { return len(s.order) }

func (s *Set) Clear() {
	clear(s.members)
	s.order = nil
}

// Range calls fn(value, value) for each member in insertion order until fn
// returns false.
func (s *Set) Range(fn func(key, value any) bool) {
	for _, v := range slices.Clone(s.order) {
		if _, ok := s.members[v]; !ok {
			continue
		}
		if !fn(v, v) {
			return
		}
	}
}

// weakKeyOf returns the weak identity of a weak collection key. Only
// targets can be held weakly.
func weakKeyOf(op string, key Key) (Target, any, bool) {
	t, ok := key.(Target)
	if !ok || !isObject(key) {
		errors.Report(&errors.ReactiveError{
			Op:     op,
			Kind:   errors.KindInvalidKey,
			Target: TypeString(key),
			Err:    fmt.Errorf("invalid value used as weak collection key: %v", key),
		})
		return nil, nil, false
	}
	return t, t.handle().id, true
}

// WeakMap associates values with target keys without keeping the keys
// alive. An entry disappears once its key is reclaimed. A value that
// references its own key keeps the entry alive.
type WeakMap struct {
	mu      sync.Mutex
	entries map[any]any
}

// NewWeakMap creates an empty weak map.
func NewWeakMap() *WeakMap {
	return &WeakMap{entries: make(map[any]any)}
}

func (m *WeakMap) Tag() Tag            { return TagWeakMap }
func (m *WeakMap) handle() handle      { return handleOf(m) }
func (m *WeakMap) onReclaim(fn func()) { whenReclaimed(m, fn) }

func (m *WeakMap) Get(key Key) (any, bool) {
	t, ok := key.(Target)
	if !ok {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[t.handle().id]
	return v, ok
}

// Set stores value under key. Keys that are not targets are reported as
// KindInvalidKey to the global handler and ignored; writes through a
// wrapper report to the wrapper's Context instead.
func (m *WeakMap) Set(key Key, value any) {
	t, id, ok := weakKeyOf("reactive.WeakMap.Set", key)
	if !ok {
		return
	}
	m.mu.Lock()
	if m.entries == nil {
		m.entries = make(map[any]any)
	}
	_, exists := m.entries[id]
	m.entries[id] = value
	m.mu.Unlock()
	if !exists {
		t.onReclaim(func() { m.remove(id) })
	}
}

func (m *WeakMap) Has(key Key) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *WeakMap) Delete(key Key) bool {
	t, ok := key.(Target)
	if !ok {
		return false
	}
	return m.remove(t.handle().id)
}

// Len returns the number of live entries.
func (m *WeakMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *WeakMap) remove(id any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return false
	}
	delete(m.entries, id)
	return true
}

// WeakSet holds target members without keeping them alive.
type WeakSet struct {
	mu      sync.Mutex
	members map[any]struct{}
}

// NewWeakSet creates an empty weak set.
func NewWeakSet() *WeakSet {
	return &WeakSet{members: make(map[any]struct{})}
}

func (s *WeakSet) Tag() Tag            { return TagWeakSet }
func (s *WeakSet) handle() handle      { return handleOf(s) }
func (s *WeakSet) onReclaim(fn func()) { whenReclaimed(s, fn) }

// Add inserts value. Values that are not targets are reported as
// KindInvalidKey to the global handler and ignored; writes through a
// wrapper report to the wrapper's Context instead.
func (s *WeakSet) Add(value any) {
	t, id, ok := weakKeyOf("reactive.WeakSet.Add", value)
	if !ok {
		return
	}
	s.mu.Lock()
	if s.members == nil {
		s.members = make(map[any]struct{})
	}
	_, exists := s.members[id]
	s.members[id] = struct{}{}
	s.mu.Unlock()
	if !exists {
		t.onReclaim(func() { s.remove(id) })
	}
}

func (s *WeakSet) Has(value Key) bool {
	t, ok := value.(Target)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok = s.members[t.handle().id]
	return ok
}

func (s *WeakSet) Delete(value Key) bool {
	t, ok := value.(Target)
	if !ok {
		return false
	}
	return s.remove(t.handle().id)
}

// Len returns the number of live members.
func (s *WeakSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

func (s *WeakSet) remove(id any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return false
	}
	delete(s.members, id)
	return true
}
