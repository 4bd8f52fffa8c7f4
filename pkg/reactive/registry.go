package reactive

import "sync"

// weakTable maps targets to targets without retaining either side. Entries
// are removed when the key is reclaimed; an entry whose value has been
// reclaimed reads as a miss.
type weakTable struct {
	mu      sync.Mutex
	entries map[any]func() any
}

func newWeakTable() *weakTable {
	return &weakTable{entries: make(map[any]func() any)}
}

func (t *weakTable) get(key any) (any, bool) {
	k, ok := key.(Target)
	if !ok || !isObject(key) {
		return nil, false
	}
	id := k.handle().id
	t.mu.Lock()
	value, ok := t.entries[id]
	t.mu.Unlock()
	if !ok {
		return nil, false
	}
	v := value()
	return v, v != nil
}

func (t *weakTable) has(key any) bool {
	_, ok := t.get(key)
	return ok
}

func (t *weakTable) set(key, value Target) {
	id := key.handle().id
	t.mu.Lock()
	_, existed := t.entries[id]
	t.entries[id] = value.handle().value
	t.mu.Unlock()
	if !existed {
		key.onReclaim(func() { t.remove(id) })
	}
}

func (t *weakTable) remove(id any) {
	t.mu.Lock()
	delete(t.entries, id)
	t.mu.Unlock()
}

// len returns the number of entries whose value is still alive.
func (t *weakTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, value := range t.entries {
		if value() != nil {
			n++
		}
	}
	return n
}

// weakSet is a membership set of targets that does not retain its members.
type weakSet struct {
	mu      sync.Mutex
	members map[any]struct{}
}

func newWeakSet() *weakSet {
	return &weakSet{members: make(map[any]struct{})}
}

func (s *weakSet) add(value Target) {
	id := value.handle().id
	s.mu.Lock()
	_, existed := s.members[id]
	s.members[id] = struct{}{}
	s.mu.Unlock()
	if !existed {
		value.onReclaim(func() {
			s.mu.Lock()
			delete(s.members, id)
			s.mu.Unlock()
		})
	}
}

func (s *weakSet) has(value any) bool {
	t, ok := value.(Target)
	if !ok || !isObject(value) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok = s.members[t.handle().id]
	return ok
}

func (s *weakSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}
