package reactive

// Key identifies a property of a record or an entry of a collection.
// Keys stored in the dependency map must be comparable.
type Key = any

// Target is a structured value that can be observed: one of the raw types
// of this package, a wrapper, or a host type embedding a raw type.
//
// The unexported methods close the set of shapes; a host type that embeds
// *Object shares the identity of the embedded object.
type Target interface {
	Tag() Tag
	handle() handle
	onReclaim(fn func())
}

// Record is implemented by plain targets (objects and arrays) and by their
// wrappers.
type Record interface {
	Target
	Get(key Key) (any, bool)
	Set(key Key, value any) bool
	Has(key Key) bool
	Delete(key Key) bool
	OwnKeys() []Key
}

// Collection is implemented by native collection targets and their
// wrappers. The capability interfaces below add the operations a specific
// collection supports.
type Collection interface {
	Target
	Has(key Key) bool
	Delete(key Key) bool
}

// Keyed is implemented by Map and WeakMap.
type Keyed interface {
	Collection
	Get(key Key) (any, bool)
	Set(key Key, value any)
}

// Additive is implemented by Set and WeakSet.
type Additive interface {
	Collection
	Add(value any)
}

// Iterable is implemented by Map and Set.
type Iterable interface {
	Collection
	Size() int
	Clear()
	Range(fn func(key, value any) bool)
}
