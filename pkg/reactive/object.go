package reactive

import (
	"fmt"
	"slices"
	"strconv"
)

// Object is a plain record with string keys kept in insertion order.
// The zero value is an empty object; create it with NewObject or ObjectOf
// so it is heap allocated and can be reclaimed.
type Object struct {
	props map[string]any
	keys  []string
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{props: make(map[string]any)}
}

// ObjectOf creates an object holding props, with keys in sorted order.
func ObjectOf(props map[string]any) *Object {
	o := &Object{props: make(map[string]any, len(props))}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		o.Set(k, props[k])
	}
	return o
}

func (o *Object) Tag() Tag            { return TagObject }
func (o *Object) handle() handle      { return handleOf(o) }
func (o *Object) onReclaim(fn func()) { whenReclaimed(o, fn) }

// Get returns the property stored under key.
func (o *Object) Get(key Key) (any, bool) {
	name, ok := propertyKey(key)
	if !ok {
		return nil, false
	}
	v, ok := o.props[name]
	return v, ok
}

// Set stores value under key. It returns false when key cannot name a
// property.
func (o *Object) Set(key Key, value any) bool {
	name, ok := propertyKey(key)
	if !ok {
		return false
	}
	if o.props == nil {
		o.props = make(map[string]any)
	}
	if _, exists := o.props[name]; !exists {
		o.keys = append(o.keys, name)
	}
	o.props[name] = value
	return true
}

// Has reports whether key names a property.
func (o *Object) Has(key Key) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes the property. It reports whether the property existed.
func (o *Object) Delete(key Key) bool {
	name, ok := propertyKey(key)
	if !ok {
		return false
	}
	if _, exists := o.props[name]; !exists {
		return false
	}
	delete(o.props, name)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == name })
	return true
}

// OwnKeys returns the property names in insertion order.
func (o *Object) OwnKeys() []Key {
	keys := make([]Key, len(o.keys))
	for i, k := range o.keys {
		keys[i] = k
	}
	return keys
}

// Len returns the number of properties.
func (o *Object) Len() int {
	return len(o.keys)
}

// propertyKey converts key to a property name the way property access
// stringifies it.
func propertyKey(key Key) (string, bool) {
	switch k := key.(type) {
	case string:
		return k, true
	case int:
		return strconv.Itoa(k), true
	case int64:
		return strconv.FormatInt(k, 10), true
	case uint:
		return strconv.FormatUint(uint64(k), 10), true
	case fmt.Stringer:
		return k.String(), true
	}
	return "", false
}

// Array is a plain indexed record. Keys are indices (int or numeric
// strings) plus the "length" key.
type Array struct {
	elems []any
}

// LengthKey is the Array property that holds its length.
const LengthKey = "length"

// NewArray creates an array holding elems.
func NewArray(elems ...any) *Array {
	return &Array{elems: slices.Clone(elems)}
}

func (a *Array) Tag() Tag            { return TagArray }
func (a *Array) handle() handle      { return handleOf(a) }
func (a *Array) onReclaim(fn func()) { whenReclaimed(a, fn) }

// Get returns the element at the index named by key, or the length for
// LengthKey.
func (a *Array) Get(key Key) (any, bool) {
	if key == LengthKey {
		return len(a.elems), true
	}
	i, ok := arrayIndex(key)
	if !ok || i >= len(a.elems) {
		return nil, false
	}
	return a.elems[i], true
}

// Set stores value at the index named by key, growing the array as needed.
// Setting LengthKey to an int truncates or extends the array.
func (a *Array) Set(key Key, value any) bool {
	if key == LengthKey {
		n, ok := value.(int)
		if !ok || n < 0 {
			return false
		}
		a.resize(n)
		return true
	}
	i, ok := arrayIndex(key)
	if !ok {
		return false
	}
	if i >= len(a.elems) {
		a.resize(i + 1)
	}
	a.elems[i] = value
	return true
}

// Has reports whether key names an index in range, or is LengthKey.
func (a *Array) Has(key Key) bool {
	_, ok := a.Get(key)
	return ok
}

// Delete clears the element at the index named by key, leaving the length
// unchanged. LengthKey cannot be deleted.
func (a *Array) Delete(key Key) bool {
	i, ok := arrayIndex(key)
	if !ok || i >= len(a.elems) {
		return false
	}
	a.elems[i] = nil
	return true
}

// OwnKeys returns the indices followed by LengthKey.
func (a *Array) OwnKeys() []Key {
	keys := make([]Key, 0, len(a.elems)+1)
	for i := range a.elems {
		keys = append(keys, i)
	}
	return append(keys, LengthKey)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.elems)
}

// Values returns a copy of the elements.
func (a *Array) Values() []any {
	return slices.Clone(a.elems)
}

func (a *Array) resize(n int) {
	if n <= len(a.elems) {
		clear(a.elems[n:])
		a.elems = a.elems[:n]
		return
	}
	a.elems = append(a.elems, make([]any, n-len(a.elems))...)
}

func arrayIndex(key Key) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, k >= 0
	case string:
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || strconv.Itoa(i) != k {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
