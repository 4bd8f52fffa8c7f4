package reactive

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-drift/reactivity/pkg/errors"
)

// BaseHandler intercepts access to plain targets (objects and arrays).
// Every method receives the raw target.
type BaseHandler interface {
	Get(target Record, key Key) (any, bool)
	Set(target Record, key Key, value any) bool
	Has(target Record, key Key) bool
	DeleteProperty(target Record, key Key) bool
	OwnKeys(target Record) []Key
}

// mutableBaseHandler tracks reads, triggers writes and wraps nested values
// lazily on access.
type mutableBaseHandler struct {
	c *Context
}

func (h *mutableBaseHandler) Get(target Record, key Key) (any, bool) {
	v, ok := target.Get(key)
	h.c.Track(target, OpGet, key)
	if isObject(v) {
		return h.c.Reactive(v), ok
	}
	return v, ok
}

func (h *mutableBaseHandler) Set(target Record, key Key, value any) bool {
	value = h.c.ToRaw(value)
	old, had := target.Get(key)
	if !target.Set(key, value) {
		return false
	}
	if !had {
		h.c.Trigger(target, OpAdd, key)
	} else if hasChanged(old, value) {
		h.c.Trigger(target, OpSet, key)
	}
	return true
}

func (h *mutableBaseHandler) Has(target Record, key Key) bool {
	ok := target.Has(key)
	h.c.Track(target, OpHas, key)
	return ok
}

func (h *mutableBaseHandler) DeleteProperty(target Record, key Key) bool {
	had := target.Has(key)
	ok := target.Delete(key)
	if had && ok {
		h.c.Trigger(target, OpDelete, key)
	}
	return ok
}

func (h *mutableBaseHandler) OwnKeys(target Record) []Key {
	h.c.Track(target, OpIterate, IterateKey)
	return target.OwnKeys()
}

// readonlyBaseHandler tracks reads, wraps nested values read-only and
// refuses writes.
type readonlyBaseHandler struct {
	c *Context
}

func (h *readonlyBaseHandler) Get(target Record, key Key) (any, bool) {
	v, ok := target.Get(key)
	h.c.Track(target, OpGet, key)
	if isObject(v) {
		return h.c.Readonly(v), ok
	}
	return v, ok
}

func (h *readonlyBaseHandler) Set(target Record, key Key, value any) bool {
	h.c.warnReadonly("reactive.Proxy.Set", target, "set", key)
	return true
}

func (h *readonlyBaseHandler) Has(target Record, key Key) bool {
	ok := target.Has(key)
	h.c.Track(target, OpHas, key)
	return ok
}

func (h *readonlyBaseHandler) DeleteProperty(target Record, key Key) bool {
	h.c.warnReadonly("reactive.Proxy.Delete", target, "delete", key)
	return true
}

func (h *readonlyBaseHandler) OwnKeys(target Record) []Key {
	h.c.Track(target, OpIterate, IterateKey)
	return target.OwnKeys()
}

func (c *Context) warnReadonly(op string, target Target, verb string, key Key) {
	c.warn(op, errors.KindReadonly, target,
		fmt.Errorf("%s operation on key %v failed: target is readonly", verb, key))
}

// hasChanged reports whether a write of value over old is observable.
// Values of different or non-comparable types always count as changed; NaN
// does not differ from NaN.
func hasChanged(old, value any) bool {
	to, tv := reflect.TypeOf(old), reflect.TypeOf(value)
	if to != tv {
		return true
	}
	if to == nil {
		return false
	}
	if !to.Comparable() {
		return true
	}
	switch f := old.(type) {
	case float64:
		if math.IsNaN(f) {
			return !math.IsNaN(value.(float64))
		}
	case float32:
		if math.IsNaN(float64(f)) {
			return !math.IsNaN(float64(value.(float32)))
		}
	}
	return old != value
}
