package reactive

import (
	"fmt"

	"github.com/go-drift/reactivity/pkg/errors"
)

// CollectionHandler intercepts access to native collections. Every method
// receives the raw target; operations the target does not support are
// no-ops returning zero values.
type CollectionHandler interface {
	Get(target Collection, key Key) (any, bool)
	Set(target Collection, key Key, value any)
	Add(target Collection, value any)
	Has(target Collection, key Key) bool
	Delete(target Collection, key Key) bool
	Clear(target Collection)
	Size(target Collection) int
	Range(target Collection, fn func(key, value any) bool)
}

// collectionReads implements the read side shared by both modes. wrap
// converts values handed out to the caller.
type collectionReads struct {
	c    *Context
	wrap func(any) any
}

func (h collectionReads) value(v any) any {
	if isObject(v) {
		return h.wrap(v)
	}
	return v
}

func (h collectionReads) Get(target Collection, key Key) (any, bool) {
	keyed, ok := target.(Keyed)
	if !ok {
		return nil, false
	}
	key = h.c.ToRaw(key)
	h.c.Track(target, OpGet, key)
	v, ok := keyed.Get(key)
	return h.value(v), ok
}

func (h collectionReads) Has(target Collection, key Key) bool {
	key = h.c.ToRaw(key)
	h.c.Track(target, OpHas, key)
	return target.Has(key)
}

func (h collectionReads) Size(target Collection) int {
	it, ok := target.(Iterable)
	if !ok {
		return 0
	}
	h.c.Track(target, OpIterate, IterateKey)
	return it.Size()
}

func (h collectionReads) Range(target Collection, fn func(key, value any) bool) {
	it, ok := target.(Iterable)
	if !ok {
		return
	}
	h.c.Track(target, OpIterate, IterateKey)
	it.Range(func(k, v any) bool {
		return fn(h.value(k), h.value(v))
	})
}

type mutableCollectionHandler struct {
	collectionReads
}

func newMutableCollectionHandler(c *Context) *mutableCollectionHandler {
	return &mutableCollectionHandler{collectionReads{c: c, wrap: c.Reactive}}
}

func (h *mutableCollectionHandler) Set(target Collection, key Key, value any) {
	keyed, ok := target.(Keyed)
	if !ok {
		return
	}
	key, value = h.c.ToRaw(key), h.c.ToRaw(value)
	if !h.c.weakKeyOK("reactive.WeakMapProxy.Set", target, key) {
		return
	}
	old, had := keyed.Get(key)
	keyed.Set(key, value)
	if !keyed.Has(key) {
		return
	}
	if !had {
		h.c.Trigger(target, OpAdd, key)
	} else if hasChanged(old, value) {
		h.c.Trigger(target, OpSet, key)
	}
}

func (h *mutableCollectionHandler) Add(target Collection, value any) {
	add, ok := target.(Additive)
	if !ok {
		return
	}
	value = h.c.ToRaw(value)
	if !h.c.weakKeyOK("reactive.WeakSetProxy.Add", target, value) {
		return
	}
	had := add.Has(value)
	add.Add(value)
	if !had && add.Has(value) {
		h.c.Trigger(target, OpAdd, value)
	}
}

func (h *mutableCollectionHandler) Delete(target Collection, key Key) bool {
	key = h.c.ToRaw(key)
	ok := target.Delete(key)
	if ok {
		h.c.Trigger(target, OpDelete, key)
	}
	return ok
}

func (h *mutableCollectionHandler) Clear(target Collection) {
	it, ok := target.(Iterable)
	if !ok {
		return
	}
	hadItems := it.Size() > 0
	it.Clear()
	if hadItems {
		h.c.Trigger(target, OpClear, nil)
	}
}

type readonlyCollectionHandler struct {
	collectionReads
}

func newReadonlyCollectionHandler(c *Context) *readonlyCollectionHandler {
	return &readonlyCollectionHandler{collectionReads{c: c, wrap: c.Readonly}}
}

func (h *readonlyCollectionHandler) Set(target Collection, key Key, value any) {
	h.c.warnReadonly("reactive.MapProxy.Set", target, "set", key)
}

func (h *readonlyCollectionHandler) Add(target Collection, value any) {
	h.c.warnReadonly("reactive.SetProxy.Add", target, "add", value)
}

func (h *readonlyCollectionHandler) Delete(target Collection, key Key) bool {
	h.c.warnReadonly("reactive.Proxy.Delete", target, "delete", key)
	return false
}

func (h *readonlyCollectionHandler) Clear(target Collection) {
	h.c.warnReadonly("reactive.Proxy.Clear", target, "clear", nil)
}

// weakKeyOK reports whether key may be stored in target. Weak collections
// only hold targets; other keys are reported through the context instead
// of reaching the raw collection's global report.
func (c *Context) weakKeyOK(op string, target Collection, key Key) bool {
	switch target.Tag() {
	case TagWeakMap, TagWeakSet:
	default:
		return true
	}
	if _, ok := key.(Target); ok && isObject(key) {
		return true
	}
	c.warn(op, errors.KindInvalidKey, key,
		fmt.Errorf("invalid value used as weak collection key: %v", key))
	return false
}
