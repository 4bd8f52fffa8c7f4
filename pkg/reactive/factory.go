package reactive

import (
	"fmt"

	"github.com/go-drift/reactivity/pkg/errors"
)

type mode uint8

const (
	modeReactive mode = iota
	modeReadonly
)

func (m mode) String() string {
	if m == modeReadonly {
		return "readonly"
	}
	return "reactive"
}

func (m mode) op() string {
	if m == modeReadonly {
		return "reactive.Readonly"
	}
	return "reactive.Reactive"
}

// Reactive returns the mutable wrapper of target, creating it on first use.
// A read-only wrapper is returned unchanged, a value marked read-only gets
// its read-only wrapper, and values that cannot be observed are returned
// as they are.
func (c *Context) Reactive(target any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reactive(target)
}

// Readonly returns the read-only wrapper of target, creating it on first
// use. A mutable wrapper is resolved to its raw value first.
func (c *Context) Readonly(target any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readonly(target)
}

func (c *Context) reactive(target any) any {
	// if trying to observe a read-only wrapper, return it as is.
	if c.readonlyToRaw.has(target) {
		return target
	}
	if c.readonlyValues.has(target) {
		return c.readonly(target)
	}
	return c.createWrapper(target, c.rawToReactive, c.reactiveToRaw,
		c.mutableBase, c.mutableCollection, modeReactive)
}

func (c *Context) readonly(target any) any {
	if raw, ok := c.reactiveToRaw.get(target); ok {
		target = raw
	}
	return c.createWrapper(target, c.rawToReadonly, c.readonlyToRaw,
		c.readonlyBase, c.readonlyCollection, modeReadonly)
}

func (c *Context) createWrapper(
	target any,
	toWrapper, toRaw *weakTable,
	base BaseHandler,
	collection CollectionHandler,
	m mode,
) any {
	if !isObject(target) {
		c.stats.invalid.Add(1)
		c.warn(m.op(), errors.KindInvalidTarget, target,
			fmt.Errorf("value cannot be made %s: %v", m, target))
		return target
	}
	if observed, ok := toWrapper.get(target); ok {
		c.stats.cacheHits.Add(1)
		return observed
	}
	// target is already a wrapper of this mode.
	if toRaw.has(target) {
		return target
	}
	if !c.canObserve(target) {
		c.stats.rejected.Add(1)
		return target
	}

	raw := target.(Target)
	observed, ok := newProxy(raw, base, collection)
	if !ok {
		c.stats.rejected.Add(1)
		return target
	}
	toWrapper.set(raw, observed)
	toRaw.set(observed, raw)
	c.targets.Ensure(raw)

	if m == modeReadonly {
		c.stats.readonlyCreated.Add(1)
	} else {
		c.stats.reactiveCreated.Add(1)
	}
	return observed
}
