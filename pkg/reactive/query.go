package reactive

import (
	"fmt"

	"github.com/go-drift/reactivity/pkg/errors"
)

// IsReactive reports whether value is a wrapper of either mode.
func (c *Context) IsReactive(value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reactiveToRaw.has(value) || c.readonlyToRaw.has(value)
}

// IsReadonly reports whether value is a read-only wrapper.
func (c *Context) IsReadonly(value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readonlyToRaw.has(value)
}

// ToRaw returns the raw value behind a wrapper, or value itself.
func (c *Context) ToRaw(value any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if raw, ok := c.reactiveToRaw.get(value); ok {
		return raw
	}
	if raw, ok := c.readonlyToRaw.get(value); ok {
		return raw
	}
	return value
}

// MarkReadonly declares that value may only ever be wrapped read-only and
// returns it.
func (c *Context) MarkReadonly(value any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.markable("reactive.MarkReadonly", value); ok {
		c.readonlyValues.add(t)
	}
	return value
}

// MarkNonReactive declares that value must never be wrapped and returns it.
func (c *Context) MarkNonReactive(value any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.markable("reactive.MarkNonReactive", value); ok {
		c.nonReactiveValues.add(t)
	}
	return value
}

// markable returns value as a target if it can join a marking set.
// Structured values that are not targets are never observed, so marking
// them is a silent no-op.
func (c *Context) markable(op string, value any) (Target, bool) {
	if !isObject(value) {
		c.warn(op, errors.KindInvalidTarget, value,
			fmt.Errorf("value cannot be marked: %v", value))
		return nil, false
	}
	t, ok := value.(Target)
	return t, ok
}

// ReactiveRecord is the typed form of Context.Reactive for raw records.
//
//	state := reactive.ReactiveRecord(ctx, reactive.ObjectOf(map[string]any{"count": 0}))
//	state.Set("count", 1)
func ReactiveRecord(c *Context, target Record) Record {
	if r, ok := c.Reactive(target).(Record); ok {
		return r
	}
	return target
}

// ReadonlyRecord is the typed form of Context.Readonly for raw records.
func ReadonlyRecord(c *Context, target Record) Record {
	if r, ok := c.Readonly(target).(Record); ok {
		return r
	}
	return target
}
