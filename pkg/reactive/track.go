package reactive

import "github.com/go-drift/reactivity/pkg/errors"

// OpType is the kind of access reported by the trap handlers.
type OpType uint8

const (
	OpGet OpType = iota
	OpHas
	OpIterate
	OpSet
	OpAdd
	OpDelete
	OpClear
)

func (op OpType) String() string {
	switch op {
	case OpGet:
		return "get"
	case OpHas:
		return "has"
	case OpIterate:
		return "iterate"
	case OpSet:
		return "set"
	case OpAdd:
		return "add"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	default:
		return "unknown"
	}
}

type specialKey struct{ name string }

// IterateKey is the dependency key recorded by operations that depend on
// the full key set of a target (OwnKeys, Size, Range).
var IterateKey Key = specialKey{"iterate"}

// Event describes a write delivered to a subscriber.
type Event struct {
	// Target is the raw target that was written.
	Target Target
	Op     OpType
	Key    Key
}

// Subscriber is notified when a key it read through a wrapper is written.
// Implementations must be comparable, typically pointers.
type Subscriber interface {
	Notify(e Event)
}

// Run makes sub the active subscriber while fn executes; reads through
// wrappers during fn are recorded for sub. Calls may nest.
//
// Run, Track, Trigger and Stop must be called from a single goroutine.
func (c *Context) Run(sub Subscriber, fn func()) {
	c.active = append(c.active, sub)
	defer func() {
		c.active[len(c.active)-1] = nil
		c.active = c.active[:len(c.active)-1]
	}()
	fn()
}

// ActiveSubscriber returns the subscriber of the innermost Run, or nil.
func (c *Context) ActiveSubscriber() Subscriber {
	if len(c.active) == 0 {
		return nil
	}
	return c.active[len(c.active)-1]
}

// Track records that the active subscriber read key of target.
func (c *Context) Track(target Target, op OpType, key Key) {
	sub := c.ActiveSubscriber()
	if sub == nil || !hashable(key) {
		return
	}
	deps := c.targets.Ensure(target)
	dep := deps[key]
	if dep == nil {
		dep = make(Dep)
		deps[key] = dep
	}
	if _, ok := dep[sub]; ok {
		return
	}
	dep[sub] = struct{}{}
	c.joined[sub] = append(c.joined[sub], depRef{deps: deps, key: key})
}

// depRef locates one Dep a subscriber joined.
type depRef struct {
	deps KeyToDepMap
	key  Key
}

// Stop removes sub from every dep it joined through Track. A stopped
// subscriber receives no further events until it reads again inside Run.
// The dependency map holds subscribers strongly, so a subscriber that
// references wrappers keeps their raw values alive until it is stopped.
func (c *Context) Stop(sub Subscriber) {
	for _, ref := range c.joined[sub] {
		dep := ref.deps[ref.key]
		delete(dep, sub)
		if len(dep) == 0 {
			delete(ref.deps, ref.key)
		}
	}
	delete(c.joined, sub)
}

// Trigger notifies the subscribers that depend on key of target. Adds and
// deletes also notify IterateKey subscribers, as do sets on a Map; a clear
// notifies every subscriber of the target.
func (c *Context) Trigger(target Target, op OpType, key Key) {
	deps, ok := c.targets.Get(target)
	if !ok {
		return
	}

	var subs []Subscriber
	seen := make(map[Subscriber]bool)
	collect := func(dep Dep) {
		for sub := range dep {
			if !seen[sub] {
				seen[sub] = true
				subs = append(subs, sub)
			}
		}
	}

	if op == OpClear {
		for _, dep := range deps {
			collect(dep)
		}
	} else {
		if hashable(key) {
			collect(deps[key])
		}
		if op == OpAdd || op == OpDelete || (op == OpSet && target.Tag() == TagMap) {
			collect(deps[IterateKey])
		}
	}

	e := Event{Target: target, Op: op, Key: key}
	for _, sub := range subs {
		c.notify(sub, e)
	}
}

func (c *Context) notify(sub Subscriber, e Event) {
	defer errors.RecoverTo(c.handler, "reactive.Trigger")
	sub.Notify(e)
}
