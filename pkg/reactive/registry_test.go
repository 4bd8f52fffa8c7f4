package reactive

import (
	"runtime"
	"testing"

	"github.com/go-drift/reactivity/pkg/errors"
)

func TestWrappersDoNotRetainRaw(t *testing.T) {
	ctx, _ := newTestContext()

	func() {
		r := ObjectOf(map[string]any{"a": 1})
		ctx.Reactive(r)
		ctx.Readonly(r)
	}()

	waitFor(t, func() bool {
		s := ctx.Stats()
		return s.LiveReactive == 0 && s.LiveReadonly == 0 && s.Targets == 0
	})
}

func TestReclaimedWrapperIsRebuilt(t *testing.T) {
	ctx, _ := newTestContext()
	r := NewObject()

	ctx.Reactive(r)
	waitFor(t, func() bool { return ctx.Stats().LiveReactive == 0 })

	w := ctx.Reactive(r)
	if !ctx.IsReactive(w) || ctx.ToRaw(w) != any(r) {
		t.Error("a fresh wrapper should be built once the old one is reclaimed")
	}
	if got := ctx.Stats().ReactiveCreated; got != 2 {
		t.Errorf("ReactiveCreated = %d, want 2", got)
	}
	if !ctx.Targets().Has(r) {
		t.Error("dependency slot should live as long as the raw value")
	}
	runtime.KeepAlive(w)
}

func TestMarkingSetsDoNotRetain(t *testing.T) {
	ctx, _ := newTestContext()

	func() {
		ctx.MarkReadonly(NewObject())
		ctx.MarkNonReactive(NewMap())
	}()

	waitFor(t, func() bool {
		return ctx.readonlyValues.len() == 0 && ctx.nonReactiveValues.len() == 0
	})
}

func TestWeakMapDropsReclaimedKeys(t *testing.T) {
	m := NewWeakMap()
	kept := NewObject()
	m.Set(kept, "kept")

	func() {
		m.Set(NewObject(), "dropped")
	}()

	waitFor(t, func() bool { return m.Len() == 1 })
	if v, ok := m.Get(kept); !ok || v != "kept" {
		t.Errorf("Get(kept) = %v, %v", v, ok)
	}
	runtime.KeepAlive(kept)
}

func TestWeakSetDropsReclaimedMembers(t *testing.T) {
	s := NewWeakSet()
	func() {
		s.Add(NewArray())
		s.Add(NewSet())
	}()
	waitFor(t, func() bool { return s.Len() == 0 })
}

func TestWeakCollectionsRejectPrimitiveKeys(t *testing.T) {
	d := &diagnostics{}
	errors.SetHandler(d)
	defer errors.SetHandler(nil)

	m := NewWeakMap()
	m.Set("name", 1)
	s := NewWeakSet()
	s.Add(42)

	if m.Len() != 0 || s.Len() != 0 {
		t.Error("primitive keys should be ignored")
	}
	if got := d.count(errors.KindInvalidKey); got != 2 {
		t.Errorf("invalid key diagnostics = %d, want 2", got)
	}
	if m.Has("name") || s.Has(42) {
		t.Error("primitive lookups should miss")
	}
}

func TestWeakTableMissOnForeignValues(t *testing.T) {
	tbl := newWeakTable()
	for _, v := range []any{nil, 1, "s", []int{1}, (*Object)(nil)} {
		if tbl.has(v) {
			t.Errorf("has(%#v) = true", v)
		}
	}

	k, v := NewObject(), NewArray()
	tbl.set(k, v)
	tbl.set(k, v)
	if got, ok := tbl.get(k); !ok || got != any(v) {
		t.Errorf("get = %v, %v", got, ok)
	}
	if tbl.len() != 1 {
		t.Errorf("len = %d, want 1", tbl.len())
	}
	runtime.KeepAlive(k)
	runtime.KeepAlive(v)
}

// holder keeps the wrapper it reads, as a component keeps its state.
type holder struct {
	state Record
}

func (h *holder) Notify(Event) {}

func TestStoppedSubscriberReleasesTarget(t *testing.T) {
	ctx, _ := newTestContext()

	func() {
		sub := &holder{state: ReactiveRecord(ctx, ObjectOf(map[string]any{"a": 1}))}
		ctx.Run(sub, func() { sub.state.Get("a") })
		ctx.Stop(sub)
	}()

	waitFor(t, func() bool {
		s := ctx.Stats()
		return s.Targets == 0 && s.LiveReactive == 0
	})
}

func TestCleanupPanicIsReported(t *testing.T) {
	d := &diagnostics{}
	errors.SetHandler(d)
	defer errors.SetHandler(nil)

	ran := false
	runCleanup(func() {
		ran = true
		panic("cleanup failed")
	})

	if !ran {
		t.Fatal("cleanup should run")
	}
	if len(d.panics) != 1 || d.panics[0].Op != "reactive.cleanup" {
		t.Errorf("panics = %+v, want one from reactive.cleanup", d.panics)
	}
}
