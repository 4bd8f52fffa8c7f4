package reactive

import (
	"reflect"
	"runtime"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/go-drift/reactivity/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder is a Subscriber that keeps every event it receives.
type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) last() Event {
	if len(r.events) == 0 {
		return Event{}
	}
	return r.events[len(r.events)-1]
}

// diagnostics captures everything a Context reports.
type diagnostics struct {
	errs   []*errors.ReactiveError
	panics []*errors.PanicError
}

func (d *diagnostics) HandleError(err *errors.ReactiveError) { d.errs = append(d.errs, err) }
func (d *diagnostics) HandlePanic(err *errors.PanicError)    { d.panics = append(d.panics, err) }

func (d *diagnostics) count(kind errors.ErrorKind) int {
	n := 0
	for _, e := range d.errs {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func newTestContext(opts ...Option) (*Context, *diagnostics) {
	d := &diagnostics{}
	return New(append([]Option{WithErrorHandler(d)}, opts...)...), d
}

// sameValue compares values that may not be comparable with ==.
func sameValue(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() {
		return ra.IsValid() == rb.IsValid()
	}
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return ra.Pointer() == rb.Pointer()
	}
	return a == b
}

// waitFor runs the garbage collector until cond holds.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
}
