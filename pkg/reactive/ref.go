package reactive

import (
	"runtime"
	"weak"

	"github.com/go-drift/reactivity/pkg/errors"
)

// handle is a type-erased weak reference. Its id compares equal for handles
// made from the same pointer and never keeps the referent alive.
type handle struct {
	id    any
	value func() any
}

func handleOf[T any](p *T) handle {
	wp := weak.Make(p)
	return handle{
		id: wp,
		value: func() any {
			if v := wp.Value(); v != nil {
				return v
			}
			return nil
		},
	}
}

// whenReclaimed schedules fn to run once p is unreachable. fn must not
// reference p. A nil p has nothing to reclaim.
func whenReclaimed[T any](p *T, fn func()) {
	if p == nil {
		return
	}
	runtime.AddCleanup(p, runCleanup, fn)
}

// runCleanup runs on the runtime's cleanup goroutine, where a panic would
// end the process.
func runCleanup(fn func()) {
	defer errors.Recover("reactive.cleanup")
	fn()
}
