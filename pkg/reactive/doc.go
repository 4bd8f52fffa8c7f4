// Package reactive provides transparent observation of structured values.
//
// A Context wraps raw objects, arrays and collections in proxies that
// behave like the raw value for every read and write while reporting which
// key of which target was accessed. Reads made while a Subscriber is
// active are recorded in the dependency map; later writes notify the
// subscribers that read the written key.
//
// # Wrapping
//
// Each raw value has at most one mutable and one read-only wrapper alive
// at a time:
//
//	ctx := reactive.New()
//	state := reactive.ObjectOf(map[string]any{"count": 0})
//
//	w := ctx.Reactive(state).(reactive.Record)
//	w == ctx.Reactive(state)          // same wrapper
//	ctx.Reactive(w) == w              // wrapping a wrapper is a no-op
//	ctx.ToRaw(w) == state
//
//	ro := ctx.Readonly(w)             // resolves w to state first
//	ctx.Reactive(ro) == ro            // never promoted back to mutable
//
// Values that cannot be observed are returned unchanged: primitives,
// functions, dates, regular expressions, arbitrary Go values, values
// passed to MarkNonReactive and host values that report themselves as a
// ComponentInstance or VirtualNode. Nothing here returns an error; in
// debug mode the misuse is reported to the errors package.
//
// # Raw values
//
// Object, Array, Map, Set, WeakMap and WeakSet are the observable shapes.
// Construct them with their New functions. Host types may embed one of
// them; the embedding value then shares the identity of the embedded one.
//
// # Memory
//
// The registry references raw values and wrappers weakly. Once the host
// drops a raw value and its wrappers, the registry entries and its
// dependency map slot are removed after the next garbage collection.
//
// # Tracking
//
//	ctx.Run(sub, func() {
//	    w.Get("count")                // records sub under state."count"
//	})
//	w.Set("count", 1)                 // calls sub.Notify
package reactive
