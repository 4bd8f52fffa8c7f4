package reactive

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/go-drift/reactivity/pkg/config"
	"github.com/go-drift/reactivity/pkg/errors"
)

// Context owns the identity registry, the marking sets and the dependency
// map of one running system. Create one with New and pass it to every
// component that wraps or tracks values.
//
// Wrapping, unwrapping and marking are safe for concurrent use. Run, Track
// and Trigger, and the handlers that call them, assume a single goroutine.
type Context struct {
	mu sync.Mutex

	// {raw <-> wrapper} pairs, one pair per mode.
	rawToReactive *weakTable
	reactiveToRaw *weakTable
	rawToReadonly *weakTable
	readonlyToRaw *weakTable

	// Values marked read-only or non-reactive by the host.
	readonlyValues    *weakSet
	nonReactiveValues *weakSet

	targets *TargetMap

	mutableBase        BaseHandler
	readonlyBase       BaseHandler
	mutableCollection  CollectionHandler
	readonlyCollection CollectionHandler

	debug     bool
	verbose   bool
	namespace string
	logger    *zap.Logger
	handler   errors.ErrorHandler

	active []Subscriber
	joined map[Subscriber][]depRef
	stats  counters
}

// Option configures a Context.
type Option func(*Context)

// WithDebug enables or disables diagnostics. Diagnostics are enabled by
// default.
func WithDebug(debug bool) Option {
	return func(c *Context) { c.debug = debug }
}

// WithConfig applies resolved settings from reactivity.yaml.
func WithConfig(cfg *config.Resolved) Option {
	return func(c *Context) {
		if cfg == nil {
			return
		}
		c.debug = cfg.Debug
		c.verbose = cfg.Verbose
		if cfg.Namespace != "" {
			c.namespace = cfg.Namespace
		}
	}
}

// WithLogger routes diagnostics to l through an errors.LogHandler.
// WithErrorHandler takes precedence.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithErrorHandler routes diagnostics to h instead of the global handler.
func WithErrorHandler(h errors.ErrorHandler) Option {
	return func(c *Context) { c.handler = h }
}

// WithBaseHandlers replaces the handlers attached to plain targets. A nil
// handler keeps the default for that mode.
func WithBaseHandlers(mutable, readonly BaseHandler) Option {
	return func(c *Context) {
		if mutable != nil {
			c.mutableBase = mutable
		}
		if readonly != nil {
			c.readonlyBase = readonly
		}
	}
}

// WithCollectionHandlers replaces the handlers attached to collection
// targets. A nil handler keeps the default for that mode.
func WithCollectionHandlers(mutable, readonly CollectionHandler) Option {
	return func(c *Context) {
		if mutable != nil {
			c.mutableCollection = mutable
		}
		if readonly != nil {
			c.readonlyCollection = readonly
		}
	}
}

// New creates a Context with empty registries.
func New(opts ...Option) *Context {
	c := &Context{
		rawToReactive:     newWeakTable(),
		reactiveToRaw:     newWeakTable(),
		rawToReadonly:     newWeakTable(),
		readonlyToRaw:     newWeakTable(),
		readonlyValues:    newWeakSet(),
		nonReactiveValues: newWeakSet(),
		targets:           newTargetMap(),
		joined:            make(map[Subscriber][]depRef),
		debug:             true,
		namespace:         config.DefaultNamespace,
	}
	c.mutableBase = &mutableBaseHandler{c: c}
	c.readonlyBase = &readonlyBaseHandler{c: c}
	c.mutableCollection = newMutableCollectionHandler(c)
	c.readonlyCollection = newReadonlyCollectionHandler(c)

	for _, opt := range opts {
		opt(c)
	}

	if c.handler == nil && (c.logger != nil || c.verbose) {
		c.handler = &errors.LogHandler{Logger: c.logger, Verbose: c.verbose}
	}
	return c
}

// Targets returns the dependency map.
func (c *Context) Targets() *TargetMap {
	return c.targets
}

// Debug reports whether diagnostics are enabled.
func (c *Context) Debug() bool {
	return c.debug
}

// warn reports a non-fatal diagnostic when debugging is enabled.
func (c *Context) warn(op string, kind errors.ErrorKind, value any, err error) {
	if !c.debug {
		return
	}
	var stack string
	if c.verbose {
		stack = errors.CaptureStack()
	}
	errors.ReportTo(c.handler, &errors.ReactiveError{
		Op:         op,
		Kind:       kind,
		Err:        err,
		Target:     TypeString(value),
		StackTrace: stack,
	})
}

type counters struct {
	reactiveCreated atomic.Uint64
	readonlyCreated atomic.Uint64
	cacheHits       atomic.Uint64
	rejected        atomic.Uint64
	invalid         atomic.Uint64
}

// Stats is a snapshot of a Context's registry activity.
type Stats struct {
	// ReactiveCreated and ReadonlyCreated count wrappers built per mode.
	ReactiveCreated uint64
	ReadonlyCreated uint64
	// CacheHits counts calls answered with an existing wrapper.
	CacheHits uint64
	// Rejected counts structured values the gate refused.
	Rejected uint64
	// Invalid counts non-structured values passed to the factory.
	Invalid uint64
	// LiveReactive and LiveReadonly count wrappers not yet reclaimed.
	LiveReactive int
	LiveReadonly int
	// Targets counts dependency map slots.
	Targets int
}

// Stats returns a snapshot of registry activity.
func (c *Context) Stats() Stats {
	return Stats{
		ReactiveCreated: c.stats.reactiveCreated.Load(),
		ReadonlyCreated: c.stats.readonlyCreated.Load(),
		CacheHits:       c.stats.cacheHits.Load(),
		Rejected:        c.stats.rejected.Load(),
		Invalid:         c.stats.invalid.Load(),
		LiveReactive:    c.reactiveToRaw.len(),
		LiveReadonly:    c.readonlyToRaw.len(),
		Targets:         c.targets.Len(),
	}
}
