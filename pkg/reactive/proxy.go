package reactive

// Proxy wraps a plain target. Every access is forwarded to its handler
// together with the raw target.
type Proxy struct {
	target  Record
	handler BaseHandler
}

func (p *Proxy) Tag() Tag            { return p.target.Tag() }
func (p *Proxy) handle() handle      { return handleOf(p) }
func (p *Proxy) onReclaim(fn func()) { whenReclaimed(p, fn) }

func (p *Proxy) Get(key Key) (any, bool) {
	return p.handler.Get(p.target, key)
}

func (p *Proxy) Set(key Key, value any) bool {
	return p.handler.Set(p.target, key, value)
}

func (p *Proxy) Has(key Key) bool {
	return p.handler.Has(p.target, key)
}

func (p *Proxy) Delete(key Key) bool {
	return p.handler.DeleteProperty(p.target, key)
}

func (p *Proxy) OwnKeys() []Key {
	return p.handler.OwnKeys(p.target)
}

// collectionProxy carries the operations shared by every collection
// wrapper.
type collectionProxy struct {
	target  Collection
	handler CollectionHandler
}

func (p *collectionProxy) Tag() Tag { return p.target.Tag() }

func (p *collectionProxy) Has(key Key) bool {
	return p.handler.Has(p.target, key)
}

func (p *collectionProxy) Delete(key Key) bool {
	return p.handler.Delete(p.target, key)
}

// MapProxy wraps a Map.
type MapProxy struct{ collectionProxy }

func (p *MapProxy) handle() handle      { return handleOf(p) }
func (p *MapProxy) onReclaim(fn func()) { whenReclaimed(p, fn) }

func (p *MapProxy) Get(key Key) (any, bool)            { return p.handler.Get(p.target, key) }
func (p *MapProxy) Set(key Key, value any)             { p.handler.Set(p.target, key, value) }
func (p *MapProxy) Size() int                          { return p.handler.Size(p.target) }
func (p *MapProxy) Clear()                             { p.handler.Clear(p.target) }
func (p *MapProxy) Range(fn func(key, value any) bool) { p.handler.Range(p.target, fn) }

// SetProxy wraps a Set.
type SetProxy struct{ collectionProxy }

func (p *SetProxy) handle() handle      { return handleOf(p) }
func (p *SetProxy) onReclaim(fn func()) { whenReclaimed(p, fn) }

func (p *SetProxy) Add(value any)                      { p.handler.Add(p.target, value) }
func (p *SetProxy) Size() int                          { return p.handler.Size(p.target) }
func (p *SetProxy) Clear()                             { p.handler.Clear(p.target) }
func (p *SetProxy) Range(fn func(key, value any) bool) { p.handler.Range(p.target, fn) }

// WeakMapProxy wraps a WeakMap.
type WeakMapProxy struct{ collectionProxy }

func (p *WeakMapProxy) handle() handle      { return handleOf(p) }
func (p *WeakMapProxy) onReclaim(fn func()) { whenReclaimed(p, fn) }

func (p *WeakMapProxy) Get(key Key) (any, bool) { return p.handler.Get(p.target, key) }
func (p *WeakMapProxy) Set(key Key, value any)  { p.handler.Set(p.target, key, value) }

// WeakSetProxy wraps a WeakSet.
type WeakSetProxy struct{ collectionProxy }

func (p *WeakSetProxy) handle() handle      { return handleOf(p) }
func (p *WeakSetProxy) onReclaim(fn func()) { whenReclaimed(p, fn) }

func (p *WeakSetProxy) Add(value any) { p.handler.Add(p.target, value) }

// newProxy builds the wrapper for target, choosing the handler by the
// target's shape.
func newProxy(target Target, base BaseHandler, collection CollectionHandler) (Target, bool) {
	tag := target.Tag()
	if !tag.IsCollection() {
		r, ok := target.(Record)
		if !ok {
			return nil, false
		}
		return &Proxy{target: r, handler: base}, true
	}

	c, ok := target.(Collection)
	if !ok {
		return nil, false
	}
	core := collectionProxy{target: c, handler: collection}
	switch tag {
	case TagMap:
		return &MapProxy{core}, true
	case TagSet:
		return &SetProxy{core}, true
	case TagWeakMap:
		return &WeakMapProxy{core}, true
	case TagWeakSet:
		return &WeakSetProxy{core}, true
	}
	return nil, false
}
