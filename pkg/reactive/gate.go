package reactive

// ComponentInstance is implemented by framework component instances. A
// value reporting true is never observed.
type ComponentInstance interface {
	IsComponentInstance() bool
}

// VirtualNode is implemented by virtual-node values. A value reporting
// true is never observed.
type VirtualNode interface {
	IsVirtualNode() bool
}

// canObserve reports whether a structured value may be wrapped. Only
// objects, arrays, maps, sets, weak maps and weak sets the host has not
// excluded are observable.
func (c *Context) canObserve(value any) bool {
	if ci, ok := value.(ComponentInstance); ok && ci.IsComponentInstance() {
		return false
	}
	if vn, ok := value.(VirtualNode); ok && vn.IsVirtualNode() {
		return false
	}
	switch TypeString(value) {
	case "Object", "Array", "Map", "Set", "WeakMap", "WeakSet":
	default:
		return false
	}
	return !c.nonReactiveValues.has(value)
}
