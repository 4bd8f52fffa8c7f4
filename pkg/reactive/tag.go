package reactive

import (
	"reflect"
	"regexp"
	"time"
)

// Tag identifies the shape of an observable target. It is resolved once,
// when a wrapper is created, and selects the handler strategy.
type Tag uint8

const (
	// TagInvalid is the zero Tag.
	TagInvalid Tag = iota
	TagObject
	TagArray
	TagMap
	TagSet
	TagWeakMap
	TagWeakSet
)

func (t Tag) String() string {
	switch t {
	case TagObject:
		return "Object"
	case TagArray:
		return "Array"
	case TagMap:
		return "Map"
	case TagSet:
		return "Set"
	case TagWeakMap:
		return "WeakMap"
	case TagWeakSet:
		return "WeakSet"
	default:
		return "Invalid"
	}
}

// IsCollection reports whether targets of this shape use collection handlers.
func (t Tag) IsCollection() bool {
	switch t {
	case TagMap, TagSet, TagWeakMap, TagWeakSet:
		return true
	}
	return false
}

var (
	timeType   = reflect.TypeFor[time.Time]()
	regexpType = reflect.TypeFor[regexp.Regexp]()
	errorType  = reflect.TypeFor[error]()
)

// TypeString returns the runtime type tag of v: the Tag name for targets,
// a JavaScript-style name ("Null", "Number", "Function", "Date", "RegExp",
// ...) for host values that have one, and the Go type name otherwise.
func TypeString(v any) string {
	switch v := v.(type) {
	case nil:
		return "Null"
	case Target:
		return v.Tag().String()
	case bool:
		return "Boolean"
	case string:
		return "String"
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return "Number"
	}

	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Func {
		return "Function"
	}
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	switch {
	case base == timeType:
		return "Date"
	case base == regexpType:
		return "RegExp"
	case t.Implements(errorType):
		return "Error"
	}
	return t.String()
}

// isObject reports whether v is a structured value: non-nil and of pointer,
// map, slice, array, struct or chan kind. Functions are not structured, nor
// is a target whose identity refers to a nil pointer, such as a host struct
// with a nil embedded *Object.
func isObject(v any) bool {
	if v == nil {
		return false
	}
	if t, ok := v.(Target); ok {
		return t.handle().value() != nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan:
		return !rv.IsNil()
	case reflect.Array, reflect.Struct:
		return true
	}
	return false
}
