package reactive

import (
	stderrors "errors"
	"regexp"
	"testing"
	"time"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, "Null"},
		{true, "Boolean"},
		{"s", "String"},
		{42, "Number"},
		{3.5, "Number"},
		{func() {}, "Function"},
		{time.Now(), "Date"},
		{regexp.MustCompile("a"), "RegExp"},
		{stderrors.New("boom"), "Error"},
		{NewObject(), "Object"},
		{NewArray(), "Array"},
		{NewMap(), "Map"},
		{NewSet(), "Set"},
		{NewWeakMap(), "WeakMap"},
		{NewWeakSet(), "WeakSet"},
		{[]int{1}, "[]int"},
		{struct{}{}, "struct {}"},
	}
	for _, tt := range tests {
		if got := TypeString(tt.value); got != tt.want {
			t.Errorf("TypeString(%T) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestIsObject(t *testing.T) {
	var nilMap map[string]int
	tests := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{1, false},
		{"s", false},
		{func() {}, false},
		{nilMap, false},
		{(*Object)(nil), false},
		{detachedHost{}, false},
		{detachedHost{NewObject()}, true},
		{NewObject(), true},
		{[]int{}, true},
		{[2]int{}, true},
		{struct{}{}, true},
	}
	for _, tt := range tests {
		if got := isObject(tt.value); got != tt.want {
			t.Errorf("isObject(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestTagIsCollection(t *testing.T) {
	for tag, want := range map[Tag]bool{
		TagObject:  false,
		TagArray:   false,
		TagMap:     true,
		TagSet:     true,
		TagWeakMap: true,
		TagWeakSet: true,
		TagInvalid: false,
	} {
		if got := tag.IsCollection(); got != want {
			t.Errorf("%s.IsCollection() = %v, want %v", tag, got, want)
		}
	}
}
