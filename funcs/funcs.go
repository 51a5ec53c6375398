package funcs

import (
	"reflect"
	"runtime"
	"strings"
)

// FuncName returns the short name of the function fn points to, e.g.
// "ddd.(*Order).OnSaved-fm" becomes "(*Order).OnSaved-fm". Anything that
// is not a non-nil func yields "<nil>".
func FuncName(fn interface{}) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "<nil>"
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "<unknown>"
	}
	name := f.Name()
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

func TypeEqual(x, y interface{}) bool {
	if x == nil || y == nil {
		return false
	}
	return reflect.TypeOf(x) == reflect.TypeOf(y)
}

// ReflectValueName returns the bare type name of val, dereferencing
// pointers: both order{} and &order{} give "order".
func ReflectValueName(val interface{}) string {
	if val == nil {
		return "<nil>"
	}
	t := reflect.TypeOf(val)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}
