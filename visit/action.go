package visit

import (
	"reflect"
	"strconv"
)

// Action is a unary procedure bound to one member of a TypeList.
//
// Build one with On (by reference), OnValue (by value) or Func (any unary func,
// checked by reflection). The zero Action is invalid and is rejected by
// NewTable.
type Action struct {
	// arg is the accepted type with one pointer level stripped.
	arg   reflect.Type
	byRef bool
	// call receives *T when byRef, T otherwise.
	call func(any)
	sig  string

	invalid string
}

// On binds fn to T. fn receives the caller's pointer, so mutations are visible
// to the caller.
func On[T any](fn func(*T)) Action {
	if fn == nil {
		return Action{invalid: "nil function"}
	}
	return Action{
		arg:   reflect.TypeFor[T](),
		byRef: true,
		call:  func(v any) { fn(v.(*T)) },
		sig:   reflect.TypeOf(fn).String(),
	}
}

// OnValue binds fn to T. fn receives a copy. T must not be a pointer type;
// use On for func(*T).
func OnValue[T any](fn func(T)) Action {
	if fn == nil {
		return Action{invalid: "nil function"}
	}
	if t := reflect.TypeFor[T](); t.Kind() == reflect.Pointer {
		return Action{invalid: "OnValue needs a non-pointer argument, got " + t.String() + "; use On for func(" + t.String() + ")"}
	}
	return Action{
		arg:  reflect.TypeFor[T](),
		call: func(v any) { fn(v.(T)) },
		sig:  reflect.TypeOf(fn).String(),
	}
}

// Func binds an arbitrary function with exactly one parameter. A *T parameter
// binds by reference, anything else by value. Results are ignored.
//
// Invalid functions are not rejected here but by NewTable/New, so that the
// error can carry the action's position.
func Func(fn any) Action {
	if fn == nil {
		return Action{invalid: "nil function"}
	}
	rv := reflect.ValueOf(fn)
	rt := rv.Type()
	switch {
	case rt.Kind() != reflect.Func:
		return Action{invalid: "not a function: " + rt.String()}
	case rv.IsNil():
		return Action{invalid: "nil function"}
	case rt.IsVariadic():
		return Action{invalid: "variadic functions are not supported: " + rt.String()}
	case rt.NumIn() != 1:
		return Action{invalid: "must accept exactly one argument, got " + strconv.Itoa(rt.NumIn())}
	}

	in := rt.In(0)
	a := Action{
		arg:  in,
		call: func(v any) { rv.Call([]reflect.Value{reflect.ValueOf(v)}) },
		sig:  rt.String(),
	}
	if in.Kind() == reflect.Pointer {
		a.arg = in.Elem()
		a.byRef = true
	}
	return a
}

// Type returns the accepted type with one pointer level stripped, or nil for
// an invalid Action.
func (a Action) Type() reflect.Type { return a.arg }

// ByRef reports whether the action receives a pointer.
func (a Action) ByRef() bool { return a.byRef }

// String returns the function signature.
func (a Action) String() string {
	if a.invalid != "" || a.call == nil {
		return "<invalid action>"
	}
	return a.sig
}

func (a Action) validate(pos int) error {
	if a.invalid != "" {
		return InvalidActionError{Position: pos, Reason: a.invalid}
	}
	if a.call == nil {
		return InvalidActionError{Position: pos, Reason: "zero Action"}
	}
	return nil
}
