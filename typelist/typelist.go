package typelist

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
)

// ErrInvalidList is matched (via errors.Is) by every TypeList construction error.
var ErrInvalidList = errors.New("typelist: invalid type list")

// NilTypeError is returned when a nil descriptor is supplied.
type NilTypeError struct{ Index int }

// Error implements the error interface.
func (e NilTypeError) Error() string {
	// Example: typelist: nil type at index 2
	return "typelist: nil type at index " + strconv.Itoa(e.Index)
}

// Is reports whether target is ErrInvalidList.
func (e NilTypeError) Is(target error) bool { return target == ErrInvalidList }

// ReferenceTypeError is returned when a pointer type is supplied.
type ReferenceTypeError struct {
	Index int
	Type  reflect.Type
}

// Error implements the error interface.
func (e ReferenceTypeError) Error() string {
	// Example: typelist: type *main.X at index 0 is a pointer; list members must be bare types
	return "typelist: type " + e.Type.String() + " at index " + strconv.Itoa(e.Index) +
		" is a pointer; list members must be bare types"
}

// Is reports whether target is ErrInvalidList.
func (e ReferenceTypeError) Is(target error) bool { return target == ErrInvalidList }

// DuplicateTypeError is returned when the same type is listed twice.
type DuplicateTypeError struct {
	Type   reflect.Type
	First  int
	Second int
}

// Error implements the error interface.
func (e DuplicateTypeError) Error() string {
	// Example: typelist: duplicate type main.X at indexes 0 and 3
	return "typelist: duplicate type " + e.Type.String() + " at indexes " +
		strconv.Itoa(e.First) + " and " + strconv.Itoa(e.Second)
}

// Is reports whether target is ErrInvalidList.
func (e DuplicateTypeError) Is(target error) bool { return target == ErrInvalidList }

// TypeList is an ordered, closed set of distinct bare types.
//
// The zero value is the empty list. A TypeList is immutable and safe to share
// between goroutines.
type TypeList struct {
	types []reflect.Type
}

// Type returns the descriptor of T.
func Type[T any]() reflect.Type { return reflect.TypeFor[T]() }

// New validates types and returns them as a TypeList.
//
// It fails with NilTypeError, ReferenceTypeError or DuplicateTypeError, all of
// which match ErrInvalidList.
func New(types ...reflect.Type) (TypeList, error) {
	if len(types) == 0 {
		return TypeList{}, nil
	}
	out := make([]reflect.Type, 0, len(types))
	for i, t := range types {
		if t == nil {
			return TypeList{}, NilTypeError{Index: i}
		}
		if t.Kind() == reflect.Pointer {
			return TypeList{}, ReferenceTypeError{Index: i, Type: t}
		}
		if prev := Search(TypeList{types: out}, Is(t)); prev.Found {
			return TypeList{}, DuplicateTypeError{Type: t, First: prev.Index, Second: i}
		}
		out = append(out, t)
	}
	return TypeList{types: out}, nil
}

// MustNew is like New but panics on invalid input.
// Useful for package-level declarations where the list is a literal.
func MustNew(types ...reflect.Type) TypeList {
	l, err := New(types...)
	if err != nil {
		panic(err)
	}
	return l
}

// Len returns the number of members.
func (l TypeList) Len() int { return len(l.types) }

// At returns the member at ordinal i. It panics if i is out of range.
func (l TypeList) At(i int) reflect.Type { return l.types[i] }

// Types returns a copy of the members in declaration order.
func (l TypeList) Types() []reflect.Type {
	out := make([]reflect.Type, len(l.types))
	copy(out, l.types)
	return out
}

// Index returns the ordinal of t, or (Len(), false) if t is not a member.
func (l TypeList) Index(t reflect.Type) (int, bool) {
	res := Search(l, Is(t))
	return res.Index, res.Found
}

// Contains reports whether t is a member.
func (l TypeList) Contains(t reflect.Type) bool {
	_, ok := l.Index(t)
	return ok
}

// String renders the list as {a, b, c}.
func (l TypeList) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, t := range l.types {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
