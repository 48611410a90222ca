package visit

import (
	"errors"
	"reflect"
	"strconv"

	"github.com/sghaida/typevisit/typelist"
)

var (
	// ErrConfiguration is matched by every error returned while building a
	// Table or Dispatcher (InvalidActionError, UnsupportedActionTypeError,
	// DuplicateActionTypeError).
	ErrConfiguration = errors.New("visit: invalid configuration")

	// ErrUsage is matched by every error returned when a Dispatcher is called
	// with a value it cannot accept (UnsupportedInvocationTypeError,
	// NotAddressableError, NilValueError).
	ErrUsage = errors.New("visit: invalid invocation")

	// ErrUnhandled is matched by UnhandledError. It is only ever returned
	// under PolicyError; by default an empty slot is a silent no-op.
	ErrUnhandled = errors.New("visit: no action registered")
)

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// InvalidActionError is returned when a supplied action is not a usable unary
// function (nil, not a func, wrong arity, variadic).
type InvalidActionError struct {
	// Position is the index of the action in the supplied list.
	Position int
	Reason   string
}

// Error implements the error interface.
func (e InvalidActionError) Error() string {
	// Example: visit: action 1 is invalid: must accept exactly one argument, got 2
	return "visit: action " + strconv.Itoa(e.Position) + " is invalid: " + e.Reason
}

// Is reports whether target is ErrConfiguration.
func (e InvalidActionError) Is(target error) bool { return target == ErrConfiguration }

// UnsupportedActionTypeError is returned when an action accepts a type that is
// not a member of the dispatcher's TypeList.
type UnsupportedActionTypeError struct {
	Position int
	// Type is the accepted argument type with one level of pointer stripped.
	Type reflect.Type
	// Action is the function signature, e.g. "func(*shapes.Hexagon)".
	Action string
	List   typelist.TypeList
}

// Error implements the error interface.
func (e UnsupportedActionTypeError) Error() string {
	// Example: visit: action 2 (func(*main.W)) accepts main.W, which is not one of {main.X, main.Y, main.Z}
	return "visit: action " + strconv.Itoa(e.Position) + " (" + e.Action + ") accepts " +
		typeString(e.Type) + ", which is not one of " + e.List.String()
}

// Is reports whether target is ErrConfiguration.
func (e UnsupportedActionTypeError) Is(target error) bool { return target == ErrConfiguration }

// DuplicateActionTypeError is returned when two actions target the same member.
type DuplicateActionTypeError struct {
	Type   reflect.Type
	First  int
	Second int
}

// Error implements the error interface.
func (e DuplicateActionTypeError) Error() string {
	// Example: visit: actions 0 and 3 both accept main.X
	return "visit: actions " + strconv.Itoa(e.First) + " and " + strconv.Itoa(e.Second) +
		" both accept " + typeString(e.Type)
}

// Is reports whether target is ErrConfiguration.
func (e DuplicateActionTypeError) Is(target error) bool { return target == ErrConfiguration }

// UnsupportedInvocationTypeError is returned when Dispatch receives a value
// whose type is not a member of the TypeList. It is distinct from an empty
// slot, which is a valid no-op.
type UnsupportedInvocationTypeError struct{ Type reflect.Type }

// Error implements the error interface.
func (e UnsupportedInvocationTypeError) Error() string {
	// Example: visit: type main.W is not supported
	return "visit: type " + typeString(e.Type) + " is not supported"
}

// Is reports whether target is ErrUsage.
func (e UnsupportedInvocationTypeError) Is(target error) bool { return target == ErrUsage }

// NotAddressableError is returned when a value (not a pointer) is dispatched to
// an action that accepts *T. Mutations would be lost on a copy, so the call is
// refused rather than silently made on one.
type NotAddressableError struct{ Type reflect.Type }

// Error implements the error interface.
func (e NotAddressableError) Error() string {
	// Example: visit: action for main.X takes a pointer; pass *main.X
	return "visit: action for " + typeString(e.Type) + " takes a pointer; pass *" + typeString(e.Type)
}

// Is reports whether target is ErrUsage.
func (e NotAddressableError) Is(target error) bool { return target == ErrUsage }

// NilValueError is returned when a nil *T is dispatched to a bound slot.
type NilValueError struct{ Type reflect.Type }

// Error implements the error interface.
func (e NilValueError) Error() string {
	// Example: visit: nil *main.X
	return "visit: nil " + typeString(e.Type)
}

// Is reports whether target is ErrUsage.
func (e NilValueError) Is(target error) bool { return target == ErrUsage }

// UnhandledError is returned under PolicyError when no action is bound for Type.
type UnhandledError struct{ Type reflect.Type }

// Error implements the error interface.
func (e UnhandledError) Error() string {
	// Example: visit: no action registered for main.Y
	return "visit: no action registered for " + typeString(e.Type)
}

// Is reports whether target is ErrUnhandled.
func (e UnhandledError) Is(target error) bool { return target == ErrUnhandled }
