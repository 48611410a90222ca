package visit

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/sghaida/typevisit/typelist"
)

// Policy decides what Dispatch does when the value's type has no action.
type Policy int

const (
	// PolicyIgnore makes an empty slot a silent no-op. This is the default.
	PolicyIgnore Policy = iota
	// PolicyLog is PolicyIgnore plus a debug-level log record.
	PolicyLog
	// PolicyError returns UnhandledError.
	PolicyError
)

// String returns the config spelling of p.
func (p Policy) String() string {
	switch p {
	case PolicyIgnore:
		return "ignore"
	case PolicyLog:
		return "log"
	case PolicyError:
		return "error"
	default:
		return "Policy(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParsePolicy parses "ignore", "log" or "error". Empty input means "ignore".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return PolicyIgnore, nil
	case "log":
		return PolicyLog, nil
	case "error":
		return PolicyError, nil
	default:
		return 0, fmt.Errorf("%w: onUnhandled must be one of: ignore|log|error, got %q", ErrConfiguration, s)
	}
}

// Options tune a Dispatcher. The zero value is valid.
type Options struct {
	OnUnhandled Policy
	// Logger receives PolicyLog records. Nil discards them.
	Logger *slog.Logger
}

// Dispatcher invokes the action registered for a value's type.
//
// A Dispatcher never changes after New returns, so it is safe to call from
// several goroutines as long as the bound actions are.
type Dispatcher struct {
	table  *Table
	policy Policy
	logger *slog.Logger
}

// New builds a Dispatcher with default Options. See NewTable for the
// configuration errors it can return.
func New(list typelist.TypeList, actions ...Action) (*Dispatcher, error) {
	return NewWith(list, Options{}, actions...)
}

// NewWith is New with explicit Options.
func NewWith(list typelist.TypeList, opts Options, actions ...Action) (*Dispatcher, error) {
	if opts.OnUnhandled < PolicyIgnore || opts.OnUnhandled > PolicyError {
		return nil, fmt.Errorf("%w: unknown policy %s", ErrConfiguration, opts.OnUnhandled)
	}
	table, err := NewTable(list, actions...)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{table: table, policy: opts.OnUnhandled, logger: logger}, nil
}

// MustNew is like New but panics on a configuration error.
func MustNew(list typelist.TypeList, actions ...Action) *Dispatcher {
	d, err := New(list, actions...)
	if err != nil {
		panic(err)
	}
	return d
}

// Types returns the declared TypeList.
func (d *Dispatcher) Types() typelist.TypeList { return d.table.list }

// Table returns the underlying action table.
func (d *Dispatcher) Table() *Table { return d.table }

// Policy returns the unhandled-type policy.
func (d *Dispatcher) Policy() Policy { return d.policy }

// Dispatch calls the action registered for the dynamic type of v.
//
// v may be a T or a *T for a member T. handled reports whether an action ran.
// A member without an action is not an error (unless PolicyError is set).
//
// Errors (all match ErrUsage):
//   - UnsupportedInvocationTypeError if T is not a member, or v is nil
//   - NotAddressableError if v is a T but the action takes *T
//   - NilValueError if v is a nil *T and an action is bound
func (d *Dispatcher) Dispatch(v any) (handled bool, err error) {
	if v == nil {
		return false, UnsupportedInvocationTypeError{}
	}
	rt := reflect.TypeOf(v)
	bare, isPtr := rt, rt.Kind() == reflect.Pointer
	if isPtr {
		bare = rt.Elem()
	}

	s, ok := d.table.lookup(bare)
	if !ok || (isPtr && rt != reflect.PointerTo(bare)) {
		// Named pointer types (type PX *X) are not *X.
		return false, UnsupportedInvocationTypeError{Type: rt}
	}
	if !s.bound {
		return d.unhandled(bare)
	}

	switch {
	case isPtr && reflect.ValueOf(v).IsNil():
		return false, NilValueError{Type: rt}
	case isPtr && s.action.byRef:
		s.action.call(v)
	case isPtr:
		s.action.call(reflect.ValueOf(v).Elem().Interface())
	case s.action.byRef:
		return false, NotAddressableError{Type: bare}
	default:
		s.action.call(v)
	}
	return true, nil
}

// Visit dispatches a *T without boxing it through an interface first.
func Visit[T any](d *Dispatcher, v *T) (handled bool, err error) {
	bare := reflect.TypeFor[T]()
	s, ok := d.table.lookup(bare)
	if !ok {
		return false, UnsupportedInvocationTypeError{Type: reflect.TypeFor[*T]()}
	}
	if !s.bound {
		return d.unhandled(bare)
	}
	if v == nil {
		return false, NilValueError{Type: reflect.TypeFor[*T]()}
	}
	if s.action.byRef {
		s.action.call(v)
	} else {
		s.action.call(*v)
	}
	return true, nil
}

// VisitValue dispatches a T by value. Actions bound with On reject it with
// NotAddressableError.
func VisitValue[T any](d *Dispatcher, v T) (handled bool, err error) {
	bare := reflect.TypeFor[T]()
	s, ok := d.table.lookup(bare)
	if !ok {
		return false, UnsupportedInvocationTypeError{Type: bare}
	}
	if !s.bound {
		return d.unhandled(bare)
	}
	if s.action.byRef {
		return false, NotAddressableError{Type: bare}
	}
	s.action.call(v)
	return true, nil
}

func (d *Dispatcher) unhandled(t reflect.Type) (bool, error) {
	switch d.policy {
	case PolicyLog:
		d.logger.Debug("visit: no action registered", slog.String("type", t.String()))
	case PolicyError:
		return false, UnhandledError{Type: t}
	}
	return false, nil
}
