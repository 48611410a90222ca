// Package visit dispatches values to per-type actions over a closed TypeList.
//
// It models a visitor with optional arms: the set of accepted types is fixed up
// front (a typelist.TypeList), each type may have at most one action, and
// calling the dispatcher with a type that has no action does nothing.
//
//	types := typelist.MustNew(typelist.Type[X](), typelist.Type[Y](), typelist.Type[Z]())
//
//	d, err := visit.New(types,
//		visit.On(func(z *Z) { ... }),     // order does not matter
//		visit.OnValue(func(x X) { ... }), // Y deliberately left out
//	)
//
//	d.Dispatch(&x) // runs the X action
//	d.Dispatch(&y) // no-op, handled == false, err == nil
//	d.Dispatch(&w) // UnsupportedInvocationTypeError
//
// Design goals:
//   - Fail at construction: actions for types outside the list, and two actions
//     for the same type, are rejected by New with typed errors
//     (UnsupportedActionTypeError, DuplicateActionTypeError). There is no
//     "last write wins".
//   - Order-insensitive wiring: an action's slot comes from its argument type,
//     never from its position in the call to New.
//   - Distinguish "not supported" from "not handled": a type outside the list
//     is an ErrUsage error, a listed type without an action is a no-op.
//   - Immutable after construction: no locks, safe for concurrent Dispatch.
//
// Value passing follows Go's own rules for pointer receivers. An action bound
// with On receives the caller's *T; dispatching a plain T to it returns
// NotAddressableError instead of mutating a hidden copy. Actions bound with
// OnValue accept both T and *T (the pointer is dereferenced).
//
// For compile-time rejection of unsupported types, generate a sealed sum type
// with cmd/visitgen instead.
package visit
