// Package typevisit provides type-indexed dispatch over a fixed, ordered set
// of types.
//
// A list of supported types is declared once. Actions, one per type at most,
// are bound to it in any order. Invoking with a value runs the action for
// that value's type, does nothing when the type has no action, and rejects
// types outside the list.
//
// The goal is to keep the closed set explicit, catch configuration mistakes
// at construction time, and keep the runtime path to a lookup and a call.
//
// Package typevisit See subpackages:
//   - typelist: ordered type lists, first-match search, name registry
//   - visit: action tables and the runtime dispatcher
//   - mock: delegates keyed by func type, for hand-written test doubles
//   - config: YAML + environment configuration for dispatchers
//   - cmd/visitgen: generates sealed interfaces and typed visitors
//   - examples/*: runnable examples
package typevisit
