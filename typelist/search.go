package typelist

import "reflect"

// notFound only exists to give NotFound a type no caller can list.
type notFound struct{}

// NotFound is the sentinel carried by a SearchResult that found nothing.
// It is unexported, so it can never be a member of a TypeList built outside
// this package.
var NotFound = reflect.TypeFor[notFound]()

// Predicate is a pure test over a single type descriptor.
type Predicate func(reflect.Type) bool

// SearchResult describes the outcome of Search.
//
// If Found is false, Index equals the list length and Type is NotFound.
type SearchResult struct {
	Found bool
	Index int
	Type  reflect.Type
}

// Search returns the lowest-ordinal member for which p holds.
//
// p is evaluated in declaration order and never for members after the first
// match. An empty list or a nil predicate yields a not-found result.
func Search(l TypeList, p Predicate) SearchResult {
	if p != nil {
		for i, t := range l.types {
			if p(t) {
				return SearchResult{Found: true, Index: i, Type: t}
			}
		}
	}
	return SearchResult{Found: false, Index: len(l.types), Type: NotFound}
}

// Find looks up T by identity.
func Find[T any](l TypeList) SearchResult {
	return Search(l, Is(Type[T]()))
}

// Is matches exactly t.
func Is(t reflect.Type) Predicate {
	return func(c reflect.Type) bool { return c == t }
}

// AssignableTo matches members whose values are assignable to t.
func AssignableTo(t reflect.Type) Predicate {
	return func(c reflect.Type) bool { return t != nil && c.AssignableTo(t) }
}

// Implements matches members that implement the interface iface.
// A non-interface iface matches nothing.
func Implements(iface reflect.Type) Predicate {
	return func(c reflect.Type) bool {
		return iface != nil && iface.Kind() == reflect.Interface && c.Implements(iface)
	}
}

// KindOf matches members of kind k.
func KindOf(k reflect.Kind) Predicate {
	return func(c reflect.Type) bool { return c.Kind() == k }
}

// Not negates p. A nil p is treated as always false.
func Not(p Predicate) Predicate {
	return func(c reflect.Type) bool { return p == nil || !p(c) }
}

// AnyOf holds if any of ps holds, evaluated left to right with short-circuit.
func AnyOf(ps ...Predicate) Predicate {
	return func(c reflect.Type) bool {
		for _, p := range ps {
			if p != nil && p(c) {
				return true
			}
		}
		return false
	}
}

// AllOf holds if every p holds, evaluated left to right with short-circuit.
// AllOf with no predicates holds for every member.
func AllOf(ps ...Predicate) Predicate {
	return func(c reflect.Type) bool {
		for _, p := range ps {
			if p == nil || !p(c) {
				return false
			}
		}
		return true
	}
}
