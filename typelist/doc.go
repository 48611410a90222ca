// Package typelist provides closed, ordered sets of Go types and a
// short-circuiting first-match search over them.
//
// A TypeList is declared once and never changes:
//
//	types := typelist.MustNew(typelist.Type[X](), typelist.Type[Y](), typelist.Type[Z]())
//
// Search walks the list in order and stops at the first type the predicate
// accepts. When nothing matches the result carries Index == Len() and the
// NotFound sentinel, so callers never need a separate "ok" path to learn
// the one-past-end position:
//
//	res := typelist.Search(types, typelist.Is(typelist.Type[Y]()))
//	// res.Found == true, res.Index == 1, res.Type == Y
//
// Members must be bare types. Pointer types are rejected at construction
// because consumers (see package visit) strip one level of indirection when
// they match values and callbacks against the list.
//
// Registry maps configuration names to types so lists can be assembled from
// YAML or flags without reflection-by-name.
package typelist
