// Command visitgen generates a sealed variant interface and a typed visitor
// from a small YAML spec.
//
// The runtime dispatcher in package visit accepts any value and rejects
// unsupported types with an error. visitgen moves that rejection to the
// compiler: only pointers to the listed types implement the generated
// interface, so passing anything else does not build.
//
// When to use visitgen
//
// Use it when the set of types is known where they are declared and you
// want:
//
//   - compile-time rejection of unsupported types
//   - a plain type switch instead of reflection on the hot path
//   - actions given as struct fields, in any order, with unset ones ignored
//
// Use package visit instead when the set comes from configuration or spans
// packages you do not own.
//
// Spec
//
//	package: shapes            # package of the output file
//	variant: Shape             # generated interface
//	visitor: ShapeVisitor      # optional, default <variant>Visitor
//	types: [Circle, Square]    # bare type names declared in package, in order
//
// What visitgen generates
//
//	type Shape interface{ isShape() }
//	func (*Circle) isShape() {}
//	type ShapeVisitor struct {
//		OnCircle func(*Circle)
//		OnSquare func(*Square)
//	}
//	func (vis ShapeVisitor) Visit(v Shape) bool
//	func ShapeIndex(v Shape) int
//	var ShapeNames = [...]string{"Circle", "Square"}
//
// Visit reports whether an action ran. ShapeIndex returns the declaration
// ordinal, or len(ShapeNames) for a nil interface.
//
// Spec validation rejects pointers, qualified names, predeclared types,
// duplicates and names that clash with generated identifiers. With -check
// the target package is loaded and every listed type must exist there as a
// named, non-generic, non-interface type.
//
// Typical go:generate usage
//
//	//go:generate go run ../../cmd/visitgen -spec shapes.visit.yaml -out shapes_visit.gen.go -check
//
// The output header records the spec path and its sha256.
//
// See examples/shapes for end-to-end usage.
package main
