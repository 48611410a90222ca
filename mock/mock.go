// Package mock builds test doubles out of tagged delegates.
//
// A tag is a named func type that spells out the signature of one mocked
// method:
//
//	type Fetch func(id string) (string, error)
//	type Store func(key, val string) error
//
// Delegates are boxed under their tag and collected into a Mock. A fake then
// forwards each method to Unbox:
//
//	m, err := mock.New(
//		mock.Box[Fetch](func(id string) (string, error) { return "v", nil }),
//	)
//
//	func (f fakeRepo) Fetch(id string) (string, error) { return mock.Unbox[Fetch](f.m)(id) }
//	func (f fakeRepo) Store(k, v string) error        { return mock.Unbox[Store](f.m)(k, v) }
//
// Because the tag is the delegate's type, a delegate with the wrong signature
// does not compile. A tag that was never boxed unboxes to a no-op returning
// zero values, so a test only needs to supply the methods it cares about.
package mock

import (
	"errors"
	"reflect"
	"strconv"

	"github.com/sghaida/typevisit/typelist"
)

// ErrInvalidMock is matched by every error returned from New.
var ErrInvalidMock = errors.New("mock: invalid configuration")

// NotFuncTagError is returned when a tag is not a func type.
type NotFuncTagError struct {
	Position int
	Tag      reflect.Type
}

// Error implements the error interface.
func (e NotFuncTagError) Error() string {
	// Example: mock: box 0 has tag int, which is not a func type
	tag := "<nil>"
	if e.Tag != nil {
		tag = e.Tag.String()
	}
	return "mock: box " + strconv.Itoa(e.Position) + " has tag " + tag + ", which is not a func type"
}

// Is reports whether target is ErrInvalidMock.
func (e NotFuncTagError) Is(target error) bool { return target == ErrInvalidMock }

// NilDelegateError is returned when a box holds a nil delegate.
type NilDelegateError struct {
	Position int
	Tag      reflect.Type
}

// Error implements the error interface.
func (e NilDelegateError) Error() string {
	// Example: mock: box 1 has a nil delegate for tag repo.Fetch
	return "mock: box " + strconv.Itoa(e.Position) + " has a nil delegate for tag " + e.Tag.String()
}

// Is reports whether target is ErrInvalidMock.
func (e NilDelegateError) Is(target error) bool { return target == ErrInvalidMock }

// DuplicateTagError is returned when two boxes share a tag.
type DuplicateTagError struct {
	Tag    reflect.Type
	First  int
	Second int
}

// Error implements the error interface.
func (e DuplicateTagError) Error() string {
	// Example: mock: boxes 0 and 2 share tag repo.Fetch
	return "mock: boxes " + strconv.Itoa(e.First) + " and " + strconv.Itoa(e.Second) + " share tag " + e.Tag.String()
}

// Is reports whether target is ErrInvalidMock.
func (e DuplicateTagError) Is(target error) bool { return target == ErrInvalidMock }

// Boxed is a delegate paired with its tag. Build one with Box.
type Boxed struct {
	tag reflect.Type
	fn  any
}

// Box pairs fn with the tag Tag.
func Box[Tag any](fn Tag) Boxed {
	return Boxed{tag: reflect.TypeFor[Tag](), fn: fn}
}

// Tag returns the tag type.
func (b Boxed) Tag() reflect.Type { return b.tag }

// Mock is an immutable set of boxed delegates, at most one per tag.
type Mock struct {
	tags typelist.TypeList
	fns  []any
}

// New validates boxes and collects them into a Mock.
func New(boxes ...Boxed) (*Mock, error) {
	tags := make([]reflect.Type, 0, len(boxes))
	fns := make([]any, 0, len(boxes))
	for i, b := range boxes {
		if b.tag == nil || b.tag.Kind() != reflect.Func {
			return nil, NotFuncTagError{Position: i, Tag: b.tag}
		}
		if b.fn == nil || reflect.ValueOf(b.fn).IsNil() {
			return nil, NilDelegateError{Position: i, Tag: b.tag}
		}
		tags = append(tags, b.tag)
		fns = append(fns, b.fn)
	}

	list, err := typelist.New(tags...)
	if err != nil {
		var dup typelist.DuplicateTypeError
		if errors.As(err, &dup) {
			return nil, DuplicateTagError{Tag: dup.Type, First: dup.First, Second: dup.Second}
		}
		return nil, err
	}
	return &Mock{tags: list, fns: fns}, nil
}

// MustNew is like New but panics on invalid boxes.
func MustNew(boxes ...Boxed) *Mock {
	m, err := New(boxes...)
	if err != nil {
		panic(err)
	}
	return m
}

// Tags returns the boxed tags in the order given to New.
func (m *Mock) Tags() typelist.TypeList {
	if m == nil {
		return typelist.TypeList{}
	}
	return m.tags
}

// Has reports whether a delegate is boxed under Tag.
func Has[Tag any](m *Mock) bool {
	return typelist.Find[Tag](m.Tags()).Found
}

// Unbox returns the delegate boxed under Tag. If there is none (or m is nil)
// it returns a no-op of the same signature that returns zero values.
func Unbox[Tag any](m *Mock) Tag {
	if res := typelist.Find[Tag](m.Tags()); res.Found {
		return m.fns[res.Index].(Tag)
	}
	return noop[Tag]()
}

func noop[Tag any]() Tag {
	var zero Tag
	t := reflect.TypeFor[Tag]()
	if t.Kind() != reflect.Func {
		return zero
	}
	fn := reflect.MakeFunc(t, func([]reflect.Value) []reflect.Value {
		out := make([]reflect.Value, t.NumOut())
		for i := range out {
			out[i] = reflect.Zero(t.Out(i))
		}
		return out
	})
	return fn.Interface().(Tag)
}
