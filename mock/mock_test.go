package mock_test

import (
	"errors"
	"testing"

	"github.com/sghaida/typevisit/mock"
	"github.com/sghaida/typevisit/typelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Foo func()
type Bar func(s string) int
type Fetch func(id string) (string, error)

// Repo is the dependency a service under test sees.
type Repo interface {
	Foo()
	Bar(s string) int
	Fetch(id string) (string, error)
}

// fakeRepo forwards every method to whatever delegate was boxed for it.
type fakeRepo struct{ m *mock.Mock }

func (f fakeRepo) Foo()                            { mock.Unbox[Foo](f.m)() }
func (f fakeRepo) Bar(s string) int                { return mock.Unbox[Bar](f.m)(s) }
func (f fakeRepo) Fetch(id string) (string, error) { return mock.Unbox[Fetch](f.m)(id) }

var _ Repo = fakeRepo{}

// testable mirrors a service that calls into its injected repo.
type testable struct{ repo Repo }

func (t testable) foo() { t.repo.Foo() }

func (t testable) bar(s string) int {
	t.repo.Foo()
	return t.repo.Bar(s)
}

func TestUnbox_ForwardsToBoxedDelegates(t *testing.T) {
	t.Parallel()

	var log []string
	m, err := mock.New(
		mock.Box[Foo](func() { log = append(log, "foo") }),
		mock.Box[Bar](func(s string) int { log = append(log, "bar "+s); return len(s) }),
	)
	require.NoError(t, err)

	svc := testable{repo: fakeRepo{m: m}}
	svc.foo()
	n := svc.bar("xxx")

	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"foo", "foo", "bar xxx"}, log)
}

func TestUnbox_MissingTagIsNoop(t *testing.T) {
	t.Parallel()

	m := mock.MustNew(mock.Box[Foo](func() {}))

	assert.True(t, mock.Has[Foo](m))
	assert.False(t, mock.Has[Fetch](m))

	v, err := mock.Unbox[Fetch](m)("id")
	assert.Empty(t, v)
	assert.NoError(t, err)
	assert.Zero(t, mock.Unbox[Bar](m)("abc"))
	assert.NotPanics(t, func() { mock.Unbox[Foo](nil)() })
}

func TestUnbox_NonFuncTagYieldsZero(t *testing.T) {
	t.Parallel()

	assert.Zero(t, mock.Unbox[int](nil))
	assert.False(t, mock.Has[int](nil))
}

func TestNew_Empty(t *testing.T) {
	t.Parallel()

	m, err := mock.New()
	require.NoError(t, err)
	assert.Zero(t, m.Tags().Len())
}

func TestNew_PreservesTagOrder(t *testing.T) {
	t.Parallel()

	m := mock.MustNew(
		mock.Box[Bar](func(string) int { return 0 }),
		mock.Box[Foo](func() {}),
	)
	tags := m.Tags()
	require.Equal(t, 2, tags.Len())
	assert.Equal(t, typelist.Type[Bar](), tags.At(0))
	assert.Equal(t, typelist.Type[Foo](), tags.At(1))
	assert.Equal(t, typelist.Type[Foo](), mock.Box[Foo](nil).Tag())
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	var nilFoo Foo

	t.Run("duplicate tag", func(t *testing.T) {
		t.Parallel()

		_, err := mock.New(
			mock.Box[Foo](func() {}),
			mock.Box[Bar](func(string) int { return 0 }),
			mock.Box[Foo](func() {}),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, mock.ErrInvalidMock)

		var dup mock.DuplicateTagError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, 0, dup.First)
		assert.Equal(t, 2, dup.Second)
		assert.EqualError(t, err, "mock: boxes 0 and 2 share tag mock_test.Foo")
	})

	t.Run("nil delegate", func(t *testing.T) {
		t.Parallel()

		_, err := mock.New(mock.Box[Foo](func() {}), mock.Box[Foo](nilFoo))
		var e mock.NilDelegateError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, 1, e.Position)
		assert.EqualError(t, err, "mock: box 1 has a nil delegate for tag mock_test.Foo")
	})

	t.Run("non func tag", func(t *testing.T) {
		t.Parallel()

		_, err := mock.New(mock.Box[int](3))
		var e mock.NotFuncTagError
		require.True(t, errors.As(err, &e))
		assert.ErrorIs(t, err, mock.ErrInvalidMock)
		assert.EqualError(t, err, "mock: box 0 has tag int, which is not a func type")

		_, err = mock.New(mock.Boxed{})
		assert.EqualError(t, err, "mock: box 0 has tag <nil>, which is not a func type")
	})

	t.Run("must new panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { mock.MustNew(mock.Box[Foo](nilFoo)) })
	})
}
