package typelist_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sghaida/typevisit/typelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type X struct{}
type Y struct{}
type Z struct{ N int }

func TestNew_Empty(t *testing.T) {
	t.Parallel()

	l, err := typelist.New()
	require.NoError(t, err)
	assert.Zero(t, l.Len())
	assert.Empty(t, l.Types())
	assert.Equal(t, "{}", l.String())

	var zero typelist.TypeList
	assert.Zero(t, zero.Len())
}

func TestNew_PreservesOrder(t *testing.T) {
	t.Parallel()

	l, err := typelist.New(typelist.Type[Z](), typelist.Type[X](), typelist.Type[Y]())
	require.NoError(t, err)

	require.Equal(t, 3, l.Len())
	assert.Equal(t, typelist.Type[Z](), l.At(0))
	assert.Equal(t, typelist.Type[X](), l.At(1))
	assert.Equal(t, typelist.Type[Y](), l.At(2))
	assert.Equal(t, "{typelist_test.Z, typelist_test.X, typelist_test.Y}", l.String())

	idx, ok := l.Index(typelist.Type[Y]())
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	idx, ok = l.Index(typelist.Type[int]())
	assert.False(t, ok)
	assert.Equal(t, 3, idx)
}

func TestTypes_ReturnsCopy(t *testing.T) {
	t.Parallel()

	l := typelist.MustNew(typelist.Type[X](), typelist.Type[Y]())
	got := l.Types()
	got[0] = typelist.Type[int]()

	assert.Equal(t, typelist.Type[X](), l.At(0))
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	x := typelist.Type[X]()

	cases := []struct {
		name  string
		types []reflect.Type
		check func(t *testing.T, err error)
	}{
		{
			name:  "nil type",
			types: []reflect.Type{x, nil},
			check: func(t *testing.T, err error) {
				var e typelist.NilTypeError
				require.True(t, errors.As(err, &e))
				assert.Equal(t, 1, e.Index)
				assert.EqualError(t, err, "typelist: nil type at index 1")
			},
		},
		{
			name:  "pointer type",
			types: []reflect.Type{typelist.Type[*X]()},
			check: func(t *testing.T, err error) {
				var e typelist.ReferenceTypeError
				require.True(t, errors.As(err, &e))
				assert.Equal(t, 0, e.Index)
				assert.Equal(t, typelist.Type[*X](), e.Type)
				assert.Contains(t, err.Error(), "must be bare types")
			},
		},
		{
			name:  "duplicate type",
			types: []reflect.Type{x, typelist.Type[Y](), x},
			check: func(t *testing.T, err error) {
				var e typelist.DuplicateTypeError
				require.True(t, errors.As(err, &e))
				assert.Equal(t, x, e.Type)
				assert.Equal(t, 0, e.First)
				assert.Equal(t, 2, e.Second)
				assert.EqualError(t, err, "typelist: duplicate type typelist_test.X at indexes 0 and 2")
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l, err := typelist.New(tc.types...)
			require.Error(t, err)
			assert.ErrorIs(t, err, typelist.ErrInvalidList)
			assert.Zero(t, l.Len())
			tc.check(t, err)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		typelist.MustNew(typelist.Type[X](), typelist.Type[X]())
	})
	assert.NotPanics(t, func() {
		typelist.MustNew(typelist.Type[X]())
	})
}
