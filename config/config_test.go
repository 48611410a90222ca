package config_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sghaida/typevisit/config"
	"github.com/sghaida/typevisit/typelist"
	"github.com/sghaida/typevisit/visit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type circle struct{ r float64 }
type square struct{ side float64 }

func registry() *typelist.MapRegistry {
	r := typelist.NewMapRegistry()
	typelist.Register[circle](r, "shape.circle")
	typelist.Register[square](r, "shape.square")
	return r
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "visit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(strings.NewReader(`
types:
  - shape.square
  - shape.circle
onUnhandled: error
logLevel: debug
`))
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Types:       []string{"shape.square", "shape.circle"},
		OnUnhandled: "error",
		LogLevel:    "debug",
	}, cfg)
}

func TestLoad_EmptyDocumentIsDefault(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  string
		want string
	}{
		{name: "unknown field", doc: "typez: [a]\n", want: "field typez not found"},
		{name: "bad policy", doc: "onUnhandled: overwrite\n", want: "onUnhandled must be one of"},
		{name: "bad level", doc: "logLevel: loud\n", want: "logLevel"},
		{name: "empty name", doc: "types: [a, '']\n", want: "types[1] is empty"},
		{name: "duplicate name", doc: "types: [a, b, a]\n", want: `types[0] and types[2] both name "a"`},
		{name: "not yaml", doc: "types: [\n", want: "config: decode"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	path := writeFile(t, "types: [shape.circle]\nonUnhandled: ignore\n")

	t.Setenv(config.EnvOnUnhandled, "log")
	t.Setenv(config.EnvLogLevel, "warn")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "log", cfg.OnUnhandled)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"shape.circle"}, cfg.Types)
}

func TestLoadFile_EnvCorrectsFileValue(t *testing.T) {
	path := writeFile(t, "types: [shape.circle]\nonUnhandled: explode\nlogLevel: loud\n")

	t.Setenv(config.EnvOnUnhandled, "error")
	t.Setenv(config.EnvLogLevel, "debug")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.OnUnhandled)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFile_InvalidFileValueWithoutEnv(t *testing.T) {
	path := writeFile(t, "types: [shape.circle]\nonUnhandled: explode\n")
	t.Setenv(config.EnvOnUnhandled, "")

	_, err := config.LoadFile(path)
	assert.ErrorIs(t, err, visit.ErrConfiguration)
	assert.Contains(t, err.Error(), path)
}

func TestLoadFile_InvalidEnvOverride(t *testing.T) {
	path := writeFile(t, "types: [shape.circle]\n")
	t.Setenv(config.EnvOnUnhandled, "explode")

	_, err := config.LoadFile(path)
	assert.ErrorIs(t, err, visit.ErrConfiguration)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := writeFile(t, "bogus: true\n")
	_, err = config.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestTypeList(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Types: []string{"shape.square", "shape.circle"}}
	l, err := cfg.TypeList(registry())
	require.NoError(t, err)
	assert.Equal(t, typelist.MustNew(typelist.Type[square](), typelist.Type[circle]()), l)

	cfg.Types = append(cfg.Types, "shape.hexagon")
	_, err = cfg.TypeList(registry())
	assert.ErrorAs(t, err, new(typelist.UnknownTypeNameError))
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := config.Config{LogLevel: "warn"}.Logger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = config.Config{LogLevel: "nope"}.Logger(&buf)
	assert.Error(t, err)

	_, err = config.Config{}.Logger(&buf)
	assert.NoError(t, err)
}

func TestDispatcher(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(strings.NewReader("types: [shape.circle, shape.square]\nonUnhandled: error\n"))
	require.NoError(t, err)

	var seen []float64
	d, err := cfg.Dispatcher(registry(), nil, visit.On(func(c *circle) { seen = append(seen, c.r) }))
	require.NoError(t, err)
	assert.Equal(t, visit.PolicyError, d.Policy())

	handled, err := d.Dispatch(&circle{r: 2})
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []float64{2}, seen)

	_, err = d.Dispatch(&square{})
	assert.ErrorIs(t, err, visit.ErrUnhandled)
}

func TestDispatcher_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Config{Types: []string{"nope"}}.Dispatcher(registry(), nil)
	assert.ErrorIs(t, err, typelist.ErrInvalidList)

	_, err = config.Config{Types: []string{"shape.circle"}, OnUnhandled: "bad"}.Dispatcher(registry(), nil)
	assert.ErrorIs(t, err, visit.ErrConfiguration)

	_, err = config.Config{Types: []string{"shape.circle"}}.Dispatcher(registry(), nil, visit.On(func(*square) {}))
	assert.ErrorAs(t, err, new(visit.UnsupportedActionTypeError))
}
