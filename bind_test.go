package docopt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldName(t *testing.T) {
	for key, want := range map[string]string{
		"--dry-run": "DryRun",
		"<dry-run>": "DryRun",
		"DRY_RUN":   "DryRun",
		"-v":        "V",
		"ship":      "Ship",
		"<x>":       "X",
		"--speed":   "Speed",
	} {
		assert.Equal(t, want, FieldName(key), key)
	}
}

func TestBind(t *testing.T) {
	doc := `Naval Fate.

Usage:
  naval_fate ship <name>... [--speed=<kn>] [--at=<time>] [--every=<d>] [-v...]
  naval_fate mine <x> <y> [--moored]

Options:
  --speed=<kn>  Speed in knots [default: 10].
  --at=<time>   Departure time.
  --every=<d>   Report interval [default: 1m]
  --moored      Moored mine.
  -v            Verbosity.
`
	type fleet struct {
		Ship      bool
		Mine      bool
		Names     []string `docopt:"<name>"`
		Speed     float64
		At        time.Time
		Every     time.Duration
		Verbosity int  `docopt:"-v"`
		Loud      bool `docopt:"-v"`
		X         string
		Moored    Value
		Ignored   string `docopt:"-"`
		unused    int
	}

	opts, err := Parse(doc, []string{"ship", "Guardian", "Nimitz", "--speed=12.5", "--at=2024-03-01 10:00", "-vv"}, false)
	require.NoError(t, err)

	got := fleet{Ignored: "keep", X: "keep"}
	require.NoError(t, opts.Bind(&got))

	assert.True(t, got.Ship)
	assert.False(t, got.Mine)
	assert.Equal(t, []string{"Guardian", "Nimitz"}, got.Names)
	assert.InDelta(t, 12.5, got.Speed, 1e-9)
	assert.True(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local).Equal(got.At), got.At)
	assert.Equal(t, time.Minute, got.Every)
	assert.Equal(t, 2, got.Verbosity)
	assert.True(t, got.Loud)
	assert.Equal(t, "keep", got.X, "absent values leave fields untouched")
	assert.Equal(t, BoolValue(false), got.Moored)
	assert.Equal(t, "keep", got.Ignored)
	assert.Zero(t, got.unused)
}

func TestBindConversions(t *testing.T) {
	opts := Opts{
		"--count": TextValue("3"),
		"--ports": ListValue("80", "443"),
		"--port":  TextValue("8080"),
		"--flag":  BoolValue(true),
		"--name":  TextValue("x"),
	}

	var dst struct {
		Count int
		Ports []int
		Port  []int64 `docopt:"--port"`
		Flag  string
	}
	require.NoError(t, opts.Bind(&dst))
	assert.Equal(t, 3, dst.Count)
	assert.Equal(t, []int{80, 443}, dst.Ports)
	assert.Equal(t, []int64{8080}, dst.Port)
	assert.Equal(t, "true", dst.Flag)

	var listIntoScalar struct {
		Ports int
	}
	assert.ErrorIs(t, opts.Bind(&listIntoScalar), ErrValueType)

	var boolIntoSlice struct {
		Flag []string
	}
	assert.ErrorIs(t, opts.Bind(&boolIntoSlice), ErrValueType)

	var badNumber struct {
		Name int
	}
	assert.ErrorIs(t, opts.Bind(&badNumber), ErrConversion)

	var unsupported struct {
		Name complex128
	}
	assert.ErrorIs(t, opts.Bind(&unsupported), ErrUnsupportedTypeConversion)

	var missingTag struct {
		Other string `docopt:"--other"`
	}
	assert.ErrorIs(t, opts.Bind(&missingTag), ErrKeyNotFound)
}

func TestBindTarget(t *testing.T) {
	opts := Opts{"--flag": BoolValue(true)}
	var s struct{ Flag bool }
	var nilPtr *struct{ Flag bool }
	n := 0

	assert.ErrorIs(t, opts.Bind(s), ErrBindTarget)
	assert.ErrorIs(t, opts.Bind(nilPtr), ErrBindTarget)
	assert.ErrorIs(t, opts.Bind(&n), ErrBindTarget)
	assert.ErrorIs(t, opts.Bind(nil), ErrBindTarget)
	assert.NoError(t, opts.Bind(&s))
	assert.True(t, s.Flag)

	var ps *struct{ Flag bool }
	assert.ErrorIs(t, opts.Bind(&ps), ErrBindTarget)
	ps = &struct{ Flag bool }{}
	assert.NoError(t, opts.Bind(&ps))
	assert.True(t, ps.Flag)
}

func TestBindPointerFields(t *testing.T) {
	opts := Opts{"--speed": TextValue("7"), "<x>": NoValue(), "--tags": ListValue("a")}

	var dst struct {
		Speed *int
		X     *string
		Tags  *[]string
	}
	require.NoError(t, opts.Bind(&dst))
	require.NotNil(t, dst.Speed)
	assert.Equal(t, 7, *dst.Speed)
	assert.Nil(t, dst.X)
	require.NotNil(t, dst.Tags)
	assert.Equal(t, []string{"a"}, *dst.Tags)
}
