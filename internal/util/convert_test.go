package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertString(t *testing.T) {
	var (
		s   string
		b   bool
		i   int
		i64 int64
		u   uint
		f   float64
		d   time.Duration
	)

	tests := []struct {
		name  string
		value string
		data  any
		check func(t *testing.T)
	}{
		{"string", "hello", &s, func(t *testing.T) { assert.Equal(t, "hello", s) }},
		{"bool", "true", &b, func(t *testing.T) { assert.True(t, b) }},
		{"int", "-42", &i, func(t *testing.T) { assert.Equal(t, -42, i) }},
		{"int64", "9000000000", &i64, func(t *testing.T) { assert.Equal(t, int64(9000000000), i64) }},
		{"uint", "7", &u, func(t *testing.T) { assert.Equal(t, uint(7), u) }},
		{"float64", "2.5", &f, func(t *testing.T) { assert.Equal(t, 2.5, f) }},
		{"duration", "1m30s", &d, func(t *testing.T) { assert.Equal(t, 90*time.Second, d) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, ConvertString(tt.value, tt.data, "--"+tt.name))
			tt.check(t)
		})
	}
}

func TestConvertString_Time(t *testing.T) {
	var when time.Time
	require.NoError(t, ConvertString("2024-03-01", &when, "--since"))
	assert.Equal(t, 2024, when.Year())
	assert.Equal(t, time.March, when.Month())
	assert.Equal(t, 1, when.Day())
}

func TestConvertString_Errors(t *testing.T) {
	var i int
	err := ConvertString("ten", &i, "--count")
	assert.ErrorIs(t, err, ErrConversion)
	assert.Contains(t, err.Error(), "--count")

	var c complex128
	err = ConvertString("1+2i", &c, "--c")
	assert.ErrorIs(t, err, ErrUnsupportedTypeConversion)
}

func TestConvertList(t *testing.T) {
	var ints []int
	require.NoError(t, ConvertList([]string{"1", "2", "3"}, &ints, "<n>"))
	assert.Equal(t, []int{1, 2, 3}, ints)

	var strs []string
	require.NoError(t, ConvertList([]string{"a", "b"}, &strs, "<s>"))
	assert.Equal(t, []string{"a", "b"}, strs)

	var floats []float64
	assert.ErrorIs(t, ConvertList([]string{"1.5", "x"}, &floats, "<f>"), ErrConversion)

	var m map[string]string
	assert.ErrorIs(t, ConvertList([]string{"a"}, &m, "<m>"), ErrUnsupportedTypeConversion)
}
