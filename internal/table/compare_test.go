package table

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		order  Order
		method Method
		want   bool
	}{
		{"numerical ascending less", "1", "2", Ascending, Numerical, true},
		{"numerical ascending greater", "10", "2", Ascending, Numerical, false},
		{"numerical descending greater", "10", "2", Descending, Numerical, true},
		{"numerical descending less", "1", "2", Descending, Numerical, false},
		{"numerical negative and exponent", "-1e3", "0.5", Ascending, Numerical, true},
		{"numerical equal is false", "2.0", "2", Ascending, Numerical, false},
		{"numerical equal is false descending", "2", "2.0", Descending, Numerical, false},
		{"numerical infinity", "inf", "1e308", Descending, Numerical, true},
		{"alphabetical ascending", "apple", "banana", Ascending, Alphabetical, true},
		{"alphabetical descending", "apple", "banana", Descending, Alphabetical, false},
		{"alphabetical is bytewise not numeric", "10", "2", Ascending, Alphabetical, true},
		{"alphabetical uppercase sorts first", "Zed", "abe", Ascending, Alphabetical, true},
		{"alphabetical equal is false", "x", "x", Descending, Alphabetical, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b, tt.order, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_NumericalRejectsNonNumbers(t *testing.T) {
	for _, pair := range [][2]string{{"abc", "1"}, {"1", "abc"}, {"", "1"}} {
		_, err := Compare(pair[0], pair[1], Ascending, Numerical)
		require.Error(t, err, "Compare(%q, %q)", pair[0], pair[1])

		var vpe *ValueParseError
		require.True(t, errors.As(err, &vpe))
	}
}

func TestParseNumber(t *testing.T) {
	valid := map[string]float64{
		"0":         0,
		"42":        42,
		"-3.5":      -3.5,
		"+7":        7,
		".5":        0.5,
		"1e3":       1000,
		"2.5E-1":    0.25,
		"inf":       math.Inf(1),
		"-Infinity": math.Inf(-1),
		"1e400":     math.Inf(1),
	}
	for in, want := range valid {
		got, err := ParseNumber(in)
		require.NoError(t, err, "ParseNumber(%q)", in)
		assert.Equal(t, want, got, "ParseNumber(%q)", in)
	}

	invalid := []string{"", " 1", "1 ", "1,000", "1_000", "0x10", "0x1p-2", "NaN", "nan", "12abc", "€5"}
	for _, in := range invalid {
		_, err := ParseNumber(in)
		require.Error(t, err, "ParseNumber(%q)", in)

		var vpe *ValueParseError
		require.True(t, errors.As(err, &vpe))
		assert.Equal(t, in, vpe.Value)
	}
}

func TestParseOrderAndMethod(t *testing.T) {
	o, err := ParseOrder("ascending")
	require.NoError(t, err)
	assert.Equal(t, Ascending, o)

	o, err = ParseOrder("descending")
	require.NoError(t, err)
	assert.Equal(t, Descending, o)

	_, err = ParseOrder("Ascending")
	assert.Error(t, err)

	m, err := ParseMethod("alphabetical")
	require.NoError(t, err)
	assert.Equal(t, Alphabetical, m)

	m, err = ParseMethod("numerical")
	require.NoError(t, err)
	assert.Equal(t, Numerical, m)

	_, err = ParseMethod("natural")
	assert.ErrorContains(t, err, "invalid sort method")

	assert.Equal(t, "descending", Descending.String())
	assert.Equal(t, "alphabetical", Alphabetical.String())
}
