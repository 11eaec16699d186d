package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemicircleToDegree_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{"int", 1073741824, 90.0},
		{"int32", int32(1073741824), 90.0},
		{"negative int64", int64(-1073741824), -90.0},
		{"uint32", uint32(1073741824), 90.0},
		{"float", 1073741824.0, 90.0},
		{"string", "1073741824", 90.0},
		{"string with spaces", " 1073741824 ", 90.0},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SemicircleToDegree(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestSemicircleToDegree_CommaSeparated(t *testing.T) {
	got, err := SemicircleToDegree("358587055,1156290179")
	require.NoError(t, err)

	list, ok := got.([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.InDelta(t, 30.056419735774398, list[0], 1e-9)
	assert.InDelta(t, 96.91912318579853, list[1], 1e-9)
}

func TestSemicircleToDegree_Collections(t *testing.T) {
	t.Run("int slice", func(t *testing.T) {
		got, err := SemicircleToDegree([]int{1073741824, -1073741824})
		require.NoError(t, err)
		assert.Equal(t, []any{90.0, -90.0}, got)
	})

	t.Run("array", func(t *testing.T) {
		got, err := SemicircleToDegree([2]int64{1073741824, 0})
		require.NoError(t, err)
		assert.Equal(t, []any{90.0, 0.0}, got)
	})

	t.Run("mixed any slice", func(t *testing.T) {
		got, err := SemicircleToDegree([]any{"1073741824", 1073741824})
		require.NoError(t, err)
		assert.Equal(t, []any{90.0, 90.0}, got)
	})

	t.Run("nested", func(t *testing.T) {
		got, err := SemicircleToDegree([]any{[]int{1073741824}, "0,1073741824"})
		require.NoError(t, err)
		assert.Equal(t, []any{[]any{90.0}, []any{0.0, 90.0}}, got)
	})

	t.Run("empty slice", func(t *testing.T) {
		got, err := SemicircleToDegree([]int{})
		require.NoError(t, err)
		assert.Equal(t, []any{}, got)
	})
}

func TestSemicircleToDegree_TypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"bool", true},
		{"non numeric string", "north"},
		{"decimal string", "12.5"},
		{"map", map[string]int{"a": 1}},
		{"struct", struct{}{}},
		{"bad element", []any{1, "x"}},
		{"bad comma element", "1,x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SemicircleToDegree(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrType)
		})
	}
}

// The two fixtures below pin both formulas. LegacySquared reproduces the
// values stored by earlier releases; Linear is the default.
func TestSemicircleToDegree_ModeFixtures(t *testing.T) {
	const raw = 358587055

	linear, err := Linear.SemicircleToDegree(raw)
	require.NoError(t, err)
	assert.InDelta(t, 30.056419735774398, linear, 1e-9)

	squared, err := LegacySquared.SemicircleToDegree(raw)
	require.NoError(t, err)
	assert.InDelta(t, 10777843036.89522, squared, 1e-3)
}

func TestSemicircleToDegree_LegacySquaredLosesSign(t *testing.T) {
	pos, err := LegacySquared.SemicircleToDegree(1156290179)
	require.NoError(t, err)
	neg, err := LegacySquared.SemicircleToDegree(-1156290179)
	require.NoError(t, err)

	assert.Equal(t, pos, neg)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("linear")
	require.NoError(t, err)
	assert.Equal(t, Linear, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Linear, m)

	m, err = ParseMode("legacy_squared")
	require.NoError(t, err)
	assert.Equal(t, LegacySquared, m)
	assert.Equal(t, "legacy_squared", m.String())

	_, err = ParseMode("cubic")
	assert.Error(t, err)
}

func TestMode_Degrees(t *testing.T) {
	assert.InDelta(t, 90.0, Linear.Degrees(1073741824), 1e-9)
	assert.InDelta(t, 3.3527612686157227e-07, LegacySquared.Degrees(2), 1e-15)
}
