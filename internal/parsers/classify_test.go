package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/records"
)

func gearFields() map[string]any {
	return map[string]any{
		"brand":         "garmin",
		"manufacturer":  "garmin",
		"model":         "edge 530",
		"serial_number": 3958411442,
		"product_name":  "Edge",
		"unknown_253":   7,
	}
}

func TestClassify_DropUnknown(t *testing.T) {
	r, err := Classify(gearFields(), records.KindGear, true)
	require.NoError(t, err)

	g, ok := r.(*records.Gear)
	require.True(t, ok)
	assert.Equal(t, "edge 530", *g.Model)
	assert.Equal(t, 3958411442, g.SerialNumber)
	assert.Empty(t, g.Overflow)
}

func TestClassify_KeepUnknownInOverflow(t *testing.T) {
	r, err := Classify(gearFields(), records.KindGear, false)
	require.NoError(t, err)

	g := r.(*records.Gear)
	assert.Equal(t, map[string]any{"product_name": "Edge"}, g.Overflow)
	assert.NotContains(t, g.Overflow, "unknown_253")
}

func TestClassify_NotValidated(t *testing.T) {
	r, err := Classify(map[string]any{"serial_number": 1}, records.KindGear, true)
	require.NoError(t, err)

	assert.Empty(t, r.Findings())
	assert.False(t, r.IsValid())
}

func TestClassify_Unclassified(t *testing.T) {
	r, err := Classify(map[string]any{"event": "timer", "unknown_7": 1}, records.KindUnclassified, false)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"event": "timer"}, r.Fields()[domain.OverflowField])
}

func TestClassify_UnknownKind(t *testing.T) {
	_, err := Classify(nil, "weather", true)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
