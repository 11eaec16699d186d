package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

func TestGear_MissingIdentityFields(t *testing.T) {
	g := &Gear{}

	assert.False(t, g.IsValid())

	findings := g.Findings()
	require.Len(t, findings, 3)
	fields := []string{findings[0].Field, findings[1].Field, findings[2].Field}
	assert.Equal(t, []string{"brand", "manufacturer", "model"}, fields)
	for _, f := range findings {
		assert.Equal(t, domain.FindingMissing, f.Kind)
	}
}

func TestGear_DefaultsType(t *testing.T) {
	g := &Gear{}
	g.SetData(map[string]any{"brand": "garmin", "manufacturer": "garmin", "model": "edge 530"})

	require.True(t, g.IsValid())
	assert.Equal(t, GearUnknown, g.Type)
	assert.Equal(t, "edge 530", *g.Model)
}

func TestGear_InvalidStaysInvalidAfterFix(t *testing.T) {
	g := &Gear{}
	require.False(t, g.IsValid())

	g.SetData(map[string]any{"brand": "garmin", "manufacturer": "garmin", "model": "edge"})
	assert.False(t, g.IsValid())
}

func TestEnvironment_Validate(t *testing.T) {
	tests := []struct {
		name  string
		data  map[string]any
		valid bool
	}{
		{"plausible", map[string]any{"temperature": 5}, true},
		{"negative", map[string]any{"temperature": -40}, true},
		{"no temperature sensor", map[string]any{"gradient": 2.5}, true},
		{"empty", map[string]any{}, true},
		{"too hot", map[string]any{"temperature": 127}, false},
		{"not numeric", map[string]any{"temperature": "warm"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Environment{}
			e.SetData(tt.data)
			assert.Equal(t, tt.valid, e.IsValid())
		})
	}
}

func TestPhysiological_Validate(t *testing.T) {
	tests := []struct {
		name  string
		data  map[string]any
		valid bool
	}{
		{"speed", map[string]any{"speed": 9.5}, true},
		{"heart rate", map[string]any{"heart_rate": 140}, true},
		{"empty", map[string]any{}, false},
		{"negative speed", map[string]any{"speed": -1}, false},
		{"impossible heart rate", map[string]any{"heart_rate": 300}, false},
		{"negative power", map[string]any{"power": -20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Physiological{}
			p.SetData(tt.data)
			assert.Equal(t, tt.valid, p.IsValid())
		})
	}
}

func TestActivity_Fields(t *testing.T) {
	a := &Activity{}
	a.SetData(map[string]any{
		"sport":          "cycling",
		"total_distance": 42195.0,
		"avg_speed":      25.2,
		"start_position": []float64{96.9, 30.1},
		"nec_position":   nil,
	})
	a.SetTime(1569544331, UTC, false)

	require.True(t, a.IsValid())
	f := a.Fields()
	assert.Equal(t, "cycling", f["sport"])
	assert.Equal(t, 42195.0, f["total_distance"])
	assert.Equal(t, 25.2, f["avg_speed"])
	assert.Equal(t, []float64{96.9, 30.1}, f["start_position"])
	assert.NotContains(t, f, "nec_position")
	assert.Equal(t, int64(1569544331), f["timestamp"])
	assert.Equal(t, "2019-09-27 00-32-11 +0000", f["time"])
}

func TestUnclassified_KeepsEverythingInOverflow(t *testing.T) {
	u := &Unclassified{}
	u.SetData(map[string]any{"event": "timer", "data": 0})
	u.SetTime(nil, "", true)

	require.True(t, u.IsValid())
	f := u.Fields()
	assert.Equal(t, map[string]any{"event": "timer", "data": 0}, f[domain.OverflowField])
}
