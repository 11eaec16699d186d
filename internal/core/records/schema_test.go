package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

func TestAttributes(t *testing.T) {
	assert.Equal(t, []string{"gradient", "temperature"}, Attributes(&Environment{}))
	assert.Equal(t, []string{"heart_rate", "power", "speed"}, Attributes(&Physiological{}))
	assert.Empty(t, Attributes(&Unclassified{}))

	coord := Attributes(NewCoordinate(nil))
	assert.Contains(t, coord, "longitude")
	assert.Contains(t, coord, "original_altitude")
	assert.NotContains(t, coord, "timestamp")
}

func TestDeclares(t *testing.T) {
	assert.True(t, Declares(&Gear{}, "serial_number"))
	assert.True(t, Declares(&Activity{}, "avg_left_pco"))
	assert.True(t, Declares(&Traveller{}, "resting_heart_rate"))
	assert.False(t, Declares(&Gear{}, "timestamp"))
	assert.False(t, Declares(&Gear{}, domain.OverflowField))
}

func TestSetData_LastWriteWins(t *testing.T) {
	e := &Environment{}
	e.SetData(map[string]any{"temperature": 5})
	e.SetData(map[string]any{"temperature": 7})

	require.NotNil(t, e.Temperature)
	assert.Equal(t, 7.0, *e.Temperature)
}

func TestSetData_OverflowMerge(t *testing.T) {
	g := &Gear{}
	g.SetData(map[string]any{
		"brand":              "garmin",
		"ant_id":             12,
		domain.OverflowField: map[string]any{"product_name": "edge"},
	})
	g.SetData(map[string]any{domain.OverflowField: map[string]any{"hw": 3}})

	assert.Equal(t, map[string]any{"ant_id": 12, "product_name": "edge", "hw": 3}, g.Overflow)
}

func TestSetData_OverflowMustBeMapping(t *testing.T) {
	g := &Gear{}
	g.SetData(map[string]any{domain.OverflowField: "nope"})

	findings := g.Findings()
	require.Len(t, findings, 1)
	assert.Equal(t, domain.FindingType, findings[0].Kind)
}

func TestSetData_NilClearsAttribute(t *testing.T) {
	e := &Environment{}
	e.SetData(map[string]any{"temperature": 5})
	e.SetData(map[string]any{"temperature": nil})

	assert.Nil(t, e.Temperature)
}

func TestSetData_StringAttributes(t *testing.T) {
	g := &Gear{}
	g.SetData(map[string]any{"brand": "garmin", "manufacturer": 1, "model": "edge", "type": GearRideComputer})

	assert.Equal(t, "1", *g.Manufacturer)
	assert.Equal(t, GearRideComputer, g.Type)
}

func TestFields_OverflowIsCopied(t *testing.T) {
	u := &Unclassified{}
	u.SetData(map[string]any{"k": "v"})

	f := u.Fields()
	f[domain.OverflowField].(map[string]any)["k"] = "changed"
	assert.Equal(t, "v", u.Overflow["k"])
}
