package records

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/geo"
)

func TestCoordinate_InRangeIsValid(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{116.39, 39.9},
		{-179.999, -89.999},
		{179.999, 89.999},
		{-73.98, 40.75},
	}

	for _, p := range points {
		c := NewCoordinate(map[string]any{"longitude": p[0], "latitude": p[1]})
		require.True(t, c.IsValid(), "point %v", p)

		lon, lat, ok := c.Position()
		require.True(t, ok)
		assert.Equal(t, p[0], lon)
		assert.Equal(t, p[1], lat)
	}
}

func TestCoordinate_DefaultDatum(t *testing.T) {
	c := NewCoordinate(nil)
	assert.Equal(t, geo.WGS84, c.Datum)
}

func TestCoordinate_SemicircleConversionLinear(t *testing.T) {
	c := NewCoordinate(map[string]any{
		"longitude": 1156290179,
		"latitude":  358587055,
	})

	require.True(t, c.IsValid())
	assert.InDelta(t, 96.91912318579853, *c.Longitude, 1e-9)
	assert.InDelta(t, 30.056419735774398, *c.Latitude, 1e-9)
}

func TestCoordinate_SemicircleConversionLegacySquared(t *testing.T) {
	c := NewCoordinate(map[string]any{
		"longitude": 1156290179,
		"latitude":  358587055,
	}, WithMode(geo.LegacySquared))

	assert.False(t, c.IsValid())
	assert.InDelta(t, 10777843036.89522, *c.Latitude, 1e-3)

	var ranges int
	for _, f := range c.Findings() {
		if f.Kind == domain.FindingRange {
			ranges++
		}
	}
	assert.Equal(t, 2, ranges)
}

func TestCoordinate_NegativeSemicircles(t *testing.T) {
	c := NewCoordinate(map[string]any{
		"longitude": -1156290179,
		"latitude":  -358587055,
	})

	require.True(t, c.IsValid())
	assert.InDelta(t, -96.91912318579853, *c.Longitude, 1e-9)
	assert.InDelta(t, -30.056419735774398, *c.Latitude, 1e-9)
}

func TestCoordinate_ConvertsOnce(t *testing.T) {
	c := NewCoordinate(map[string]any{"longitude": 1156290179, "latitude": 358587055})
	require.True(t, c.IsValid())
	require.True(t, c.IsValid())

	assert.InDelta(t, 96.91912318579853, *c.Longitude, 1e-9)
}

func TestCoordinate_BoundsAreOpen(t *testing.T) {
	c := NewCoordinate(map[string]any{"longitude": 180, "latitude": 0})
	assert.False(t, c.IsValid())

	c = NewCoordinate(map[string]any{"longitude": 0, "latitude": 90})
	assert.False(t, c.IsValid())

	c = NewCoordinate(map[string]any{"longitude": 0, "latitude": -90})
	assert.False(t, c.IsValid())
}

func TestCoordinate_MissingAxes(t *testing.T) {
	c := NewCoordinate(map[string]any{"altitude": 10})

	assert.False(t, c.IsValid())
	findings := c.Findings()
	require.Len(t, findings, 2)
	assert.Equal(t, domain.FindingMissing, findings[0].Kind)
	assert.Equal(t, "longitude", findings[0].Field)
	assert.Equal(t, "latitude", findings[1].Field)

	_, _, ok := c.Position()
	assert.False(t, ok)
}

func TestCoordinate_InvalidStaysInvalidAfterFix(t *testing.T) {
	c := NewCoordinate(map[string]any{"longitude": 10, "latitude": 95})
	require.False(t, c.IsValid())

	c.SetData(map[string]any{"latitude": 45})
	assert.False(t, c.IsValid())
	assert.Equal(t, 45.0, *c.Latitude)
}

func TestCoordinate_OriginalAltitude(t *testing.T) {
	c := NewCoordinate(map[string]any{"longitude": 10, "latitude": 10, "altitude": 3284.0})
	c.SetData(map[string]any{"altitude": 3300.0})

	require.NotNil(t, c.OriginalAltitude)
	assert.Equal(t, 3284.0, *c.OriginalAltitude)
	assert.Equal(t, 3300.0, *c.Altitude)
}

type stubGeocoder struct {
	address   string
	elevation float64
	err       error
	calls     int
}

func (s *stubGeocoder) Address(_, _ float64) (string, error) {
	s.calls++
	return s.address, s.err
}

func (s *stubGeocoder) Elevation(_, _ float64) (float64, error) {
	return s.elevation, s.err
}

func TestCoordinate_LocationWithGeocoder(t *testing.T) {
	g := &stubGeocoder{address: "Lhasa", elevation: 3650}
	c := NewCoordinate(map[string]any{"longitude": 91.1, "latitude": 29.6, "altitude": 3600.0}, WithGeocoder(g))

	loc, ok := c.Location()
	require.True(t, ok)
	assert.Equal(t, "Lhasa", loc.Address)
	assert.Equal(t, 3650.0, *loc.Altitude)
	assert.Equal(t, 3600.0, *loc.OriginalAltitude)

	_, _ = c.Location()
	assert.Equal(t, 1, g.calls)
}

func TestCoordinate_LocationGeocoderFailure(t *testing.T) {
	g := &stubGeocoder{err: errors.New("offline")}
	c := NewCoordinate(map[string]any{"longitude": 91.1, "latitude": 29.6, "altitude": 3600.0}, WithGeocoder(g))

	loc, ok := c.Location()
	require.True(t, ok)
	assert.Empty(t, loc.Address)
	assert.Equal(t, 3600.0, *loc.Altitude)
}

func TestCoordinate_LocationInvalid(t *testing.T) {
	c := NewCoordinate(map[string]any{"longitude": 200.5})
	loc, ok := c.Location()
	assert.False(t, ok)
	assert.Equal(t, Location{}, loc)
}

func TestCoordinate_TypeFinding(t *testing.T) {
	c := NewCoordinate(map[string]any{"longitude": "east", "latitude": 10})

	assert.False(t, c.IsValid())
	assert.Equal(t, domain.FindingType, c.Findings()[0].Kind)
}
