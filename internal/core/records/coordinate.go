package records

import (
	"math"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/geo"
)

// Geocoder resolves addresses and corrected elevations for a position.
// It is optional; a Coordinate without one keeps its raw altitude and an
// empty address.
type Geocoder interface {
	Address(longitude, latitude float64) (string, error)
	Elevation(longitude, latitude float64) (float64, error)
}

// Coordinate is a geographic position.
type Coordinate struct {
	Base

	Longitude        *float64 `json:"longitude,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Altitude         *float64 `json:"altitude,omitempty"`
	Datum            string   `json:"datum,omitempty"`
	Address          string   `json:"address,omitempty"`
	OriginalAltitude *float64 `json:"original_altitude,omitempty"`

	mode         geo.Mode
	geocoder     Geocoder
	lonConverted bool
	latConverted bool
	resolved     bool
}

// Location is the resolved view of a valid Coordinate.
type Location struct {
	Longitude        float64
	Latitude         float64
	Altitude         *float64
	Address          string
	OriginalAltitude *float64
}

// CoordinateOption configures a Coordinate.
type CoordinateOption func(*Coordinate)

// WithMode selects the semicircle conversion applied to out-of-range axes.
func WithMode(m geo.Mode) CoordinateOption {
	return func(c *Coordinate) { c.mode = m }
}

// WithGeocoder attaches an address and elevation resolver.
func WithGeocoder(g Geocoder) CoordinateOption {
	return func(c *Coordinate) { c.geocoder = g }
}

// NewCoordinate builds a Coordinate from raw fields. Datum defaults to WGS84.
func NewCoordinate(fields map[string]any, opts ...CoordinateOption) *Coordinate {
	c := &Coordinate{Datum: geo.WGS84}
	for _, opt := range opts {
		opt(c)
	}
	c.SetData(fields)
	return c
}

func (c *Coordinate) Kind() Kind { return KindCoordinate }

// SetData merges raw fields. The first altitude ever set is kept as
// OriginalAltitude.
func (c *Coordinate) SetData(fields map[string]any) {
	assign(c, fields)
	if c.OriginalAltitude == nil && c.Altitude != nil {
		alt := *c.Altitude
		c.OriginalAltitude = &alt
	}
}

func (c *Coordinate) Clean()                 { c.clean(c.validate) }
func (c *Coordinate) IsValid() bool          { return c.check(c.validate) }
func (c *Coordinate) Fields() map[string]any { return render(c) }

// validate converts axes still expressed in semicircles, then checks both
// axes lie strictly inside their degree ranges. Each axis converts at most
// once per instance.
func (c *Coordinate) validate() {
	c.normalizeAxis("longitude", c.Longitude, geo.LongitudeRange, &c.lonConverted)
	c.normalizeAxis("latitude", c.Latitude, geo.LatitudeRange, &c.latConverted)
}

func (c *Coordinate) normalizeAxis(name string, v *float64, bounds [2]float64, converted *bool) {
	if v == nil {
		c.addFinding(domain.FindingMissing, name, "%s can not be empty", name)
		return
	}

	if !*converted && math.Abs(*v) > bounds[1] {
		*v = c.mode.Degrees(*v)
		*converted = true
	}

	if !(bounds[0] < *v && *v < bounds[1]) {
		c.addFinding(domain.FindingRange, name,
			"%s must be between %v and %v, but %v has been set", name, bounds[0], bounds[1], *v)
	}
}

// Position returns longitude and latitude when the coordinate is valid.
func (c *Coordinate) Position() (longitude, latitude float64, ok bool) {
	if !c.IsValid() {
		return 0, 0, false
	}
	return *c.Longitude, *c.Latitude, true
}

// Location resolves the address and corrected altitude through the attached
// Geocoder, if any, and returns the full view of a valid coordinate.
// Geocoder failures leave the address and altitude unchanged.
func (c *Coordinate) Location() (Location, bool) {
	if !c.IsValid() {
		return Location{}, false
	}
	c.resolve()

	return Location{
		Longitude:        *c.Longitude,
		Latitude:         *c.Latitude,
		Altitude:         c.Altitude,
		Address:          c.Address,
		OriginalAltitude: c.OriginalAltitude,
	}, true
}

func (c *Coordinate) resolve() {
	if c.geocoder == nil || c.resolved {
		return
	}
	c.resolved = true
	lon, lat := *c.Longitude, *c.Latitude

	if c.Address == "" {
		if addr, err := c.geocoder.Address(lon, lat); err == nil {
			c.Address = addr
		}
	}
	if elev, err := c.geocoder.Elevation(lon, lat); err == nil {
		c.Altitude = &elev
	}
}
