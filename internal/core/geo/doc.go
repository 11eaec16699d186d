// Package geo provides the unit and coordinate conversions applied to raw
// device values: semicircles to degrees, metres per second to kilometres per
// hour, and metres to kilometres.
//
// Conversion helpers return ErrType for values that are neither numeric nor
// numeric text. That is a programming or decoding mistake, not a data-quality
// finding, so callers are expected to check it.
package geo
