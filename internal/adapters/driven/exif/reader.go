// Package exif reads embedded photo metadata with github.com/rwcarlsen/goexif.
//
// Tag names are returned category-prefixed ("GPS GPSLatitude",
// "Image Make", "EXIF FNumber") so the photo parser can bucket them.
package exif

import (
	"fmt"
	"io"
	"strings"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
	"github.com/custodia-labs/travelog/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.TagReader = (*Reader)(nil)

// Tag categories.
const (
	CategoryImage     = "Image"
	CategoryExif      = "EXIF"
	CategoryGPS       = "GPS"
	CategoryThumbnail = "Thumbnail"
	CategoryMaker     = "MakerNote"
	CategoryInterop   = "Interoperability"
)

// imageFields are the IFD0 fields describing the primary image.
var imageFields = map[goexif.FieldName]struct{}{
	goexif.ImageWidth:                 {},
	goexif.ImageLength:                {},
	goexif.BitsPerSample:              {},
	goexif.Compression:                {},
	goexif.PhotometricInterpretation:  {},
	goexif.Orientation:                {},
	goexif.SamplesPerPixel:            {},
	goexif.PlanarConfiguration:        {},
	goexif.YCbCrSubSampling:           {},
	goexif.YCbCrPositioning:           {},
	goexif.XResolution:                {},
	goexif.YResolution:                {},
	goexif.ResolutionUnit:             {},
	goexif.DateTime:                   {},
	goexif.ImageDescription:           {},
	goexif.Make:                       {},
	goexif.Model:                      {},
	goexif.Software:                   {},
	goexif.Artist:                     {},
	goexif.Copyright:                  {},
	goexif.ExifIFDPointer:             {},
	goexif.GPSInfoIFDPointer:          {},
	goexif.InteroperabilityIFDPointer: {},
	goexif.XPTitle:                    {},
	goexif.XPComment:                  {},
	goexif.XPAuthor:                   {},
	goexif.XPKeywords:                 {},
	goexif.XPSubject:                  {},
}

// Reader decodes EXIF blocks from JPEG and TIFF streams.
type Reader struct{}

// New creates an EXIF tag reader.
func New() *Reader {
	return &Reader{}
}

// ReadTags decodes the metadata in r.
// Sub-directory failures are logged and the readable tags are returned.
func (r *Reader) ReadTags(rd io.Reader) (domain.Tags, error) {
	x, err := goexif.Decode(rd)
	if err != nil {
		if x == nil || goexif.IsCriticalError(err) {
			return nil, fmt.Errorf("read exif: %w: %w", domain.ErrFileParsing, err)
		}
		logger.Debug("exif: partial metadata: %v", err)
	}

	tags := make(domain.Tags)
	w := walker(tags)
	if err := x.Walk(w); err != nil {
		return nil, fmt.Errorf("walk exif: %w: %w", domain.ErrFileParsing, err)
	}

	if thumb := thumbnail(x); len(thumb) > 0 {
		tags[domain.ThumbnailTag] = thumb
	}
	return tags, nil
}

type walker domain.Tags

func (w walker) Walk(name goexif.FieldName, tag *tiff.Tag) error {
	w[TagName(name)] = Value(tag)
	return nil
}

// thumbnail returns the embedded JPEG thumbnail, or nil. Offsets pointing
// outside the EXIF block are treated as absent.
func thumbnail(x *goexif.Exif) (thumb []byte) {
	defer func() {
		if recover() != nil {
			thumb = nil
		}
	}()

	b, err := x.JpegThumbnail()
	if err != nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// TagName prefixes a field name with its category.
// Unknown fields keep their bare name.
func TagName(name goexif.FieldName) string {
	n := string(name)
	switch {
	case strings.HasPrefix(n, goexif.UnknownPrefix):
		return n
	case name == goexif.MakerNote:
		return CategoryMaker + " " + n
	case name == goexif.InteroperabilityIndex:
		return CategoryInterop + " " + n
	case strings.HasPrefix(n, "Thumb"):
		return CategoryThumbnail + " " + strings.TrimPrefix(n, "Thumb")
	}
	if _, ok := imageFields[name]; ok {
		return CategoryImage + " " + n
	}
	if strings.HasPrefix(n, "GPS") {
		return CategoryGPS + " " + n
	}
	return CategoryExif + " " + n
}

// Value converts a tag to plain Go values. Multi-valued tags become
// slices. Rationals are kept exact as "num/den" text.
func Value(tag *tiff.Tag) any {
	n := int(tag.Count)

	switch tag.Format() {
	case tiff.StringVal:
		s, _ := tag.StringVal()
		return strings.TrimSpace(s)

	case tiff.IntVal:
		vals := make([]int64, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Int64(i)
			if err != nil {
				break
			}
			vals = append(vals, v)
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals

	case tiff.RatVal:
		vals := make([]string, 0, n)
		for i := 0; i < n; i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				break
			}
			vals = append(vals, fmt.Sprintf("%d/%d", num, den))
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals

	case tiff.FloatVal:
		vals := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Float(i)
			if err != nil {
				break
			}
			vals = append(vals, v)
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals

	default:
		return append([]byte(nil), tag.Val...)
	}
}
