package domain

import "runtime"

// Semicircle conversion modes.
const (
	// SemicircleLinear converts with semicircles * 180 / 2^31.
	SemicircleLinear = "linear"

	// SemicircleLegacySquared squares the input first, matching data
	// stored by earlier releases.
	SemicircleLegacySquared = "legacy_squared"
)

// ParseSettings controls classification behaviour.
type ParseSettings struct {
	// DropUnknown discards fields a record kind does not declare.
	// When false they are kept under OverflowField.
	DropUnknown bool

	// SemicircleMode selects the semicircle-to-degree formula.
	SemicircleMode string

	// FITMessages maps each activity bucket to the message names routed to it.
	// BucketUnclassified needs no entry; it is the fallback.
	FITMessages map[Bucket][]string

	// PhotoCategories maps each photo bucket to the tag categories routed to it.
	// BucketOther needs no entry; it is the fallback.
	PhotoCategories map[Bucket][]string
}

// IngestSettings controls batch ingestion.
type IngestSettings struct {
	// Workers is the number of files parsed in parallel.
	Workers int

	// Rate is the sustained number of files started per second. Zero disables throttling.
	Rate float64

	// Burst is the maximum number of files started at once.
	Burst int

	// Actor is recorded as the creator of stored documents.
	Actor string
}

// Settings holds the application configuration.
type Settings struct {
	// MediaRoot is stripped from file paths to form storage-relative paths.
	MediaRoot string

	// DataDir holds the metadata database.
	DataDir string

	// GeoStaticDir holds province.json and city.json.
	GeoStaticDir string

	// Parse controls classification.
	Parse ParseSettings

	// Ingest controls batch ingestion.
	Ingest IngestSettings
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Parse: ParseSettings{
			DropUnknown:    true,
			SemicircleMode: SemicircleLinear,
			FITMessages: map[Bucket][]string{
				BucketActivityRecord: {"record"},
				BucketGear:           {"device_info", "device_settings"},
				BucketActivity:       {"session", "activity"},
				BucketTraveller:      {"user_profile"},
			},
			PhotoCategories: map[Bucket][]string{
				BucketImage:     {"image"},
				BucketGPS:       {"gps"},
				BucketExif:      {"exif"},
				BucketThumbnail: {"thumbnail"},
				BucketMaker:     {"makernote"},
			},
		},
		Ingest: IngestSettings{
			Workers: runtime.NumCPU(),
			Rate:    0,
			Burst:   1,
		},
	}
}

// IsValidSemicircleMode returns true if the mode is recognised.
func IsValidSemicircleMode(mode string) bool {
	return mode == SemicircleLinear || mode == SemicircleLegacySquared
}
