package domain

// RawMessage is one decoded message from an activity file.
// It is the decoder's output before classification.
type RawMessage struct {
	// Name identifies the message type (e.g., "record", "session").
	// Matching against it is case-insensitive.
	Name string

	// Fields holds the decoded field values keyed by field name.
	Fields map[string]any
}

// Tags is the flat tag-name to value mapping read from photo metadata.
// Tag names carry their category as the first whitespace-separated token,
// e.g. "GPS GPSLatitude".
type Tags map[string]any

// ThumbnailTag is the reserved tag name under which a metadata reader
// places the raw thumbnail payload.
const ThumbnailTag = "JPEGThumbnail"

// UnknownFieldPrefix marks device-native fields with no known meaning.
const UnknownFieldPrefix = "unknown"

// OverflowField is the reserved attribute holding fields a record kind
// does not declare.
const OverflowField = "_unorganized"
