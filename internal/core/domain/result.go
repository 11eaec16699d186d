package domain

// Format identifies the file format a parser handles.
type Format string

// Supported formats.
const (
	FormatFIT   Format = "fit"
	FormatPhoto Format = "photo"
	FormatVideo Format = "video"
)

// Rejection describes an input dropped, in whole or in part, because it
// failed validation.
type Rejection struct {
	// Bucket is the bucket the input was dispatched to.
	Bucket Bucket `json:"bucket"`

	// Index is the position of the source message in the decoded message
	// list. Activity files are decoded grouped by message type, so this is
	// not the byte order of messages in the file.
	Index int `json:"index"`

	// Partial is set when the input was accepted without some of its
	// sub-records. Findings then describe the dropped sub-records only.
	Partial bool `json:"partial,omitempty"`

	// Findings are the reasons the input was rejected.
	Findings []Finding `json:"findings"`
}

// ParseResult is the output of parsing one file.
// It is built once per parse and not modified afterwards.
type ParseResult struct {
	// Path is the storage-relative path of the source file.
	Path string `json:"path"`

	// Format is the format of the source file.
	Format Format `json:"format"`

	// Records maps each activity-file bucket to its accepted records, in input order.
	Records map[Bucket][]map[string]any `json:"records,omitempty"`

	// Categories maps each photo-metadata bucket to its flat field mapping.
	Categories map[Bucket]map[string]any `json:"categories,omitempty"`

	// Rejected lists inputs dropped by validation.
	Rejected []Rejection `json:"rejected,omitempty"`
}

// Count returns the number of accepted entries in a bucket.
func (r *ParseResult) Count(b Bucket) int {
	if r.Records != nil {
		if entries, ok := r.Records[b]; ok {
			return len(entries)
		}
	}
	return len(r.Categories[b])
}

// Total returns the number of accepted entries across all buckets.
func (r *ParseResult) Total() int {
	n := 0
	for _, entries := range r.Records {
		n += len(entries)
	}
	for _, fields := range r.Categories {
		n += len(fields)
	}
	return n
}

// Empty reports whether the result holds nothing at all.
func (r *ParseResult) Empty() bool {
	return r.Total() == 0 && len(r.Rejected) == 0
}
