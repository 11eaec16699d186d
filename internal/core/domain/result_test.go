package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResult_Counts(t *testing.T) {
	r := &ParseResult{
		Format: FormatFIT,
		Records: map[Bucket][]map[string]any{
			BucketActivityRecord: {{"a": 1}, {"a": 2}},
			BucketGear:           {},
		},
	}

	assert.Equal(t, 2, r.Count(BucketActivityRecord))
	assert.Equal(t, 0, r.Count(BucketGear))
	assert.Equal(t, 2, r.Total())
	assert.False(t, r.Empty())
}

func TestParseResult_PhotoCounts(t *testing.T) {
	r := &ParseResult{
		Format: FormatPhoto,
		Categories: map[Bucket]map[string]any{
			BucketGPS:   {"GPSLatitude": "1"},
			BucketImage: {"Make": "x", "Model": "y"},
		},
	}

	assert.Equal(t, 1, r.Count(BucketGPS))
	assert.Equal(t, 2, r.Count(BucketImage))
	assert.Equal(t, 3, r.Total())
}

func TestParseResult_Empty(t *testing.T) {
	assert.True(t, (&ParseResult{}).Empty())

	r := &ParseResult{Rejected: []Rejection{{Bucket: BucketGear}}}
	assert.False(t, r.Empty())
}

func TestFinding_Error(t *testing.T) {
	f := Finding{Kind: FindingMissing, Field: "brand", Message: "Gear's brand can not be none"}
	assert.Equal(t, "missing brand: Gear's brand can not be none", f.Error())

	f = Finding{Kind: FindingTimestamp, Message: "missing timezone information"}
	assert.Equal(t, "timestamp: missing timezone information", f.Error())
}

func TestBuckets_Order(t *testing.T) {
	assert.Equal(t, BucketActivityRecord, ActivityBuckets()[0])
	assert.Equal(t, BucketUnclassified, ActivityBuckets()[4])
	assert.Equal(t, BucketOther, PhotoBuckets()[len(PhotoBuckets())-1])
}
