package domain

// Bucket labels a group of classified records or fields in a ParseResult.
type Bucket string

// Activity-file buckets, in dispatch priority order.
const (
	BucketActivityRecord Bucket = "activity_record"
	BucketGear           Bucket = "gear"
	BucketActivity       Bucket = "activity"
	BucketTraveller      Bucket = "traveller"
	BucketUnclassified   Bucket = "unclassified"
)

// Photo-metadata buckets.
const (
	BucketImage     Bucket = "image"
	BucketGPS       Bucket = "gps"
	BucketExif      Bucket = "exif"
	BucketThumbnail Bucket = "thumbnail"
	BucketMaker     Bucket = "maker"
	BucketOther     Bucket = "other"
)

// ActivityBuckets lists the activity-file buckets in dispatch order.
func ActivityBuckets() []Bucket {
	return []Bucket{
		BucketActivityRecord,
		BucketGear,
		BucketActivity,
		BucketTraveller,
		BucketUnclassified,
	}
}

// PhotoBuckets lists the photo-metadata buckets in match order.
// BucketOther is the fallback and always last.
func PhotoBuckets() []Bucket {
	return []Bucket{
		BucketExif,
		BucketGPS,
		BucketImage,
		BucketThumbnail,
		BucketMaker,
		BucketOther,
	}
}

// String returns the string representation.
func (b Bucket) String() string {
	return string(b)
}
