package records

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // timezone lookups must not depend on the host zoneinfo

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// TimeLayout renders the human-readable time of a record.
const TimeLayout = "2006-01-02 15-04-05 -0700"

// compactLayout is the textual timestamp once separators are stripped.
const compactLayout = "20060102150405"

// UTC is the timezone applied to device timestamps.
const UTC = "UTC"

var timestampSeparators = strings.NewReplacer("-", "", ":", "", " ", "")

// ParseTimestamp converts text such as "2019-09-27 00:32:11" in the named
// timezone to a UTC epoch in seconds. Dashes, colons and spaces are ignored;
// the remaining text must be exactly fourteen digits.
func ParseTimestamp(value, timezone string) (int64, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return 0, fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}

	compact := timestampSeparators.Replace(value)
	if len(compact) != len(compactLayout) {
		return 0, fmt.Errorf("unknown datetime format %q", value)
	}

	t, err := time.ParseInLocation(compactLayout, compact, loc)
	if err != nil {
		return 0, fmt.Errorf("unknown datetime format %q: %w", value, err)
	}
	return t.UTC().Unix(), nil
}

// FormatTimestamp renders an epoch in seconds with TimeLayout, in UTC.
func FormatTimestamp(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(TimeLayout)
}

// resolveTime turns the staged raw timestamp into Timestamp and Time.
func (b *Base) resolveTime() {
	if !b.staged || b.skipTimezone {
		return
	}
	if b.timezone == "" {
		b.addFinding(domain.FindingTimestamp, "timestamp", "missing timezone information")
		return
	}

	switch v := b.rawTimestamp.(type) {
	case string:
		epoch, err := ParseTimestamp(v, b.timezone)
		if err != nil {
			b.addFinding(domain.FindingTimestamp, "timestamp", "%v", err)
			return
		}
		b.Timestamp = &epoch
	case time.Time:
		epoch := v.Unix()
		b.Timestamp = &epoch
	case int:
		epoch := int64(v)
		b.Timestamp = &epoch
	case int64:
		epoch := v
		b.Timestamp = &epoch
	case int32:
		epoch := int64(v)
		b.Timestamp = &epoch
	case uint32:
		epoch := int64(v)
		b.Timestamp = &epoch
	default:
		b.addFinding(domain.FindingTimestamp, "timestamp",
			"timestamp must be text or an integer, but got %T", b.rawTimestamp)
		return
	}

	if b.Time == "" {
		b.Time = FormatTimestamp(*b.Timestamp)
	}
}
