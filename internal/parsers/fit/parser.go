// Package fit parses FIT activity files into travel records.
package fit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/geo"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
	"github.com/custodia-labs/travelog/internal/core/records"
	"github.com/custodia-labs/travelog/internal/parsers"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// dispatchOrder is the order in which configured message-name sets are
// consulted. BucketUnclassified is the fallback.
var dispatchOrder = []domain.Bucket{
	domain.BucketActivityRecord,
	domain.BucketGear,
	domain.BucketActivity,
	domain.BucketTraveller,
}

// Config configures a Parser.
type Config struct {
	// Settings controls classification.
	Settings domain.ParseSettings

	// MediaRoot is stripped from paths in results.
	MediaRoot string

	// Geocoder, if set, is attached to every coordinate built.
	Geocoder records.Geocoder
}

// Parser handles FIT activity files.
type Parser struct {
	decoder     driven.ActivityDecoder
	mode        geo.Mode
	dropUnknown bool
	mediaRoot   string
	geocoder    records.Geocoder
	routes      map[string]domain.Bucket
}

// New creates a FIT parser reading messages through decoder.
func New(decoder driven.ActivityDecoder, cfg Config) (*Parser, error) {
	if decoder == nil {
		return nil, fmt.Errorf("fit decoder is required: %w", domain.ErrInvalidInput)
	}
	mode, err := geo.ParseMode(cfg.Settings.SemicircleMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	routes := make(map[string]domain.Bucket)
	for _, b := range dispatchOrder {
		for _, name := range cfg.Settings.FITMessages[b] {
			name = strings.ToLower(strings.TrimSpace(name))
			if _, taken := routes[name]; !taken {
				routes[name] = b
			}
		}
	}

	return &Parser{
		decoder:     decoder,
		mode:        mode,
		dropUnknown: cfg.Settings.DropUnknown,
		mediaRoot:   cfg.MediaRoot,
		geocoder:    cfg.Geocoder,
		routes:      routes,
	}, nil
}

// Format returns the format this parser produces.
func (p *Parser) Format() domain.Format {
	return domain.FormatFIT
}

// Extensions returns the file extensions this parser handles.
func (p *Parser) Extensions() []string {
	return []string{".fit"}
}

// Priority returns the selection priority.
func (p *Parser) Priority() int {
	return 50
}

// Route returns the bucket a message name is dispatched to.
func (p *Parser) Route(name string) domain.Bucket {
	if b, ok := p.routes[strings.ToLower(name)]; ok {
		return b
	}
	return domain.BucketUnclassified
}

// Parse decodes the file and classifies every message.
func (p *Parser) Parse(ctx context.Context, path string) (*domain.ParseResult, error) {
	base, err := parsers.NewBase(path)
	if err != nil {
		return nil, err
	}
	if _, err := base.CheckFile(false); err != nil {
		return nil, err
	}

	msgs, err := p.decoder.Decode(ctx, base.Path())
	if err != nil {
		if !errors.Is(err, domain.ErrFileParsing) {
			err = fmt.Errorf("decode %s: %w: %w", path, domain.ErrFileParsing, err)
		}
		return nil, err
	}

	return p.Classify(parsers.StorageRelativePath(path, p.mediaRoot), msgs), nil
}

// Classify builds a result from already decoded messages.
func (p *Parser) Classify(path string, msgs []domain.RawMessage) *domain.ParseResult {
	result := &domain.ParseResult{
		Path:    path,
		Format:  domain.FormatFIT,
		Records: make(map[domain.Bucket][]map[string]any, len(domain.ActivityBuckets())),
	}
	for _, b := range domain.ActivityBuckets() {
		result.Records[b] = []map[string]any{}
	}

	for i, msg := range msgs {
		bucket := p.Route(msg.Name)
		fields := copyFields(msg.Fields)

		var (
			entry    map[string]any
			findings []domain.Finding
		)
		switch bucket {
		case domain.BucketActivityRecord:
			entry, findings = p.sample(fields)
		case domain.BucketGear:
			entry, findings = p.gear(fields)
		case domain.BucketActivity:
			entry, findings = p.activity(fields)
		case domain.BucketTraveller:
			entry, findings = p.untimed(fields, records.KindTraveller, p.dropUnknown)
		default:
			entry, findings = p.untimed(fields, records.KindUnclassified, false)
		}

		if len(findings) > 0 {
			result.Rejected = append(result.Rejected, domain.Rejection{
				Bucket:   bucket,
				Index:    i,
				Partial:  entry != nil,
				Findings: findings,
			})
		}
		if entry != nil {
			result.Records[bucket] = append(result.Records[bucket], entry)
		}
	}

	return result
}

func (p *Parser) coordinate(fields map[string]any) *records.Coordinate {
	opts := []records.CoordinateOption{records.WithMode(p.mode)}
	if p.geocoder != nil {
		opts = append(opts, records.WithGeocoder(p.geocoder))
	}
	return records.NewCoordinate(fields, opts...)
}

// sample splits a record message into coordinate, physiological and
// environment sub-records and keeps those that validate. The findings of
// dropped sub-records are returned even when the entry is kept.
func (p *Parser) sample(fields map[string]any) (map[string]any, []domain.Finding) {
	ts := pop(fields, "timestamp")

	coord := p.coordinate(map[string]any{
		"latitude":  pop(fields, "position_lat"),
		"longitude": pop(fields, "position_long"),
		"altitude":  popFirst(fields, "enhanced_altitude", "altitude"),
	})

	physio := &records.Physiological{}
	physio.SetData(map[string]any{
		"speed":      kph(popFirst(fields, "enhanced_speed", "speed")),
		"heart_rate": pop(fields, "heart_rate"),
		"power":      pop(fields, "power"),
	})

	env := &records.Environment{}
	env.SetData(map[string]any{
		"temperature": pop(fields, "temperature"),
		"gradient":    pop(fields, "grade"),
	})

	entry := make(map[string]any, 3)
	var findings []domain.Finding
	for _, r := range []records.Record{coord, physio, env} {
		r.SetTime(ts, records.UTC, false)
		if r.IsValid() {
			entry[string(r.Kind())] = r.Fields()
			continue
		}
		findings = append(findings, r.Findings()...)
	}

	if len(entry) == 0 {
		return nil, findings
	}
	if !p.dropUnknown {
		if rest := withoutUnknown(fields); len(rest) > 0 {
			entry[domain.OverflowField] = rest
		}
	}
	return entry, findings
}

// gear classifies a device message. Brand, manufacturer and model must
// all be reported by the device.
func (p *Parser) gear(fields map[string]any) (map[string]any, []domain.Finding) {
	ts := pop(fields, "timestamp")

	r, err := parsers.Classify(fields, records.KindGear, p.dropUnknown)
	if err != nil {
		return nil, nil
	}
	r.SetTime(ts, records.UTC, false)
	return keep(r)
}

// activity classifies a session summary and derives its bounding positions
// and speeds.
func (p *Parser) activity(fields map[string]any) (map[string]any, []domain.Finding) {
	ts := pop(fields, "timestamp")

	derived := map[string]any{
		"start_position": p.position(ts, pop(fields, "start_position_long"), pop(fields, "start_position_lat")),
		"nec_position":   p.position(ts, pop(fields, "nec_long"), pop(fields, "nec_lat")),
		"swc_position":   p.position(ts, pop(fields, "swc_long"), pop(fields, "swc_lat")),
		"avg_speed":      kph(first(pop(fields, "enhanced_avg_speed"), fields["avg_speed"])),
		"max_speed":      kph(first(pop(fields, "enhanced_max_speed"), fields["max_speed"])),
	}

	r, err := parsers.Classify(fields, records.KindActivity, p.dropUnknown)
	if err != nil {
		return nil, nil
	}
	r.SetData(derived)
	r.SetTime(ts, records.UTC, false)
	return keep(r)
}

// position returns [longitude, latitude] for a valid coordinate, else nil.
func (p *Parser) position(ts, lon, lat any) any {
	if lon == nil && lat == nil {
		return nil
	}
	c := p.coordinate(map[string]any{"longitude": lon, "latitude": lat})
	c.SetTime(ts, records.UTC, false)

	x, y, ok := c.Position()
	if !ok {
		return nil
	}
	return []float64{x, y}
}

// untimed classifies a message whose timestamp is not resolved.
func (p *Parser) untimed(fields map[string]any, kind records.Kind, dropUnknown bool) (map[string]any, []domain.Finding) {
	r, err := parsers.Classify(fields, kind, dropUnknown)
	if err != nil {
		return nil, nil
	}
	r.SetTime(nil, "", true)
	return keep(r)
}

func keep(r records.Record) (map[string]any, []domain.Finding) {
	if !r.IsValid() {
		return nil, r.Findings()
	}
	return r.Fields(), nil
}
