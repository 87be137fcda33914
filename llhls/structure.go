package llhls

/*
 This file defines data structures related to package.
*/

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DATETIME represents format for EXT-X-PROGRAM-DATE-TIME timestamps.
	// Format is [ISO/IEC 8601:2004] according to the [HLS spec].
	DATETIME = time.RFC3339Nano
)

var ErrMissingAttribute = errors.New("mandatory attribute not set")

// MediaPlaylist represents a Low-Latency HLS media playlist.
// URI lines in the playlist point to media segments.
type MediaPlaylist struct {
	TargetDuration   uint               // EXT-X-TARGETDURATION, max media segment duration in seconds.
	Version          uint               // EXT-X-VERSION, protocol compatibility version.
	PartInf          PartInf            // EXT-X-PART-INF, partial segment target duration.
	SeqNo            uint64             // EXT-X-MEDIA-SEQUENCE of the first segment in the playlist.
	Segments         []*MediaSegment    // Segments in document order.
	Skip             *Skip              // EXT-X-SKIP of a playlist delta update, nil if absent.
	PreloadHint      *PreloadHint       // EXT-X-PRELOAD-HINT, nil if absent.
	RenditionReports []*RenditionReport // EXT-X-RENDITION-REPORT tags in document order.
	ServerControl    ServerControl      // EXT-X-SERVER-CONTROL.
}

// PartInf represents an EXT-X-PART-INF tag. It declares the target duration
// that applies to all Partial Segments in the playlist.
type PartInf struct {
	PartTarget float64 // PART-TARGET attribute, seconds.
}

// ServerControl represents an EXT-X-SERVER-CONTROL tag with the delivery
// directives a low-latency server offers.
type ServerControl struct {
	CanBlockReload bool    // CAN-BLOCK-RELOAD attribute.
	PartHoldBack   float64 // PART-HOLD-BACK attribute, seconds.
	CanSkipUntil   float64 // CAN-SKIP-UNTIL attribute, seconds.
}

// MediaSegment represents a media segment included in a media playlist.
type MediaSegment struct {
	Duration        float64           // EXTINF first parameter. Duration in seconds.
	URI             string            // URI is the path to the media segment.
	Parts           []*PartialSegment // EXT-X-PART tags preceding the segment URI, in document order.
	ProgramDateTime time.Time         // EXT-X-PROGRAM-DATE-TIME. Zero value when the tag is absent.
}

// PartialSegment represents an EXT-X-PART tag, a sub-range of a media
// segment that may be loaded before the full segment is available.
type PartialSegment struct {
	Duration float64 // DURATION attribute, seconds.
	URI      string  // URI attribute.
	// Independent is the INDEPENDENT attribute. It stays nil when the
	// attribute is absent, which is distinct from an explicit NO.
	Independent *bool
}

// Skip represents an EXT-X-SKIP tag of a playlist delta update.
type Skip struct {
	SkippedSegments           uint     // SKIPPED-SEGMENTS attribute.
	RecentlyRemovedDateranges []string // RECENTLY-REMOVED-DATERANGES IDs, empty when absent.
}

// PreloadHintType is the TYPE attribute of an EXT-X-PRELOAD-HINT tag.
type PreloadHintType uint

const (
	// use 0 for undefined type
	PreloadHintPart PreloadHintType = iota + 1 // TYPE=PART, a future partial segment
	PreloadHintMap                             // TYPE=MAP, a media initialization section
)

func (t PreloadHintType) String() string {
	switch t {
	case PreloadHintPart:
		return "PART"
	case PreloadHintMap:
		return "MAP"
	}
	return "Unknown"
}

// PreloadHint represents an EXT-X-PRELOAD-HINT tag announcing a resource
// the client may start fetching before it is listed.
type PreloadHint struct {
	Type            PreloadHintType // TYPE attribute, PART or MAP.
	URI             string          // URI attribute.
	ByteRangeStart  *uint64         // BYTERANGE-START attribute, nil if absent.
	ByteRangeLength *uint64         // BYTERANGE-LENGTH attribute, nil if absent.
}

// RenditionReport represents an EXT-X-RENDITION-REPORT tag carrying the
// last playback position of a sibling rendition.
type RenditionReport struct {
	URI      string // URI attribute, relative to the playlist URI.
	LastMSN  uint64 // LAST-MSN attribute.
	LastPart uint64 // LAST-PART attribute.
}

/*
 Builders below accumulate attribute writes during decoding and are sealed
 into their entity exactly once. seal fails closed when a mandatory field
 was never set and fills defaults for optional ones.
*/

type serverControlBuilder struct {
	canBlockReload *bool
	partHoldBack   *float64
	canSkipUntil   *float64
}

func (b *serverControlBuilder) seal() (ServerControl, error) {
	if b.canBlockReload == nil {
		return ServerControl{}, fmt.Errorf("CAN-BLOCK-RELOAD: %w", ErrMissingAttribute)
	}
	if b.partHoldBack == nil {
		return ServerControl{}, fmt.Errorf("PART-HOLD-BACK: %w", ErrMissingAttribute)
	}
	if b.canSkipUntil == nil {
		return ServerControl{}, fmt.Errorf("CAN-SKIP-UNTIL: %w", ErrMissingAttribute)
	}
	return ServerControl{
		CanBlockReload: *b.canBlockReload,
		PartHoldBack:   *b.partHoldBack,
		CanSkipUntil:   *b.canSkipUntil,
	}, nil
}

type partInfBuilder struct {
	partTarget *float64
}

func (b *partInfBuilder) seal() (PartInf, error) {
	if b.partTarget == nil {
		return PartInf{}, fmt.Errorf("PART-TARGET: %w", ErrMissingAttribute)
	}
	return PartInf{PartTarget: *b.partTarget}, nil
}

type partialSegmentBuilder struct {
	duration    *float64
	uri         *string
	independent *bool
}

func (b *partialSegmentBuilder) seal() (PartialSegment, error) {
	if b.duration == nil {
		return PartialSegment{}, fmt.Errorf("DURATION: %w", ErrMissingAttribute)
	}
	if b.uri == nil {
		return PartialSegment{}, fmt.Errorf("URI: %w", ErrMissingAttribute)
	}
	return PartialSegment{
		Duration:    *b.duration,
		URI:         *b.uri,
		Independent: b.independent,
	}, nil
}

type skipBuilder struct {
	skippedSegments           *uint
	recentlyRemovedDateranges []string
}

func (b *skipBuilder) seal() (Skip, error) {
	if b.skippedSegments == nil {
		return Skip{}, fmt.Errorf("SKIPPED-SEGMENTS: %w", ErrMissingAttribute)
	}
	return Skip{
		SkippedSegments:           *b.skippedSegments,
		RecentlyRemovedDateranges: b.recentlyRemovedDateranges,
	}, nil
}

type preloadHintBuilder struct {
	hintType        PreloadHintType
	uri             *string
	byteRangeStart  *uint64
	byteRangeLength *uint64
}

func (b *preloadHintBuilder) seal() (PreloadHint, error) {
	if b.hintType == 0 {
		return PreloadHint{}, fmt.Errorf("TYPE: %w", ErrMissingAttribute)
	}
	if b.uri == nil {
		return PreloadHint{}, fmt.Errorf("URI: %w", ErrMissingAttribute)
	}
	return PreloadHint{
		Type:            b.hintType,
		URI:             *b.uri,
		ByteRangeStart:  b.byteRangeStart,
		ByteRangeLength: b.byteRangeLength,
	}, nil
}

type renditionReportBuilder struct {
	uri      *string
	lastMSN  *uint64
	lastPart *uint64
}

func (b *renditionReportBuilder) seal() (*RenditionReport, error) {
	if b.uri == nil {
		return nil, fmt.Errorf("URI: %w", ErrMissingAttribute)
	}
	if b.lastMSN == nil {
		return nil, fmt.Errorf("LAST-MSN: %w", ErrMissingAttribute)
	}
	if b.lastPart == nil {
		return nil, fmt.Errorf("LAST-PART: %w", ErrMissingAttribute)
	}
	return &RenditionReport{URI: *b.uri, LastMSN: *b.lastMSN, LastPart: *b.lastPart}, nil
}

// mediaSegmentBuilder carries the in-progress segment state between the
// segment's tag lines and the URI line that seals it.
type mediaSegmentBuilder struct {
	duration        *float64
	uri             *string
	parts           []*PartialSegment
	programDateTime time.Time
}

func (b *mediaSegmentBuilder) seal() (*MediaSegment, error) {
	if b.duration == nil {
		return nil, fmt.Errorf("EXTINF duration: %w", ErrMissingAttribute)
	}
	if b.uri == nil {
		return nil, fmt.Errorf("segment URI: %w", ErrMissingAttribute)
	}
	return &MediaSegment{
		Duration:        *b.duration,
		URI:             *b.uri,
		Parts:           b.parts,
		ProgramDateTime: b.programDateTime,
	}, nil
}

type mediaPlaylistBuilder struct {
	targetDuration   *uint
	version          *uint
	partInf          *PartInf
	seqNo            *uint64
	skip             *Skip
	preloadHint      *PreloadHint
	serverControl    *ServerControl
	segments         []*MediaSegment
	renditionReports []*RenditionReport
}

func (b *mediaPlaylistBuilder) seal() (*MediaPlaylist, error) {
	if b.targetDuration == nil {
		return nil, fmt.Errorf("EXT-X-TARGETDURATION: %w", ErrMissingAttribute)
	}
	if b.version == nil {
		return nil, fmt.Errorf("EXT-X-VERSION: %w", ErrMissingAttribute)
	}
	if b.partInf == nil {
		return nil, fmt.Errorf("EXT-X-PART-INF: %w", ErrMissingAttribute)
	}
	if b.seqNo == nil {
		return nil, fmt.Errorf("EXT-X-MEDIA-SEQUENCE: %w", ErrMissingAttribute)
	}
	if b.serverControl == nil {
		return nil, fmt.Errorf("EXT-X-SERVER-CONTROL: %w", ErrMissingAttribute)
	}
	return &MediaPlaylist{
		TargetDuration:   *b.targetDuration,
		Version:          *b.version,
		PartInf:          *b.partInf,
		SeqNo:            *b.seqNo,
		Segments:         b.segments,
		Skip:             b.skip,
		PreloadHint:      b.preloadHint,
		RenditionReports: b.renditionReports,
		ServerControl:    *b.serverControl,
	}, nil
}

/*
[HLS spec]: https://datatracker.ietf.org/doc/html/draft-pantos-hls-rfc8216bis-16
[ISO/IEC 8601:2004]: http://www.iso.org/iso/catalogue_detail?csnumber=40874
*/
