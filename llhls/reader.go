package llhls

/*
 This file defines functions related to playlist parsing.
*/

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrExtM3UAbsent = errors.New("#EXTM3U absent")

// TimeParse allows globally apply and/or override Time Parser function.
// Available variants:
//   - FullTimeParse - implements full featured ISO/IEC 8601:2004
//   - StrictTimeParse - implements only RFC3339 Nanoseconds format
var TimeParse func(value string) (time.Time, error) = FullTimeParse

// DecodeFile opens a playlist file, decodes it and closes it again on all
// return paths.
func DecodeFile(path string) (*MediaPlaylist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open playlist: %w", err)
	}
	defer f.Close()
	return DecodeFrom(f)
}

// Decode parses a media playlist passed from the buffer.
func Decode(data bytes.Buffer) (*MediaPlaylist, error) {
	return decode(&data)
}

// DecodeFrom parses a media playlist passed from the io.Reader stream.
func DecodeFrom(reader io.Reader) (*MediaPlaylist, error) {
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}
	return decode(buf)
}

// decode runs the scan over the playlist lines. The first line must be the
// #EXTM3U marker; afterwards lines are routed to the tag dispatchers with
// segment state carried in a mediaSegmentBuilder until a URI line seals it.
func decode(buf *bytes.Buffer) (*MediaPlaylist, error) {
	var (
		eof      bool
		header   bool
		playlist mediaPlaylistBuilder
		segment  mediaSegmentBuilder
	)
	for !eof {
		line, err := buf.ReadString('\n')
		if err == io.EOF {
			eof = true
		} else if err != nil {
			return nil, fmt.Errorf("read playlist: %w", err)
		}
		line = trimLineEnd(line)
		if !header {
			if strings.TrimRight(line, " \t") != "#EXTM3U" {
				return nil, ErrExtM3UAbsent
			}
			header = true
			continue
		}
		if line == "" {
			continue
		}
		if err := decodeLine(&playlist, &segment, line); err != nil {
			return nil, err
		}
	}
	// A segment whose tags were read but whose URI line never followed is
	// dropped, matching the behavior of live playlists cut off mid-update.
	return playlist.seal()
}

// decodeLine classifies one line as a playlist tag, a segment tag, a
// segment URI or an ignorable line. Playlist tags are tried before segment
// tags; a tag recognized by neither dispatcher is skipped for forward
// compatibility.
func decodeLine(p *mediaPlaylistBuilder, segment *mediaSegmentBuilder, line string) error {
	if strings.HasPrefix(line, "#") {
		if !strings.HasPrefix(line, "#EXT") {
			return nil // comment
		}
		name, value, _ := strings.Cut(line[1:], ":")
		if name == "EXT-X-ENDLIST" {
			// Defensive boundary: seal a complete pending segment. In
			// practice the URI line has already done so.
			if segment.uri != nil {
				return sealSegment(p, segment)
			}
			return nil
		}
		if recognized, err := decodePlaylistTag(p, name, value); recognized || err != nil {
			return err
		}
		if recognized, err := decodeSegmentTag(segment, name, value); recognized || err != nil {
			return err
		}
		return nil
	}
	// Segment boundary: a non-tag, non-blank line is the segment URI. It
	// completes the in-progress segment together with any partial segments
	// accumulated since the previous boundary.
	uri, err := parseURI(line)
	if err != nil {
		return fmt.Errorf("invalid segment URI: %w", err)
	}
	segment.uri = &uri
	return sealSegment(p, segment)
}

func sealSegment(p *mediaPlaylistBuilder, segment *mediaSegmentBuilder) error {
	seg, err := segment.seal()
	if err != nil {
		return fmt.Errorf("media segment %d: %w", len(p.segments), err)
	}
	p.segments = append(p.segments, seg)
	*segment = mediaSegmentBuilder{}
	return nil
}

// decodePlaylistTag handles the playlist-level tag set. It reports whether
// the tag name was recognized.
func decodePlaylistTag(p *mediaPlaylistBuilder, name, value string) (bool, error) {
	switch name {
	case "EXT-X-TARGETDURATION":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return true, fmt.Errorf("parsing EXT-X-TARGETDURATION: %w", err)
		}
		d := uint(n)
		p.targetDuration = &d
	case "EXT-X-VERSION":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return true, fmt.Errorf("parsing EXT-X-VERSION: %w", err)
		}
		v := uint(n)
		p.version = &v
	case "EXT-X-PART-INF":
		pi, err := decodePartInf(value)
		if err != nil {
			return true, fmt.Errorf("parsing EXT-X-PART-INF: %w", err)
		}
		p.partInf = &pi
	case "EXT-X-MEDIA-SEQUENCE":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return true, fmt.Errorf("parsing EXT-X-MEDIA-SEQUENCE: %w", err)
		}
		p.seqNo = &n
	case "EXT-X-SKIP":
		skip, err := decodeSkip(value)
		if err != nil {
			return true, fmt.Errorf("parsing EXT-X-SKIP: %w", err)
		}
		p.skip = &skip
	case "EXT-X-PRELOAD-HINT":
		hint, err := decodePreloadHint(value)
		if err != nil {
			return true, fmt.Errorf("parsing EXT-X-PRELOAD-HINT: %w", err)
		}
		p.preloadHint = &hint
	case "EXT-X-RENDITION-REPORT":
		report, err := decodeRenditionReport(value)
		if err != nil {
			return true, fmt.Errorf("parsing EXT-X-RENDITION-REPORT: %w", err)
		}
		p.renditionReports = append(p.renditionReports, report)
	case "EXT-X-SERVER-CONTROL":
		sc, err := decodeServerControl(value)
		if err != nil {
			return true, fmt.Errorf("parsing EXT-X-SERVER-CONTROL: %w", err)
		}
		p.serverControl = &sc
	default:
		return false, nil
	}
	return true, nil
}

// decodeSegmentTag handles the segment-level tag set, writing into the
// in-progress segment. It reports whether the tag name was recognized.
func decodeSegmentTag(segment *mediaSegmentBuilder, name, value string) (bool, error) {
	switch name {
	case "EXTINF":
		// value is `duration,title`; only the duration is kept.
		duration, _, found := strings.Cut(value, ",")
		if !found {
			return true, fmt.Errorf("parsing EXTINF: missing comma in %q", value)
		}
		f, err := strconv.ParseFloat(duration, 64)
		if err != nil {
			return true, fmt.Errorf("parsing EXTINF duration: %w", err)
		}
		segment.duration = &f
	case "EXT-X-PART":
		part, err := decodePartialSegment(value)
		if err != nil {
			return true, fmt.Errorf("parsing EXT-X-PART: %w", err)
		}
		segment.parts = append(segment.parts, &part)
	case "EXT-X-PROGRAM-DATE-TIME":
		t, err := TimeParse(value)
		if err != nil {
			return true, fmt.Errorf("parsing EXT-X-PROGRAM-DATE-TIME: %w", err)
		}
		segment.programDateTime = t
	default:
		return false, nil
	}
	return true, nil
}

/*
 Per-entity attribute mappers. Each resolves the attribute names it knows to
 a typed field write on the entity's builder and ignores names it does not;
 the builder's seal still fails if a mandatory field stayed unset.
*/

func decodeServerControl(attributes string) (ServerControl, error) {
	var b serverControlBuilder
	for k, v := range decodeAttributes(attributes) {
		switch k {
		case "CAN-BLOCK-RELOAD":
			yes, err := yesOrNo(v)
			if err != nil {
				return ServerControl{}, fmt.Errorf("invalid CAN-BLOCK-RELOAD: %w", err)
			}
			b.canBlockReload = &yes
		case "PART-HOLD-BACK":
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return ServerControl{}, fmt.Errorf("invalid PART-HOLD-BACK: %w", err)
			}
			b.partHoldBack = &f
		case "CAN-SKIP-UNTIL":
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return ServerControl{}, fmt.Errorf("invalid CAN-SKIP-UNTIL: %w", err)
			}
			b.canSkipUntil = &f
		}
	}
	return b.seal()
}

func decodePartInf(attributes string) (PartInf, error) {
	var b partInfBuilder
	for k, v := range decodeAttributes(attributes) {
		switch k {
		case "PART-TARGET":
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return PartInf{}, fmt.Errorf("invalid PART-TARGET: %w", err)
			}
			b.partTarget = &f
		}
	}
	return b.seal()
}

func decodePartialSegment(attributes string) (PartialSegment, error) {
	var b partialSegmentBuilder
	for k, v := range decodeAttributes(attributes) {
		switch k {
		case "DURATION":
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return PartialSegment{}, fmt.Errorf("invalid DURATION: %w", err)
			}
			b.duration = &f
		case "URI":
			uri := DeQuote(v)
			b.uri = &uri
		case "INDEPENDENT":
			yes, err := yesOrNo(v)
			if err != nil {
				return PartialSegment{}, fmt.Errorf("invalid INDEPENDENT: %w", err)
			}
			b.independent = &yes
		}
	}
	return b.seal()
}

func decodeSkip(attributes string) (Skip, error) {
	var b skipBuilder
	for k, v := range decodeAttributes(attributes) {
		switch k {
		case "SKIPPED-SEGMENTS":
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return Skip{}, fmt.Errorf("invalid SKIPPED-SEGMENTS: %w", err)
			}
			count := uint(n)
			b.skippedSegments = &count
		case "RECENTLY-REMOVED-DATERANGES":
			b.recentlyRemovedDateranges = splitDateRangeIDs(v)
		}
	}
	return b.seal()
}

func decodePreloadHint(attributes string) (PreloadHint, error) {
	var b preloadHintBuilder
	for k, v := range decodeAttributes(attributes) {
		switch k {
		case "TYPE":
			switch v {
			case "PART":
				b.hintType = PreloadHintPart
			case "MAP":
				b.hintType = PreloadHintMap
			default:
				return PreloadHint{}, fmt.Errorf("invalid TYPE %q: must be PART or MAP", v)
			}
		case "URI":
			uri := DeQuote(v)
			b.uri = &uri
		case "BYTERANGE-START":
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return PreloadHint{}, fmt.Errorf("invalid BYTERANGE-START: %w", err)
			}
			b.byteRangeStart = &n
		case "BYTERANGE-LENGTH":
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return PreloadHint{}, fmt.Errorf("invalid BYTERANGE-LENGTH: %w", err)
			}
			b.byteRangeLength = &n
		}
	}
	return b.seal()
}

func decodeRenditionReport(attributes string) (*RenditionReport, error) {
	var b renditionReportBuilder
	for k, v := range decodeAttributes(attributes) {
		switch k {
		case "URI":
			uri := DeQuote(v)
			b.uri = &uri
		case "LAST-MSN":
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid LAST-MSN: %w", err)
			}
			b.lastMSN = &n
		case "LAST-PART":
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid LAST-PART: %w", err)
			}
			b.lastPart = &n
		}
	}
	return b.seal()
}

// parseURI validates a segment resource locator.
func parseURI(s string) (string, error) {
	if _, err := url.Parse(s); err != nil {
		return "", err
	}
	return s, nil
}

// StrictTimeParse implements RFC3339 with Nanoseconds accuracy.
func StrictTimeParse(value string) (time.Time, error) {
	return time.Parse(DATETIME, value)
}

// FullTimeParse implements ISO/IEC 8601:2004.
func FullTimeParse(value string) (time.Time, error) {
	layouts := []string{
		"2006-01-02T15:04:05.999999999Z0700",
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05.999999999Z07",
	}
	var (
		err error
		t   time.Time
	)
	for _, layout := range layouts {
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return t, err
}
