package llhls

/*
 This file defines functions related to tag generation. Each entity can be
 rendered back to its textual tag form; whole-document encoding is out of
 scope for this package.
*/

import (
	"bytes"
	"strconv"
	"strings"
)

// String renders the EXT-X-PART tag. An explicit INDEPENDENT=NO encodes as
// INDEPENDENT=FALSE; the reader only accepts YES/NO, so the FALSE literal is
// one-way and kept for compatibility with existing consumers.
func (ps *PartialSegment) String() string {
	var buf bytes.Buffer
	writePartialSegment(&buf, ps)
	return buf.String()
}

func writePartialSegment(buf *bytes.Buffer, ps *PartialSegment) {
	buf.WriteString("#EXT-X-PART:DURATION=")
	writeFloatValue(buf, ps.Duration)
	writeQuoted(buf, "URI", ps.URI)
	if ps.Independent != nil {
		if *ps.Independent {
			buf.WriteString(",INDEPENDENT=YES")
		} else {
			buf.WriteString(",INDEPENDENT=FALSE")
		}
	}
}

// String renders the EXT-X-SERVER-CONTROL tag.
func (sc *ServerControl) String() string {
	var buf bytes.Buffer
	writeServerControl(&buf, sc)
	return buf.String()
}

func writeServerControl(buf *bytes.Buffer, sc *ServerControl) {
	buf.WriteString("#EXT-X-SERVER-CONTROL:CAN-BLOCK-RELOAD=")
	writeYESorNO(buf, sc.CanBlockReload)
	buf.WriteString(",PART-HOLD-BACK=")
	writeFloatValue(buf, sc.PartHoldBack)
	buf.WriteString(",CAN-SKIP-UNTIL=")
	writeFloatValue(buf, sc.CanSkipUntil)
}

// String renders the EXT-X-PART-INF tag.
func (pi *PartInf) String() string {
	var buf bytes.Buffer
	buf.WriteString("#EXT-X-PART-INF:PART-TARGET=")
	writeFloatValue(&buf, pi.PartTarget)
	return buf.String()
}

// String renders the EXT-X-SKIP tag.
func (s *Skip) String() string {
	var buf bytes.Buffer
	buf.WriteString("#EXT-X-SKIP:SKIPPED-SEGMENTS=")
	buf.WriteString(strconv.FormatUint(uint64(s.SkippedSegments), 10))
	if len(s.RecentlyRemovedDateranges) > 0 {
		writeQuoted(&buf, "RECENTLY-REMOVED-DATERANGES", strings.Join(s.RecentlyRemovedDateranges, "\t"))
	}
	return buf.String()
}

// String renders the EXT-X-PRELOAD-HINT tag.
func (ph *PreloadHint) String() string {
	var buf bytes.Buffer
	writePreloadHint(&buf, ph)
	return buf.String()
}

func writePreloadHint(buf *bytes.Buffer, ph *PreloadHint) {
	buf.WriteString("#EXT-X-PRELOAD-HINT:TYPE=")
	buf.WriteString(ph.Type.String())
	writeQuoted(buf, "URI", ph.URI)
	if ph.ByteRangeStart != nil {
		writeUint(buf, "BYTERANGE-START", *ph.ByteRangeStart)
	}
	if ph.ByteRangeLength != nil {
		writeUint(buf, "BYTERANGE-LENGTH", *ph.ByteRangeLength)
	}
}

// String renders the EXT-X-RENDITION-REPORT tag.
func (r *RenditionReport) String() string {
	var buf bytes.Buffer
	buf.WriteString(`#EXT-X-RENDITION-REPORT:URI="`)
	buf.WriteString(r.URI)
	buf.WriteRune('"')
	writeUint(&buf, "LAST-MSN", r.LastMSN)
	writeUint(&buf, "LAST-PART", r.LastPart)
	return buf.String()
}

// String renders the segment's tag lines followed by its URI line: partial
// segments first, then EXT-X-PROGRAM-DATE-TIME if set, then EXTINF.
func (seg *MediaSegment) String() string {
	var buf bytes.Buffer
	for _, ps := range seg.Parts {
		writePartialSegment(&buf, ps)
		buf.WriteRune('\n')
	}
	if !seg.ProgramDateTime.IsZero() {
		buf.WriteString("#EXT-X-PROGRAM-DATE-TIME:")
		buf.WriteString(seg.ProgramDateTime.Format(DATETIME))
		buf.WriteRune('\n')
	}
	buf.WriteString("#EXTINF:")
	writeFloatValue(&buf, seg.Duration)
	buf.WriteString(",\n")
	buf.WriteString(seg.URI)
	return buf.String()
}

// writeQuoted writes a quoted key-value pair to the buffer preceded by a comma.
func writeQuoted(buf *bytes.Buffer, key, value string) {
	buf.WriteRune(',')
	buf.WriteString(key)
	buf.WriteString(`="`)
	buf.WriteString(value)
	buf.WriteRune('"')
}

// writeUint writes a key-value pair to the buffer preceded by a comma.
func writeUint(buf *bytes.Buffer, key string, value uint64) {
	buf.WriteRune(',')
	buf.WriteString(key)
	buf.WriteRune('=')
	buf.WriteString(strconv.FormatUint(value, 10))
}

// writeFloatValue writes the shortest decimal form that parses back to the
// same value, keeping parse/serialize round trips exact.
func writeFloatValue(buf *bytes.Buffer, value float64) {
	buf.WriteString(strconv.FormatFloat(value, 'f', -1, 64))
}

func writeYESorNO(buf *bytes.Buffer, b bool) {
	if b {
		buf.WriteString("YES")
	} else {
		buf.WriteString("NO")
	}
}
