package llhls

/* Package llhls implements parsing of Low-Latency HLS media playlists.

Low-Latency HLS (LL-HLS) extends the HLS protocol described in [rfc8216bis]
with partial media segments, blocking playlist reloads, playlist delta
updates and rendition reports, reducing the end-to-end latency of a live
stream to a few partial-segment durations.

This package decodes an LL-HLS media playlist into a typed MediaPlaylist
and can render each of its elements back to its textual tag form. It is a
decoder for the low-latency tag set only: master (multivariant) playlists,
date-range/cue tags and full-document re-encoding are out of scope.

## Structure and design of the code

Decoding is a single forward scan over the input lines. The first line must
be #EXTM3U; after that each line is classified as a playlist-level tag, a
segment-level tag, a segment URI or an ignorable line. Tag attribute lists
are split into name/value pairs and mapped onto a per-entity accumulator,
which is sealed into its immutable entity once all of its lines have been
seen. A media segment seals at its URI line; the playlist seals at end of
input, failing if a mandatory tag (EXT-X-TARGETDURATION, EXT-X-VERSION,
EXT-X-PART-INF, EXT-X-MEDIA-SEQUENCE, EXT-X-SERVER-CONTROL) never appeared.

Unrecognized tags, and unrecognized attributes of recognized tags, are
skipped rather than rejected so that playlists using newer protocol
features still decode.

Errors fall into three groups, distinguishable with errors.Is:

  - ErrExtM3UAbsent: the input is not an extended M3U document at all.
  - Syntax and validation errors: a malformed tag line, an attribute value
    outside its vocabulary (ErrNotYesOrNo), or a mandatory attribute or tag
    that never appeared (ErrMissingAttribute). Wrapped with tag context.
  - I/O errors from the underlying reader, wrapped verbatim.

Example of decoding a playlist and printing its partial segments:

	p, err := llhls.DecodeFile("ll-hls.m3u8")
	if err != nil {
	  log.Fatal(err)
	}
	for _, seg := range p.Segments {
	  for _, part := range seg.Parts {
	    fmt.Println(part)
	  }
	}

[rfc8216bis]: https://tools.ietf.org/html/draft-pantos-rfc8216bis
*/
