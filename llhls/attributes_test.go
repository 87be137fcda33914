package llhls

/*
 Attribute-list parser tests.
*/

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestDecodeAttributes(t *testing.T) {
	is := is.New(t)
	attrs := decodeAttributes(`DURATION=0.33334,URI="filePart271.0.mp4",INDEPENDENT=YES`)
	is.Equal(len(attrs), 3)                          // must be three attributes
	is.Equal(attrs["DURATION"], "0.33334")           // unquoted value kept verbatim
	is.Equal(attrs["URI"], `"filePart271.0.mp4"`)    // quotes stay part of the raw value
	is.Equal(attrs["INDEPENDENT"], "YES")
}

func TestDecodeAttributesQuotedComma(t *testing.T) {
	is := is.New(t)
	attrs := decodeAttributes(`URI="low/part,0.mp4",DURATION=0.5`)
	is.Equal(attrs["URI"], `"low/part,0.mp4"`) // comma inside quotes must not split
	is.Equal(attrs["DURATION"], "0.5")         // the following attribute still parses
}

func TestDecodeAttributesDropsMalformedFragments(t *testing.T) {
	is := is.New(t)
	attrs := decodeAttributes(`DURATION=0.5,garbage,URI="p.mp4"`)
	is.Equal(len(attrs), 2) // fragment without '=' is dropped, not fatal
	is.Equal(attrs["DURATION"], "0.5")
	is.Equal(attrs["URI"], `"p.mp4"`)
}

func TestDecodeAttributesLastDuplicateWins(t *testing.T) {
	is := is.New(t)
	attrs := decodeAttributes(`DURATION=0.5,DURATION=1.5`)
	is.Equal(attrs["DURATION"], "1.5") // map semantics overwrite
}

func TestDeQuote(t *testing.T) {
	is := is.New(t)
	is.Equal(DeQuote(`"part.mp4"`), "part.mp4") // surrounding quotes removed
	is.Equal(DeQuote("part.mp4"), "part.mp4")   // unquoted value untouched
	is.Equal(DeQuote(`"`), `"`)                 // too short to be quoted
	is.Equal(DeQuote(`"open`), `"open`)         // unbalanced quote untouched
}

func TestYesOrNo(t *testing.T) {
	is := is.New(t)
	v, err := yesOrNo("YES")
	is.NoErr(err)
	is.True(v)
	v, err = yesOrNo("NO")
	is.NoErr(err)
	is.True(!v)
	_, err = yesOrNo("yes")
	is.True(errors.Is(err, ErrNotYesOrNo)) // vocabulary is case sensitive
	_, err = yesOrNo("MAYBE")
	is.True(errors.Is(err, ErrNotYesOrNo)) // closed two-value vocabulary
}

func TestSplitDateRangeIDs(t *testing.T) {
	is := is.New(t)
	ids := splitDateRangeIDs("\"range-1\trange-2\trange-3\"")
	is.Equal(ids, []string{"range-1", "range-2", "range-3"}) // tab-delimited, order kept
}

func TestTrimLineEnd(t *testing.T) {
	is := is.New(t)
	is.Equal(trimLineEnd("#EXTM3U\n"), "#EXTM3U")   // newline removed
	is.Equal(trimLineEnd("#EXTM3U\r\n"), "#EXTM3U") // CRLF removed
	is.Equal(trimLineEnd("#EXTM3U"), "#EXTM3U")     // bare line untouched
	is.Equal(trimLineEnd(""), "")
}
