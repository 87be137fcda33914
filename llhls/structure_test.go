package llhls

/*
 Builder sealing tests.
*/

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestServerControlBuilderSeal(t *testing.T) {
	is := is.New(t)
	yes := true
	hold := 1.5
	until := 6.0

	b := serverControlBuilder{canBlockReload: &yes, partHoldBack: &hold, canSkipUntil: &until}
	sc, err := b.seal()
	is.NoErr(err)
	is.Equal(sc, ServerControl{CanBlockReload: true, PartHoldBack: 1.5, CanSkipUntil: 6.0})

	for _, b := range []serverControlBuilder{
		{partHoldBack: &hold, canSkipUntil: &until},
		{canBlockReload: &yes, canSkipUntil: &until},
		{canBlockReload: &yes, partHoldBack: &hold},
	} {
		_, err := b.seal()
		is.True(errors.Is(err, ErrMissingAttribute)) // all three attributes are mandatory
	}
}

func TestPartialSegmentBuilderSeal(t *testing.T) {
	is := is.New(t)
	d := 0.33334
	uri := "part.mp4"

	b := partialSegmentBuilder{duration: &d, uri: &uri}
	ps, err := b.seal()
	is.NoErr(err)
	is.True(ps.Independent == nil) // absent INDEPENDENT seals as unset, not false

	_, err = (&partialSegmentBuilder{duration: &d}).seal()
	is.True(errors.Is(err, ErrMissingAttribute)) // URI is mandatory
	_, err = (&partialSegmentBuilder{uri: &uri}).seal()
	is.True(errors.Is(err, ErrMissingAttribute)) // DURATION is mandatory
}

func TestSkipBuilderSealDefaults(t *testing.T) {
	is := is.New(t)
	count := uint(3)
	skip, err := (&skipBuilder{skippedSegments: &count}).seal()
	is.NoErr(err)
	is.Equal(len(skip.RecentlyRemovedDateranges), 0) // list defaults to empty when absent

	_, err = (&skipBuilder{}).seal()
	is.True(errors.Is(err, ErrMissingAttribute)) // SKIPPED-SEGMENTS is mandatory
}

func TestPreloadHintBuilderSeal(t *testing.T) {
	is := is.New(t)
	uri := "next.mp4"
	hint, err := (&preloadHintBuilder{hintType: PreloadHintMap, uri: &uri}).seal()
	is.NoErr(err)
	is.True(hint.ByteRangeStart == nil)  // byterange fields stay absent
	is.True(hint.ByteRangeLength == nil)

	_, err = (&preloadHintBuilder{uri: &uri}).seal()
	is.True(errors.Is(err, ErrMissingAttribute)) // TYPE is mandatory
	_, err = (&preloadHintBuilder{hintType: PreloadHintPart}).seal()
	is.True(errors.Is(err, ErrMissingAttribute)) // URI is mandatory
}

func TestMediaSegmentBuilderSeal(t *testing.T) {
	is := is.New(t)
	d := 4.0
	uri := "file0.mp4"

	seg, err := (&mediaSegmentBuilder{duration: &d, uri: &uri}).seal()
	is.NoErr(err)
	is.True(seg.ProgramDateTime.IsZero()) // program date time is optional

	_, err = (&mediaSegmentBuilder{uri: &uri}).seal()
	is.True(errors.Is(err, ErrMissingAttribute)) // duration is mandatory
	_, err = (&mediaSegmentBuilder{duration: &d}).seal()
	is.True(errors.Is(err, ErrMissingAttribute)) // URI is mandatory
}

func TestPreloadHintTypeString(t *testing.T) {
	is := is.New(t)
	is.Equal(PreloadHintPart.String(), "PART")
	is.Equal(PreloadHintMap.String(), "MAP")
	is.Equal(PreloadHintType(0).String(), "Unknown")
}
