package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/hlstools/llhls/llhls"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("llhlsinfo", flag.ContinueOnError)
	path := fs.String("f", "", "path to the media playlist file")
	asJSON := fs.Bool("json", false, "print the decoded playlist as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		logger.Error().Msg("no playlist file given, use -f")
		return errors.New("missing -f flag")
	}

	playlist, err := llhls.DecodeFile(*path)
	if err != nil {
		switch {
		case errors.Is(err, llhls.ErrExtM3UAbsent):
			logger.Error().Str("file", *path).Msg("not an extended M3U playlist")
		case errors.Is(err, llhls.ErrMissingAttribute), errors.Is(err, llhls.ErrNotYesOrNo):
			logger.Error().Str("file", *path).Err(err).Msg("malformed playlist")
		default:
			logger.Error().Str("file", *path).Err(err).Msg("reading playlist failed")
		}
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(playlist)
	}

	parts := 0
	for _, seg := range playlist.Segments {
		parts += len(seg.Parts)
	}
	logger.Info().
		Uint("version", playlist.Version).
		Uint("target_duration", playlist.TargetDuration).
		Float64("part_target", playlist.PartInf.PartTarget).
		Uint64("media_sequence", playlist.SeqNo).
		Int("segments", len(playlist.Segments)).
		Int("parts", parts).
		Int("rendition_reports", len(playlist.RenditionReports)).
		Bool("can_block_reload", playlist.ServerControl.CanBlockReload).
		Msg("playlist decoded")

	fmt.Fprintf(stdout, "%s: %d segments, %d parts\n", *path, len(playlist.Segments), parts)
	return nil
}
