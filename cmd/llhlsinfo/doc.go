// Command llhlsinfo decodes a Low-Latency HLS media playlist file and
// prints a summary of its contents, or the full decoded model as JSON.
//
// Usage:
//
//	llhlsinfo -f playlist.m3u8 [-json]
//
// The exit code is non-zero when the file cannot be decoded; the log line
// states whether the input was not an extended M3U document at all, was
// malformed, or could not be read.
package main
