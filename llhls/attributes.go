package llhls

/*
 This file defines the attribute-list parser shared by all tags.
*/

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrNotYesOrNo = errors.New("value must be YES or NO")

var reKeyValue = regexp.MustCompile(`([a-zA-Z0-9_-]+)=("[^"]+"|[^",]+)`)

// decodeAttributes splits a tag's attribute list into a map of attribute
// name to raw value. Values keep their surrounding quotes; it is up to each
// caller to DeQuote attributes it expects as quoted strings. Commas inside
// quoted values do not split. Fragments without '=' are dropped and a
// repeated name keeps its last value.
func decodeAttributes(list string) map[string]string {
	out := make(map[string]string)
	for _, kv := range reKeyValue.FindAllStringSubmatch(list, -1) {
		out[kv[1]] = kv[2]
	}
	return out
}

// DeQuote removes quotes from a string.
func DeQuote(s string) string {
	if len(s) < 2 {
		return s
	}
	if s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// yesOrNo parses the enumerated YES/NO attribute vocabulary. Anything
// outside the two literals is an error.
func yesOrNo(v string) (bool, error) {
	switch v {
	case "YES":
		return true, nil
	case "NO":
		return false, nil
	default:
		return false, fmt.Errorf("value %q: %w", v, ErrNotYesOrNo)
	}
}

// splitDateRangeIDs splits the RECENTLY-REMOVED-DATERANGES value into its
// ordered ID list. The value is tab-delimited, not comma-delimited, since
// it is nested inside a comma-delimited attribute list.
func splitDateRangeIDs(v string) []string {
	return strings.Split(DeQuote(v), "\t")
}

// trimLineEnd removes a trailing `\n` or `\r\n` from a string.
func trimLineEnd(line string) string {
	l := len(line)
	nrRemove := 0
	if l > 0 && line[l-1] == '\n' {
		nrRemove++
		if l > 1 && line[l-2] == '\r' {
			nrRemove++
		}
		return line[:l-nrRemove]
	}
	return line
}
