package contentgen

import (
	"errors"
	"strings"
)

// Bracket selects the JSON payload kind expected inside a noisy
// provider response.
type Bracket byte

const (
	BracketArray  Bracket = '['
	BracketObject Bracket = '{'
)

var errNoPayload = errors.New("no JSON payload found")

// extractJSON strips non-JSON wrapping (prose, code fences) from text
// and returns the substring from the first opening bracket of the
// expected kind to its matching closing bracket, preferring the longest
// balanced span. String contents are honored so brackets inside quoted
// values do not confuse the scan.
func extractJSON(text string, kind Bracket) (string, error) {
	open := byte(kind)
	var close byte
	switch kind {
	case BracketArray:
		close = ']'
	case BracketObject:
		close = '}'
	default:
		return "", errNoPayload
	}

	start := strings.IndexByte(text, open)
	if start < 0 {
		return "", errNoPayload
	}

	depth := 0
	end := -1
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				// Remember the last balanced close so trailing noise
				// with stray brackets does not truncate the payload.
				end = i
			}
		}
	}

	if end < 0 {
		return "", errNoPayload
	}
	return text[start : end+1], nil
}
