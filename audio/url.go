// Package audio provides pronunciation URL normalization and playback.
package audio

import (
	"strings"

	"worddeck/dict"
)

// NormalizeURL converts a raw audio URL into a playable absolute URL.
// Protocol-relative URLs are given an https scheme; http(s) URLs pass
// through trimmed. Anything else (relative paths, other schemes) is
// reported unplayable, not an error.
func NormalizeURL(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return "", false
	case strings.HasPrefix(s, "//"):
		return "https:" + s, true
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return s, true
	default:
		return "", false
	}
}

// FirstPlayable returns the first phonetic audio URL, in list order, that
// normalizes successfully.
func FirstPlayable(entry dict.Entry) (string, bool) {
	for _, p := range entry.Phonetics {
		if p.Audio == nil {
			continue
		}
		if u, ok := NormalizeURL(*p.Audio); ok {
			return u, true
		}
	}
	return "", false
}
