package library

import "strings"

// NormalizeArtist returns the bucket key for an artist name.
// Names differing only in case or surrounding whitespace share a bucket.
func NormalizeArtist(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
