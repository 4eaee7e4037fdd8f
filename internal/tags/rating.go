package tags

import (
	"math"
	"strconv"
	"strings"
)

// ratingKeys are the text keys that carry a 0-100 rating in Vorbis comments
// and MP4 property maps.
var ratingKeys = []string{"RATING", "RATE"}

// fmpsRatingKey carries a 0.0-1.0 rating (FMPS_RATING convention).
const fmpsRatingKey = "FMPS_RATING"

// scaleRating100 maps a 0-100 text rating onto 0..MaxRating (100 becomes 250).
func scaleRating100(v int) int {
	v = min(max(v, 0), 100)
	return v*2 + v/2
}

// parseRating100 parses a 0-100 text rating. Returns false if s is not a number.
func parseRating100(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return scaleRating100(v), true
}

// parseFMPSRating parses a 0.0-1.0 rating.
func parseFMPSRating(s string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return scaleRating100(int(math.Round(f * 100))), true
}

// ratingFromText looks up a rating in a key/value lookup, trying the 0-100
// keys first and the FMPS key last.
func ratingFromText(get func(key string) string) (int, bool) {
	for _, key := range ratingKeys {
		if v := get(key); v != "" {
			if r, ok := parseRating100(v); ok {
				return r, true
			}
		}
	}
	if v := get(fmpsRatingKey); v != "" {
		return parseFMPSRating(v)
	}
	return 0, false
}
