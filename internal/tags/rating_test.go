package tags

import "testing"

func TestParseRating100(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"0", 0, true},
		{"20", 50, true},
		{"80", 200, true},
		{"100", 250, true},
		{" 60 ", 150, true},
		{"150", 250, true}, // clamped to 100
		{"-5", 0, true},
		{"", 0, false},
		{"five", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseRating100(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseRating100(%q) = %d, %v, want %d, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseFMPSRating(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"0", 0, true},
		{"0.8", 200, true},
		{"1.0", 250, true},
		{"abc", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseFMPSRating(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseFMPSRating(%q) = %d, %v, want %d, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRatingFromText(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   int
		wantOK bool
	}{
		{"rating key", map[string]string{"RATING": "80"}, 200, true},
		{"rate key", map[string]string{"RATE": "40"}, 100, true},
		{"fmps fallback", map[string]string{"FMPS_RATING": "0.4"}, 100, true},
		{"rating beats fmps", map[string]string{"RATING": "100", "FMPS_RATING": "0.2"}, 250, true},
		{"invalid rating falls through", map[string]string{"RATING": "x", "FMPS_RATING": "1"}, 250, true},
		{"none", map[string]string{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ratingFromText(func(key string) string { return tt.values[key] })
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ratingFromText() = %d, %v, want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestReadVorbisRating(t *testing.T) {
	tag := &Tag{}
	readVorbisRating(map[string]any{"rating": "60"}, tag)

	if !tag.Rated || tag.Rating != 150 {
		t.Errorf("Rating = %d (rated %v), want 150", tag.Rating, tag.Rated)
	}

	unrated := &Tag{}
	readVorbisRating(map[string]any{"artist": "x"}, unrated)
	if unrated.Rated {
		t.Error("Rated = true for comments without a rating")
	}
}
