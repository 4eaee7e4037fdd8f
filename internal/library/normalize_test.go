package library

import "testing"

func TestNormalizeArtist(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Radiohead", "radiohead"},
		{"RADIOHEAD", "radiohead"},
		{"  Radiohead  ", "radiohead"},
		{"\tSigur Rós\n", "sigur rós"},

		// Inner whitespace and punctuation are kept
		{"AC/DC", "ac/dc"},
		{"Godspeed You!  Black Emperor", "godspeed you!  black emperor"},

		// Empty and edge cases
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeArtist(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeArtist(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
