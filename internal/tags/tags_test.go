package tags

import "testing"

func TestIsMusicFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"song.MP3", true},
		{"song.flac", true},
		{"song.FLAC", true},
		{"song.opus", true},
		{"song.ogg", true},
		{"song.oga", true},
		{"song.OGA", true},
		{"song.m4a", true},
		{"song.mp4", true},
		{"song.wav", false},
		{"song.txt", false},
		{"song", false},
		{"/path/to/music.flac", true},
		{"/path.mp3/cover.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsMusicFile(tt.path); got != tt.want {
				t.Errorf("IsMusicFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestArtistFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a", ""},
		{"a/b", "a"},
		{"a/b/c", "a"},
		{"a/b/c/d", "b"},
		{"./Artist/track.mp3", "Artist"},
		{"../Artist/Album/track.mp3", "Artist"},
		{"/music/Artist/Album/track.mp3", "Artist"},
		{"/track.mp3", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ArtistFromPath(tt.path); got != tt.want {
				t.Errorf("ArtistFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestTag_BucketArtist(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want string
	}{
		{"artist wins", Tag{Artist: "A", AlbumArtist: "B", Composer: "C"}, "A"},
		{"album artist fallback", Tag{AlbumArtist: "B", Composer: "C"}, "B"},
		{"composer fallback", Tag{Composer: "C"}, "C"},
		{"blank artist skipped", Tag{Artist: "  ", AlbumArtist: "B"}, "B"},
		{"trimmed", Tag{Artist: " A "}, "A"},
		{"none", Tag{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tag.BucketArtist(); got != tt.want {
				t.Errorf("BucketArtist() = %q, want %q", got, tt.want)
			}
		})
	}
}
