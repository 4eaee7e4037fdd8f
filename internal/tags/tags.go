// Package tags reads the metadata spread needs from music files: who the
// artist is and how the track is rated.
// It handles MP3 (ID3v2), FLAC and Ogg (Vorbis comments), and M4A/MP4.
package tags

import (
	"path/filepath"
	"strings"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// MaxRating is the top of the rating scale. Ratings use the ID3v2
// popularimeter range (0-255); text ratings are scaled into it.
const MaxRating = 255

// Tag contains the metadata read from a music file.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Composer    string

	// Rating is in 0..MaxRating and only meaningful when Rated is true.
	Rating int
	Rated  bool
}

// BucketArtist returns the artist the track should be grouped under:
// the track artist, then the album artist, then the composer.
// Returns empty string when the file names none of them.
func (t *Tag) BucketArtist() string {
	for _, s := range []string{t.Artist, t.AlbumArtist, t.Composer} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		return true
	}
	return false
}

// ArtistFromPath guesses the artist from a path laid out as
// Artist/Album/track or Artist/track: the grandparent directory when there
// is one, else the parent directory, else empty string.
func ArtistFromPath(path string) string {
	var parts []string
	for _, p := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if p == "" || p == "." || p == ".." || strings.HasSuffix(p, ":") {
			continue
		}
		parts = append(parts, p)
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return parts[len(parts)-2]
	}
}
