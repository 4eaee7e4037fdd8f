package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Read reads artist and rating metadata from a music file.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2Fallback(path)
		case ExtM4A, ExtMP4, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA:
			// dhowden/tag can't parse some files (e.g., ffmpeg-created M4A)
			return readWithTaglib(path)
		}
		return nil, err
	}

	t := &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Composer:    m.Composer(),
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ExtMP3:
		readMP3Rating(path, t)
	case ExtFLAC:
		readFLACRating(path, t)
	case ExtOPUS, ExtOGG, ExtOGA:
		readVorbisRating(m.Raw(), t)
		if !t.Rated {
			readTaglibRating(path, t)
		}
	case ExtM4A, ExtMP4:
		readTaglibRating(path, t)
	}

	return t, nil
}

// readVorbisRating reads the rating from dhowden/tag's raw Vorbis comments,
// which are keyed in lower case.
func readVorbisRating(raw map[string]any, t *Tag) {
	rating, ok := ratingFromText(func(key string) string {
		s, _ := raw[strings.ToLower(key)].(string)
		return s
	})
	if ok {
		t.Rating, t.Rated = rating, true
	}
}
