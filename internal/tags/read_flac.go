package tags

import (
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

// readFLACRating reads the rating from a FLAC file's Vorbis comment block.
func readFLACRating(path string, t *Tag) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return
		}
		rating, ok := ratingFromText(func(key string) string {
			values, err := cmts.Get(key)
			if err != nil || len(values) == 0 {
				return ""
			}
			return values[0]
		})
		if ok {
			t.Rating, t.Rated = rating, true
		}
		return
	}
}
