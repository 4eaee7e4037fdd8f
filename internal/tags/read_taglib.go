package tags

import (
	"go.senan.xyz/taglib"
)

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// readWithTaglib reads metadata using TagLib as fallback when dhowden/tag fails.
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	t := &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		AlbumArtist: tags.get(taglib.AlbumArtist),
		Composer:    tags.get("COMPOSER"),
	}
	applyTaglibRating(tags, t)

	return t, nil
}

// readTaglibRating reads the rating through TagLib's property map.
func readTaglibRating(path string, t *Tag) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return
	}
	applyTaglibRating(taglibTags(rawTags), t)
}

func applyTaglibRating(tags taglibTags, t *Tag) {
	if rating, ok := ratingFromText(func(key string) string { return tags.get(key) }); ok {
		t.Rating, t.Rated = rating, true
	}
}
