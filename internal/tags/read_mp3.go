package tags

import (
	"github.com/bogem/id3v2/v2"
)

// popmFrameID is the ID3v2 popularimeter frame.
const popmFrameID = "POPM"

// readMP3Rating reads the popularimeter rating from an MP3 file.
func readMP3Rating(path string, t *Tag) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return
	}
	defer id3tag.Close()

	readPOPM(id3tag, t)
}

// readPOPM takes the first popularimeter frame. Its rating byte is already
// on the 0-255 scale.
func readPOPM(id3tag *id3v2.Tag, t *Tag) {
	for _, frame := range id3tag.GetFrames(popmFrameID) {
		if popm, ok := frame.(id3v2.PopularimeterFrame); ok {
			t.Rating = int(popm.Rating)
			t.Rated = true
			return
		}
	}
}

// readMP3WithID3v2Fallback reads MP3 metadata using only the id3v2 library.
// This is used as a fallback when dhowden/tag fails (e.g., on some UTF-16 encoded tags).
func readMP3WithID3v2Fallback(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	t := &Tag{
		Path:        path,
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		AlbumArtist: getID3TextFrame(id3tag, "TPE2"),
		Composer:    getID3TextFrame(id3tag, "TCOM"),
	}
	readPOPM(id3tag, t)

	return t, nil
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
