// Package tags reads and writes metadata embedded in audio containers.
// It consolidates lyrics, cover art and basic-info handling for the MP3,
// FLAC, MP4 and Ogg families behind one extension-keyed dispatch.
package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// File extensions with a format-specific embedder.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
	ExtOGG  = ".ogg"
	ExtOPUS = ".opus"
	ExtOGA  = ".oga"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// Basic holds the generic artist/title/album triple used by the scanner.
type Basic struct {
	Artist string
	Title  string
	Album  string
}

// ReadBasic reads the generic tags from a music file. dhowden/tag covers
// the common containers; TagLib picks up files it rejects (ffmpeg-created
// M4A, some UTF-16 ID3 variants). Files neither can parse return an error
// with a zero Basic, which callers may treat as "no tags".
func ReadBasic(path string) (Basic, error) {
	f, err := os.Open(path)
	if err != nil {
		return Basic{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if props, tlErr := taglib.ReadTags(path); tlErr == nil {
			return Basic{
				Artist: firstValue(props[taglib.Artist]),
				Title:  firstValue(props[taglib.Title]),
				Album:  firstValue(props[taglib.Album]),
			}, nil
		}
		return Basic{}, err
	}

	return Basic{
		Artist: m.Artist(),
		Title:  m.Title(),
		Album:  m.Album(),
	}, nil
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func extOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
