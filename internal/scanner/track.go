package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

// extStream marks plain-text stream pointer files that carry no audio
// data and cannot hold embedded tags.
const extStream = ".strm"

// Track is one normalized music file record. Immutable once yielded by
// the scanner; the derived paths are pure functions of Path.
type Track struct {
	Path   string
	Artist string
	Title  string
	Album  string
}

// LyricsPath is the sidecar lyrics location: the track path with its
// extension replaced by .lrc.
func (t Track) LyricsPath() string {
	ext := filepath.Ext(t.Path)
	return strings.TrimSuffix(t.Path, ext) + ".lrc"
}

// CoverPath is the sidecar cover location: cover.jpg in the track's
// directory, shared by the whole album folder.
func (t Track) CoverPath() string {
	return filepath.Join(filepath.Dir(t.Path), "cover.jpg")
}

// Dir returns the track's containing directory.
func (t Track) Dir() string {
	return filepath.Dir(t.Path)
}

// IsStream reports whether the track is a .strm stream pointer.
func (t Track) IsStream() bool {
	return strings.EqualFold(filepath.Ext(t.Path), extStream)
}

// HasLyricsFile reports whether the sidecar lyrics file exists.
func (t Track) HasLyricsFile() bool {
	_, err := os.Stat(t.LyricsPath())
	return err == nil
}

// HasCoverFile reports whether the directory's cover.jpg exists.
func (t Track) HasCoverFile() bool {
	_, err := os.Stat(t.CoverPath())
	return err == nil
}
