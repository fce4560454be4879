package tags

import (
	"github.com/charmbracelet/log"
	"go.senan.xyz/taglib"
)

// embedder writes lyrics and cover art into one container format.
// Implementations replace existing entries rather than appending.
type embedder interface {
	embedLyrics(path, lyrics string) error
	embedCover(path string, data []byte, mime string) error
	hasLyrics(path string) (bool, error)
	hasCover(path string) (bool, error)
}

// embedders keys lower-cased file extensions to their format embedder.
var embedders = map[string]embedder{
	ExtMP3:  mp3Embedder{},
	ExtFLAC: flacEmbedder{},
	ExtM4A:  mp4Embedder{},
	ExtMP4:  mp4Embedder{},
	ExtOGG:  oggEmbedder{},
	ExtOPUS: oggEmbedder{},
	ExtOGA:  oggEmbedder{},
}

// Handler embeds metadata into audio files, dispatching per container
// format. Every operation degrades to false on failure; errors are logged
// and never escape this boundary.
type Handler struct {
	log *log.Logger
}

func NewHandler(logger *log.Logger) *Handler {
	return &Handler{log: logger.With("component", "embed")}
}

// Supported reports whether the file format has an embedder.
func (h *Handler) Supported(path string) bool {
	_, ok := embedders[extOf(path)]
	return ok
}

// EmbedLyrics writes lyrics into the file's tag block, replacing any
// existing lyrics entry. Returns whether the file was written.
func (h *Handler) EmbedLyrics(path, lyrics string) bool {
	if lyrics == "" {
		return false
	}
	e, ok := embedders[extOf(path)]
	if !ok {
		h.log.Debug("no embedder for extension", "path", path)
		return false
	}
	if err := e.embedLyrics(path, lyrics); err != nil {
		h.log.Error("embed lyrics failed", "path", path, "err", err)
		return false
	}
	return true
}

// EmbedCover writes cover art into the file's tag block, replacing any
// existing pictures. The image type is sniffed from the data.
func (h *Handler) EmbedCover(path string, data []byte) bool {
	if len(data) == 0 {
		return false
	}
	e, ok := embedders[extOf(path)]
	if !ok {
		h.log.Debug("no embedder for extension", "path", path)
		return false
	}
	if err := e.embedCover(path, data, DetectImageMime(data)); err != nil {
		h.log.Error("embed cover failed", "path", path, "err", err)
		return false
	}
	return true
}

// HasEmbeddedLyrics reports whether the file already carries lyrics.
// Unreadable or unsupported files report false.
func (h *Handler) HasEmbeddedLyrics(path string) bool {
	e, ok := embedders[extOf(path)]
	if !ok {
		return false
	}
	has, err := e.hasLyrics(path)
	if err != nil {
		h.log.Debug("lyrics check failed", "path", path, "err", err)
		return false
	}
	return has
}

// HasEmbeddedCover reports whether the file already carries a picture.
func (h *Handler) HasEmbeddedCover(path string) bool {
	e, ok := embedders[extOf(path)]
	if !ok {
		return false
	}
	has, err := e.hasCover(path)
	if err != nil {
		h.log.Debug("cover check failed", "path", path, "err", err)
		return false
	}
	return has
}

// UpdateBasicInfo writes whichever of artist/title/album are non-empty
// into the file's generic tag fields. Returns whether anything was
// written. All-empty input is a no-op reported as false.
func (h *Handler) UpdateBasicInfo(path, artist, title, album string) bool {
	if artist == "" && title == "" && album == "" {
		return false
	}
	if !h.Supported(path) {
		h.log.Debug("no embedder for extension", "path", path)
		return false
	}

	fields := make(map[string][]string, 3)
	if artist != "" {
		fields[taglib.Artist] = []string{artist}
	}
	if title != "" {
		fields[taglib.Title] = []string{title}
	}
	if album != "" {
		fields[taglib.Album] = []string{album}
	}

	if err := taglib.WriteTags(path, fields, 0); err != nil {
		h.log.Error("update basic info failed", "path", path, "err", err)
		return false
	}
	return true
}

// HasBasicInfo reports whether artist, title and album are all present
// and non-empty in the file's generic tag fields.
func (h *Handler) HasBasicInfo(path string) bool {
	if !h.Supported(path) {
		return false
	}
	props, err := taglib.ReadTags(path)
	if err != nil {
		h.log.Debug("basic info check failed", "path", path, "err", err)
		return false
	}
	return firstValue(props[taglib.Artist]) != "" &&
		firstValue(props[taglib.Title]) != "" &&
		firstValue(props[taglib.Album]) != ""
}
