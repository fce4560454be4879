package tags

import (
	"fmt"
	"os"

	"github.com/Sorrow446/go-mp4tag"
	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// mp4Embedder stores lyrics in the ©lyr atom and cover art in a typed
// covr atom (PNG or JPEG, chosen from the sniffed MIME type). go-mp4tag
// rewrites only the atoms it is given, so other tags survive.
type mp4Embedder struct{}

func (mp4Embedder) embedLyrics(path, lyrics string) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer mp4.Close()

	if err := mp4.Write(&mp4tag.MP4Tags{Lyrics: lyrics}, nil); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (mp4Embedder) embedCover(path string, data []byte, mime string) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer mp4.Close()

	format := mp4tag.ImageTypeJPEG
	if mime == mimePNG {
		format = mp4tag.ImageTypePNG
	}

	// Writing Pictures replaces the covr atom wholesale
	tags := &mp4tag.MP4Tags{
		Pictures: []*mp4tag.MP4Picture{{Format: format, Data: data}},
	}
	if err := mp4.Write(tags, nil); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (mp4Embedder) hasLyrics(path string) (bool, error) {
	props, err := taglib.ReadTags(path)
	if err != nil {
		return false, err
	}
	return firstValue(props[lyricsKey]) != "", nil
}

func (mp4Embedder) hasCover(path string) (bool, error) {
	return hasPicture(path)
}

// hasPicture checks for embedded art via dhowden/tag, which decodes
// pictures across the container families.
func hasPicture(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return false, err
	}
	return m.Picture() != nil, nil
}
