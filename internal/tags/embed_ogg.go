package tags

import (
	"encoding/base64"
	"fmt"

	"github.com/go-flac/flacpicture"
	"go.senan.xyz/taglib"
)

// metadataBlockPictureKey is the Vorbis comment convention for pictures
// in comment-only containers: a FLAC picture block, base64-encoded.
const metadataBlockPictureKey = "METADATA_BLOCK_PICTURE"

// oggEmbedder covers the Ogg family (Vorbis, Opus, OGA). These containers
// have no binary picture slot, so cover art rides in a base64
// METADATA_BLOCK_PICTURE comment.
type oggEmbedder struct{}

func (oggEmbedder) embedLyrics(path, lyrics string) error {
	// WriteTags without Clear replaces only the given keys
	fields := map[string][]string{lyricsKey: {lyrics}}
	if err := taglib.WriteTags(path, fields, 0); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	return nil
}

func (oggEmbedder) embedCover(path string, data []byte, mime string) error {
	pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Cover", data, mime)
	if err != nil {
		return fmt.Errorf("create picture: %w", err)
	}
	block := pic.Marshal()
	encoded := base64.StdEncoding.EncodeToString(block.Data)

	fields := map[string][]string{metadataBlockPictureKey: {encoded}}
	if err := taglib.WriteTags(path, fields, 0); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	return nil
}

func (oggEmbedder) hasLyrics(path string) (bool, error) {
	props, err := taglib.ReadTags(path)
	if err != nil {
		return false, err
	}
	return firstValue(props[lyricsKey]) != "", nil
}

func (oggEmbedder) hasCover(path string) (bool, error) {
	props, err := taglib.ReadTags(path)
	if err != nil {
		return false, err
	}
	if firstValue(props[metadataBlockPictureKey]) != "" {
		return true, nil
	}
	// TagLib surfaces pictures it parsed out of the comment block as
	// complex properties instead; fall back to a picture probe.
	return hasPicture(path)
}
