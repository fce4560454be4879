package tags

import (
	"fmt"
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

const lyricsKey = "LYRICS"

// flacEmbedder stores lyrics under a LYRICS Vorbis comment and cover art
// as a native FLAC picture block. Foreign comments are preserved on
// rewrite; only the entries being replaced are dropped.
type flacEmbedder struct{}

func (flacEmbedder) embedLyrics(path, lyrics string) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	cmts, cmtIdx := findVorbisComments(f)
	if cmts == nil {
		cmts = flacvorbis.New()
	}

	// Replace, not append: drop any existing lyrics entries first
	kept := cmts.Comments[:0]
	for _, c := range cmts.Comments {
		if !isComment(c, lyricsKey) {
			kept = append(kept, c)
		}
	}
	cmts.Comments = kept

	if err := cmts.Add(lyricsKey, lyrics); err != nil {
		return fmt.Errorf("add lyrics comment: %w", err)
	}

	block := cmts.Marshal()
	if cmtIdx >= 0 {
		f.Meta[cmtIdx] = &block
	} else {
		f.Meta = append(f.Meta, &block)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

func (flacEmbedder) embedCover(path string, data []byte, mime string) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	// Remove existing picture blocks
	kept := make([]*flac.MetaDataBlock, 0, len(f.Meta))
	for _, meta := range f.Meta {
		if meta.Type != flac.Picture {
			kept = append(kept, meta)
		}
	}
	f.Meta = kept

	pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Cover", data, mime)
	if err != nil {
		return fmt.Errorf("create picture: %w", err)
	}
	picBlock := pic.Marshal()
	f.Meta = append(f.Meta, &picBlock)

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

func (flacEmbedder) hasLyrics(path string) (bool, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return false, err
	}
	cmts, _ := findVorbisComments(f)
	if cmts == nil {
		return false, nil
	}
	for _, c := range cmts.Comments {
		if isComment(c, lyricsKey) {
			return true, nil
		}
	}
	return false, nil
}

func (flacEmbedder) hasCover(path string) (bool, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return false, err
	}
	for _, meta := range f.Meta {
		if meta.Type == flac.Picture {
			return true, nil
		}
	}
	return false, nil
}

// findVorbisComments returns the parsed VORBIS_COMMENT block and its
// index in f.Meta, or (nil, -1) when absent or unparseable.
func findVorbisComments(f *flac.File) (*flacvorbis.MetaDataBlockVorbisComment, int) {
	for i, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return nil, -1
			}
			return cmts, i
		}
	}
	return nil, -1
}

// isComment reports whether a raw KEY=value comment carries the given
// key. Vorbis comment keys are case-insensitive.
func isComment(comment, key string) bool {
	idx := strings.Index(comment, "=")
	if idx < 0 {
		return false
	}
	return strings.EqualFold(comment[:idx], key)
}
