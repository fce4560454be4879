package tags

import (
	"errors"
	"fmt"
	"os"

	"github.com/bogem/id3v2/v2"
)

// mp3Embedder stores lyrics in a USLT frame and cover art in an APIC
// front-cover frame. A file without an ID3v2 header starts from an empty
// tag; ID3v2.2 headers are stripped first since the library cannot parse
// them.
type mp3Embedder struct{}

func (mp3Embedder) embedLyrics(path, lyrics string) error {
	tag, err := openMP3(path)
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.DeleteFrames(tag.CommonID("Unsynchronised lyrics/text transcription"))
	tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          id3v2.EncodingUTF8,
		Language:          "xxx",
		ContentDescriptor: "",
		Lyrics:            lyrics,
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	return nil
}

func (mp3Embedder) embedCover(path string, data []byte, mime string) error {
	tag, err := openMP3(path)
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.DeleteFrames(tag.CommonID("Attached picture"))
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mime,
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     data,
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	return nil
}

func (mp3Embedder) hasLyrics(path string) (bool, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return false, err
	}
	defer tag.Close()
	return len(tag.GetFrames(tag.CommonID("Unsynchronised lyrics/text transcription"))) > 0, nil
}

func (mp3Embedder) hasCover(path string) (bool, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return false, err
	}
	defer tag.Close()
	return len(tag.GetFrames(tag.CommonID("Attached picture"))) > 0, nil
}

// openMP3 opens a file for ID3 editing, upgrading to v2.4 with UTF-8 and
// recovering from unsupported ID3v2.2 headers by stripping them.
func openMP3(path string) (*id3v2.Tag, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		if stripErr := stripID3v2Tag(path); stripErr != nil {
			return nil, fmt.Errorf("strip unsupported ID3v2.2 tag: %w", stripErr)
		}
		tag, err = id3v2.Open(path, id3v2.Options{Parse: true})
	}
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	return tag, nil
}

// stripID3v2Tag removes the ID3v2 tag from an MP3 file. Used to handle
// ID3v2.2 tags which the id3v2 library doesn't support.
func stripID3v2Tag(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	// Header is 10 bytes; size in bytes 6-9 is a synchsafe integer
	if len(data) < 10 || string(data[:3]) != id3Magic {
		return nil // no ID3v2 tag to strip
	}
	size := int(data[6])<<21 | int(data[7])<<14 | int(data[8])<<7 | int(data[9])
	tagSize := size + 10

	// Footer flag (ID3v2.4 only)
	if data[5]&0x10 != 0 {
		tagSize += 10
	}

	if tagSize >= len(data) {
		return fmt.Errorf("ID3v2 tag size (%d) exceeds file size (%d)", tagSize, len(data))
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if err := os.WriteFile(path, data[tagSize:], info.Mode()); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
