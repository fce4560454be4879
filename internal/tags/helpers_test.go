package tags

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// Test file creation helpers

// createTestMP3 creates a minimal MP3 file with one silent frame and no
// ID3 tag.
func createTestMP3(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "test.mp3")

	// Minimal MP3 frame (MPEG1 Layer3, 128kbps, 44100Hz, stereo)
	mp3Frame := make([]byte, 417)
	mp3Frame[0] = 0xff
	mp3Frame[1] = 0xfb
	mp3Frame[2] = 0x90
	mp3Frame[3] = 0x00

	if err := os.WriteFile(path, mp3Frame, 0o600); err != nil {
		t.Fatalf("failed to create test MP3: %v", err)
	}
	return path
}

// createTestFLAC creates a test FLAC file using ffmpeg.
func createTestFLAC(t *testing.T, dir string) string {
	t.Helper()
	return createWithFFmpeg(t, filepath.Join(dir, "test.flac"), "flac")
}

// createTestVorbis creates a test Vorbis (.ogg) file using ffmpeg.
func createTestVorbis(t *testing.T, dir string) string {
	t.Helper()
	return createWithFFmpeg(t, filepath.Join(dir, "test.ogg"), "libvorbis")
}

// createTestOpus creates a test Opus file using ffmpeg.
func createTestOpus(t *testing.T, dir string) string {
	t.Helper()
	return createWithFFmpeg(t, filepath.Join(dir, "test.opus"), "libopus")
}

// createTestM4A creates a test M4A file using ffmpeg.
func createTestM4A(t *testing.T, dir string) string {
	t.Helper()
	return createWithFFmpeg(t, filepath.Join(dir, "test.m4a"), "aac")
}

func createWithFFmpeg(t *testing.T, path, codec string) string {
	t.Helper()
	cmd := exec.Command("ffmpeg", "-y", "-f", "lavfi", "-i", "sine=frequency=440:duration=1", "-c:a", codec, path)
	cmd.Stderr = nil
	cmd.Stdout = nil
	if err := cmd.Run(); err != nil {
		t.Skipf("ffmpeg not available: %v", err)
	}
	return path
}

// testPNG returns a decodable 1x1 PNG, usable wherever the picture
// machinery inspects image dimensions.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
