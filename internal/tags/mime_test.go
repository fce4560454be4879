package tags

import "testing"

func TestDetectImageMime(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", []byte("\x89PNG\r\n\x1a\nrest"), "image/png"},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}, "image/jpeg"},
		{"gif87", []byte("GIF87a...."), "image/gif"},
		{"gif89", []byte("GIF89a...."), "image/gif"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "image/webp"},
		{"riff but not webp", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), "image/jpeg"},
		{"unknown defaults to jpeg", []byte("not an image"), "image/jpeg"},
		{"empty defaults to jpeg", nil, "image/jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectImageMime(tt.data); got != tt.want {
				t.Errorf("DetectImageMime() = %q, want %q", got, tt.want)
			}
		})
	}
}
