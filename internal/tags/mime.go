package tags

import "bytes"

const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
	mimeGIF  = "image/gif"
	mimeWEBP = "image/webp"
)

var (
	pngSignature  = []byte("\x89PNG\r\n\x1a\n")
	jpegSOIMarker = []byte{0xff, 0xd8}
	gifHeader     = []byte("GIF8")
	riffHeader    = []byte("RIFF")
	webpMarker    = []byte("WEBP")
)

// DetectImageMime sniffs the MIME type of cover art from its magic bytes.
// Unrecognized data defaults to JPEG, the overwhelmingly common case for
// album art returned by the upstream platforms.
func DetectImageMime(data []byte) string {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return mimePNG
	case bytes.HasPrefix(data, jpegSOIMarker):
		return mimeJPEG
	case bytes.HasPrefix(data, gifHeader):
		return mimeGIF
	case len(data) >= 12 && bytes.HasPrefix(data, riffHeader) && bytes.Equal(data[8:12], webpMarker):
		return mimeWEBP
	}
	return mimeJPEG
}
