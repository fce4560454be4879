// Package sidecar writes lyrics (.lrc) and cover art (cover.jpg) files
// next to audio tracks in the library.
package sidecar

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"lyricflow/internal/config"
	"lyricflow/internal/scanner"
)

type Handler struct {
	cfg *config.Config
	log *log.Logger
}

func NewHandler(cfg *config.Config, logger *log.Logger) *Handler {
	return &Handler{cfg: cfg, log: logger.With("component", "sidecar")}
}

// NeedsProcessing reports which sidecar files the track still needs,
// honoring the download and overwrite flags.
func (h *Handler) NeedsProcessing(t scanner.Track) (lyrics, cover bool) {
	if h.cfg.DownloadLyrics && (h.cfg.OverwriteLyrics || !t.HasLyricsFile()) {
		lyrics = true
	}
	if h.cfg.DownloadCover && (h.cfg.OverwriteCover || !t.HasCoverFile()) {
		cover = true
	}
	return lyrics, cover
}

// SaveLyrics writes an .lrc file next to the track, ensuring a trailing
// newline. Empty content and existing files (without overwrite) are
// no-ops reported as false.
func (h *Handler) SaveLyrics(t scanner.Track, content string) bool {
	if content == "" {
		return false
	}
	path := t.LyricsPath()
	if !h.cfg.OverwriteLyrics {
		if _, err := os.Stat(path); err == nil {
			h.log.Debug("lyrics file exists, skipping", "path", path)
			return false
		}
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		h.log.Error("write lyrics failed", "path", path, "err", err)
		return false
	}
	h.log.Info("saved lyrics", "path", path)
	return true
}

// SaveCover writes raw image bytes as cover.jpg in the track's directory.
// The bytes are stored as received; the provider already filtered out
// non-image responses.
func (h *Handler) SaveCover(t scanner.Track, data []byte) bool {
	if len(data) == 0 {
		return false
	}
	path := t.CoverPath()
	if !h.cfg.OverwriteCover {
		if _, err := os.Stat(path); err == nil {
			h.log.Debug("cover file exists, skipping", "path", path)
			return false
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		h.log.Error("write cover failed", "path", path, "err", err)
		return false
	}
	h.log.Info("saved cover", "path", path)
	return true
}
