// Package scanner walks a music library root and yields normalized
// track records for every allow-listed audio file.
package scanner

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"lyricflow/internal/config"
	"lyricflow/internal/tags"
)

type Scanner struct {
	cfg *config.Config
	log *log.Logger
}

func New(cfg *config.Config, logger *log.Logger) *Scanner {
	return &Scanner{cfg: cfg, log: logger.With("component", "scanner")}
}

// Scan returns a lazy sequence of tracks under root (the configured
// music path when root is empty). Hidden directories are skipped, walk
// errors are not fatal, and the sequence can be iterated again to
// restart the scan from scratch.
func (s *Scanner) Scan(root string) iter.Seq[Track] {
	if root == "" {
		root = s.cfg.MusicPath
	}
	return func(yield func(Track) bool) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			absRoot = filepath.Clean(root)
		}
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return nil //nolint:nilerr // keep scanning other paths
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if !s.cfg.AllowsExtension(filepath.Ext(path)) {
				return nil
			}

			track, ok := s.parse(path, absRoot)
			if !ok {
				return nil
			}
			if !yield(track) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// parse reads tags from one file and applies the filename, folder and
// default-artist fallbacks. Files ending up with an empty title are
// dropped.
func (s *Scanner) parse(path, root string) (Track, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = filepath.Clean(path)
	}

	basic, err := tags.ReadBasic(absPath)
	if err != nil {
		if _, statErr := os.Stat(absPath); statErr != nil {
			s.log.Warn("skipping unreadable file", "path", path, "err", statErr)
			return Track{}, false
		}
		// Tagless files and foreign formats (.strm pointers, bare
		// containers) proceed on filename and folder fallbacks alone.
		s.log.Debug("no readable tags", "path", path, "err", err)
	}

	artist, title, album := basic.Artist, basic.Title, basic.Album

	if title == "" {
		base := filepath.Base(absPath)
		title = strings.TrimSuffix(base, filepath.Ext(base))
		s.log.Debug("no title tag, using filename", "title", title)
	}

	if s.cfg.UseFolderStructure {
		artist, album = s.inferFromFolders(absPath, root, artist, album)
	}

	if artist == "" && s.cfg.DefaultArtist != "" {
		artist = s.cfg.DefaultArtist
		s.log.Debug("no artist tag, using default", "artist", artist)
	}

	if title == "" {
		return Track{}, false
	}
	return Track{Path: absPath, Artist: artist, Title: title, Album: album}, true
}

// inferFromFolders fills missing artist/album from an Artist/Album/track
// directory layout. A track sitting directly in an artist folder (its
// grandparent IS the scan root) uses the parent as artist and clears the
// album, which in that layout is a misread artist name.
func (s *Scanner) inferFromFolders(path, root, artist, album string) (string, string) {
	parent := filepath.Dir(path)
	grand := filepath.Dir(parent)
	parentName := filepath.Base(parent)
	grandName := filepath.Base(grand)
	grandIsRoot := grand == root

	switch {
	case artist == "" && grandName != "" && !grandIsRoot:
		artist = grandName
		s.log.Debug("no artist tag, using folder", "artist", artist)
	case artist == "" && parentName != "" && grandIsRoot:
		artist = parentName
		album = ""
		s.log.Debug("shallow layout, using parent as artist", "artist", artist)
	}

	if album == "" && parentName != "" && !(grandIsRoot && artist == "") {
		if parentName != artist {
			album = parentName
			s.log.Debug("no album tag, using folder", "album", album)
		}
	}

	return artist, album
}
