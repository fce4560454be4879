// Package config loads process configuration from environment variables
// and an optional TOML file. Environment variables win over the file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Provider selection
	APIProvider string `koanf:"api_provider"` // "tunehub" or "lrcapi"
	APIBaseURL  string `koanf:"api_base_url"`
	LrcAPIURL   string `koanf:"lrcapi_url"`
	LrcAPIAuth  string `koanf:"lrcapi_auth"` // optional auth token

	// Scanning
	MusicPath        string `koanf:"music_path"`
	ScanIntervalDays int    `koanf:"scan_interval_days"` // 0 = run once

	// Sidecar download behavior
	DownloadLyrics  bool `koanf:"download_lyrics"`
	DownloadCover   bool `koanf:"download_cover"`
	OverwriteLyrics bool `koanf:"overwrite_lyrics"`
	OverwriteCover  bool `koanf:"overwrite_cover"`

	// In-file tag update behavior
	UpdateLyrics    bool `koanf:"update_lyrics"`
	UpdateCover     bool `koanf:"update_cover"`
	UpdateBasicInfo bool `koanf:"update_basic_info"`

	// Force flags re-embed even when the tag is already present
	ForceUpdateLyrics    bool `koanf:"force_update_lyrics"`
	ForceUpdateCover     bool `koanf:"force_update_cover"`
	ForceUpdateBasicInfo bool `koanf:"force_update_basic_info"`

	// Fallback artist when tags and folder inference both come up empty
	DefaultArtist string `koanf:"default_artist"`

	// Infer artist/album from an Artist/Album/track.ext folder layout
	UseFolderStructure bool `koanf:"use_folder_structure"`

	// Platform priority for match scoring, highest first
	Platforms []string `koanf:"platforms"`

	// Allow-listed file extensions (including .strm stream pointers)
	AudioExtensions []string `koanf:"audio_extensions"`
}

// csvKeys are env variables holding comma-separated lists.
var csvKeys = map[string]bool{
	"platforms":        true,
	"audio_extensions": true,
}

// Load reads configuration with defaults < TOML file < environment.
// configFile, when non-empty, replaces the default file search paths.
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	paths := configPaths()
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		key = strings.ToLower(key)
		if csvKeys[key] {
			return key, splitCSV(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, err
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")
	cfg.LrcAPIURL = strings.TrimSuffix(cfg.LrcAPIURL, "/")
	for i, ext := range cfg.AudioExtensions {
		cfg.AudioExtensions[i] = strings.ToLower(ext)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		APIProvider:        "tunehub",
		APIBaseURL:         "https://music-dl.sayqz.com",
		LrcAPIURL:          "https://api.lrc.cx",
		MusicPath:          "/music",
		DownloadLyrics:     true,
		DownloadCover:      true,
		UseFolderStructure: true,
		Platforms:          []string{"netease", "kuwo", "qq"},
		AudioExtensions: []string{
			".mp3", ".flac", ".m4a", ".wav", ".ogg", ".wma", ".ape", ".strm",
		},
	}
}

func configPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "lyricflow", "config.toml"),
		"config.toml", // pwd, highest priority
	}
}

func splitCSV(s string) []string {
	parts := []string{}
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Interval converts the scan interval to a duration. Zero means run once.
func (c *Config) Interval() time.Duration {
	if c.ScanIntervalDays <= 0 {
		return 0
	}
	return time.Duration(c.ScanIntervalDays) * 24 * time.Hour
}

// AllowsExtension reports whether ext (with leading dot, any case) is scanned.
func (c *Config) AllowsExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range c.AudioExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
