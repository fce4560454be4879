package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "tunehub", cfg.APIProvider)
	assert.Equal(t, "https://music-dl.sayqz.com", cfg.APIBaseURL)
	assert.Equal(t, "https://api.lrc.cx", cfg.LrcAPIURL)
	assert.Equal(t, "/music", cfg.MusicPath)
	assert.True(t, cfg.DownloadLyrics)
	assert.True(t, cfg.DownloadCover)
	assert.False(t, cfg.UpdateLyrics)
	assert.False(t, cfg.OverwriteLyrics)
	assert.True(t, cfg.UseFolderStructure)
	assert.Equal(t, []string{"netease", "kuwo", "qq"}, cfg.Platforms)
	assert.Zero(t, cfg.ScanIntervalDays)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_PROVIDER", "lrcapi")
	t.Setenv("MUSIC_PATH", "/data/music")
	t.Setenv("API_BASE_URL", "https://mirror.example.com/")
	t.Setenv("DOWNLOAD_COVER", "false")
	t.Setenv("UPDATE_LYRICS", "true")
	t.Setenv("SCAN_INTERVAL_DAYS", "7")
	t.Setenv("DEFAULT_ARTIST", "Unknown Artist")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "lrcapi", cfg.APIProvider)
	assert.Equal(t, "/data/music", cfg.MusicPath)
	assert.Equal(t, "https://mirror.example.com", cfg.APIBaseURL, "trailing slash should be trimmed")
	assert.False(t, cfg.DownloadCover)
	assert.True(t, cfg.UpdateLyrics)
	assert.Equal(t, 7, cfg.ScanIntervalDays)
	assert.Equal(t, "Unknown Artist", cfg.DefaultArtist)
}

func TestLoadEnvLists(t *testing.T) {
	t.Setenv("PLATFORMS", "qq, netease")
	t.Setenv("AUDIO_EXTENSIONS", ".MP3,.Flac, .ogg")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"qq", "netease"}, cfg.Platforms)
	assert.Equal(t, []string{".mp3", ".flac", ".ogg"}, cfg.AudioExtensions, "extensions should be lower-cased")
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
api_provider = "lrcapi"
lrcapi_url = "https://lyrics.internal/"
lrcapi_auth = "secret-token"
music_path = "/srv/music"
update_basic_info = true
platforms = ["kuwo"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "lrcapi", cfg.APIProvider)
	assert.Equal(t, "https://lyrics.internal", cfg.LrcAPIURL)
	assert.Equal(t, "secret-token", cfg.LrcAPIAuth)
	assert.Equal(t, "/srv/music", cfg.MusicPath)
	assert.True(t, cfg.UpdateBasicInfo)
	assert.Equal(t, []string{"kuwo"}, cfg.Platforms)
}

func TestEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`music_path = "/from/file"`), 0o600))
	t.Setenv("MUSIC_PATH", "/from/env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.MusicPath)
}

func TestInterval(t *testing.T) {
	cfg := &Config{ScanIntervalDays: 7}
	assert.Equal(t, 7*24*time.Hour, cfg.Interval())

	cfg.ScanIntervalDays = 0
	assert.Zero(t, cfg.Interval())

	cfg.ScanIntervalDays = -1
	assert.Zero(t, cfg.Interval())
}

func TestAllowsExtension(t *testing.T) {
	cfg := &Config{AudioExtensions: []string{".mp3", ".flac", ".strm"}}

	assert.True(t, cfg.AllowsExtension(".mp3"))
	assert.True(t, cfg.AllowsExtension(".MP3"), "check is case-insensitive")
	assert.True(t, cfg.AllowsExtension(".strm"))
	assert.False(t, cfg.AllowsExtension(".txt"))
	assert.False(t, cfg.AllowsExtension(""))
}
