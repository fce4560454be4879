// Package provider resolves tracks against remote metadata services and
// fetches lyrics and cover art for matched candidates.
package provider

import (
	"context"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"lyricflow/internal/config"
)

// Candidate is one remote search result for a queried track. Candidates
// are never mutated after creation.
type Candidate struct {
	ID        string
	Name      string
	Artist    string
	Album     string
	Platform  string
	LyricsURL string
	CoverURL  string
}

// Provider resolves an (artist, title) pair to remote candidates and can
// fetch lyrics and cover bytes for a chosen one. Transport and decoding
// failures never escape this boundary: they are logged and degrade to
// zero results or absent values.
type Provider interface {
	Search(ctx context.Context, artist, title, album string) []Candidate
	Lyrics(ctx context.Context, c Candidate) (string, bool)
	Cover(ctx context.Context, c Candidate) ([]byte, bool)
	BestMatch(candidates []Candidate, artist, title string) (Candidate, bool)
	Close()
}

// New selects the provider implementation named by the configuration.
// Anything other than "lrcapi" gets the TuneHub aggregator.
func New(cfg *config.Config, logger *log.Logger) Provider {
	if cfg.APIProvider == "lrcapi" {
		return NewLrcAPI(cfg.LrcAPIURL, cfg.LrcAPIAuth, logger)
	}
	return NewTuneHub(cfg.APIBaseURL, cfg.Platforms, logger)
}

// fetchURL performs one GET and returns the body and content type.
// Any transport error or non-2xx status is logged and reported as not ok.
func fetchURL(ctx context.Context, client *http.Client, rawURL string, header http.Header, logger *log.Logger) (body []byte, contentType string, ok bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		logger.Error("create request failed", "url", rawURL, "err", err)
		return nil, "", false
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("http request failed", "url", rawURL, "err", err)
		return nil, "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Warn("unexpected status", "url", rawURL, "status", resp.Status)
		return nil, "", false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("read response failed", "url", rawURL, "err", err)
		return nil, "", false
	}
	return data, resp.Header.Get("Content-Type"), true
}
