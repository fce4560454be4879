package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LrcAPI is the single-endpoint provider (github.com/HisAtri/LrcApi).
// The server has no search: lyrics and cover endpoints answer the query
// parameters directly, so Search synthesizes exactly one candidate that
// echoes the query and existence checking happens at fetch time.
type LrcAPI struct {
	baseURL    string
	auth       string
	httpClient *http.Client
	log        *log.Logger
}

func NewLrcAPI(baseURL, auth string, logger *log.Logger) *LrcAPI {
	return &LrcAPI{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		auth:       auth,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.With("provider", "lrcapi"),
	}
}

func (l *LrcAPI) Search(_ context.Context, artist, title, album string) []Candidate {
	if title == "" {
		return nil
	}
	l.log.Info("searching", "artist", artist, "title", title)
	return []Candidate{{
		ID:       fmt.Sprintf("%s_%s_%s", artist, title, album),
		Name:     title,
		Artist:   artist,
		Album:    album,
		Platform: "lrcapi",
	}}
}

// Lyrics queries the /lyrics endpoint. The body must look like LRC text:
// contain a timestamp bracket and not be a JSON error envelope.
func (l *LrcAPI) Lyrics(ctx context.Context, c Candidate) (string, bool) {
	params := url.Values{}
	if c.Name != "" {
		params.Set("title", c.Name)
	}
	if c.Artist != "" {
		params.Set("artist", c.Artist)
	}
	reqURL := fmt.Sprintf("%s/lyrics?%s", l.baseURL, params.Encode())

	l.log.Info("fetching lyrics", "artist", c.Artist, "title", c.Name)
	body, _, ok := fetchURL(ctx, l.httpClient, reqURL, l.headers(), l.log)
	if !ok {
		return "", false
	}

	content := string(body)
	if content != "" && strings.Contains(content, "[") && !strings.HasPrefix(content, "{") {
		return content, true
	}
	l.log.Warn("invalid lyrics response", "title", c.Name)
	return "", false
}

// Cover queries the /cover endpoint. Sending title+album+artist targets
// the song cover; the server falls back to album or artist art when
// parameters are missing.
func (l *LrcAPI) Cover(ctx context.Context, c Candidate) ([]byte, bool) {
	params := url.Values{}
	if c.Name != "" {
		params.Set("title", c.Name)
	}
	if c.Album != "" {
		params.Set("album", c.Album)
	}
	if c.Artist != "" {
		params.Set("artist", c.Artist)
	}
	reqURL := fmt.Sprintf("%s/cover?%s", l.baseURL, params.Encode())

	l.log.Info("fetching cover", "artist", c.Artist, "title", c.Name)
	body, contentType, ok := fetchURL(ctx, l.httpClient, reqURL, l.headers(), l.log)
	if !ok {
		return nil, false
	}
	if strings.Contains(contentType, "image") || len(body) > minCoverBytes {
		return body, true
	}
	l.log.Warn("discarding non-image cover response", "title", c.Name)
	return nil, false
}

// BestMatch has no scoring: the lone synthesized candidate wins.
func (l *LrcAPI) BestMatch(candidates []Candidate, _, _ string) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	return candidates[0], true
}

func (l *LrcAPI) Close() {
	l.httpClient.CloseIdleConnections()
}

func (l *LrcAPI) headers() http.Header {
	if l.auth == "" {
		return nil
	}
	return http.Header{"Authorization": {l.auth}}
}
