package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// TuneHub is the aggregator provider: one keyword search fans out to
// multiple upstream platforms, and lyrics/cover are fetched through the
// URLs embedded in each result.
type TuneHub struct {
	baseURL    string
	platforms  []string
	httpClient *http.Client
	log        *log.Logger
}

func NewTuneHub(baseURL string, platforms []string, logger *log.Logger) *TuneHub {
	return &TuneHub{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		platforms:  platforms,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.With("provider", "tunehub"),
	}
}

// searchEnvelope is the aggregate-search response wrapper. A code other
// than 200 means no usable results regardless of the HTTP status.
type searchEnvelope struct {
	Code int `json:"code"`
	Data struct {
		Results []searchResult `json:"results"`
	} `json:"data"`
}

type searchResult struct {
	ID       flexString `json:"id"`
	Name     string     `json:"name"`
	Artist   string     `json:"artist"`
	Album    string     `json:"album"`
	Platform string     `json:"platform"`
	Lrc      string     `json:"lrc"`
	Pic      string     `json:"pic"`
}

// flexString tolerates ids that arrive as JSON numbers on some platforms.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = flexString(b)
	return nil
}

// Search issues one aggregate search combining artist and title as the
// keyword. Failures of any kind yield zero candidates.
func (t *TuneHub) Search(ctx context.Context, artist, title, _ string) []Candidate {
	keyword := strings.TrimSpace(artist + " " + title)
	if keyword == "" {
		return nil
	}

	params := url.Values{}
	params.Set("type", "aggregateSearch")
	params.Set("keyword", keyword)
	reqURL := fmt.Sprintf("%s/api/?%s", t.baseURL, params.Encode())

	t.log.Info("searching", "keyword", keyword)
	body, _, ok := fetchURL(ctx, t.httpClient, reqURL, nil, t.log)
	if !ok {
		return nil
	}

	var envelope searchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.log.Error("decode search response failed", "keyword", keyword, "err", err)
		return nil
	}
	if envelope.Code != http.StatusOK {
		t.log.Warn("api returned non-200 code", "code", envelope.Code)
		return nil
	}

	candidates := make([]Candidate, 0, len(envelope.Data.Results))
	for _, r := range envelope.Data.Results {
		candidates = append(candidates, Candidate{
			ID:        string(r.ID),
			Name:      r.Name,
			Artist:    r.Artist,
			Album:     r.Album,
			Platform:  r.Platform,
			LyricsURL: r.Lrc,
			CoverURL:  r.Pic,
		})
	}
	return candidates
}

// Lyrics fetches the LRC text behind a candidate's lyrics URL. A body
// that looks like a JSON envelope is an upstream error, not lyrics.
func (t *TuneHub) Lyrics(ctx context.Context, c Candidate) (string, bool) {
	if c.LyricsURL == "" {
		return "", false
	}
	t.log.Info("fetching lyrics", "platform", c.Platform, "name", c.Name)

	body, _, ok := fetchURL(ctx, t.httpClient, c.LyricsURL, nil, t.log)
	if !ok {
		return "", false
	}
	content := string(body)
	if content == "" || strings.HasPrefix(content, "{") {
		return "", false
	}
	return content, true
}

// Cover fetches raw image bytes behind a candidate's cover URL. The body
// is accepted only when the content type mentions an image or the
// payload is too large to be a tiny error page.
func (t *TuneHub) Cover(ctx context.Context, c Candidate) ([]byte, bool) {
	if c.CoverURL == "" {
		return nil, false
	}
	t.log.Info("fetching cover", "platform", c.Platform, "name", c.Name)

	body, contentType, ok := fetchURL(ctx, t.httpClient, c.CoverURL, nil, t.log)
	if !ok {
		return nil, false
	}
	if strings.Contains(contentType, "image") || len(body) > minCoverBytes {
		return body, true
	}
	t.log.Warn("discarding non-image cover response", "name", c.Name)
	return nil, false
}

// BestMatch scores candidates against the query and returns the winner,
// or false when nothing clears the minimum score.
func (t *TuneHub) BestMatch(candidates []Candidate, artist, title string) (Candidate, bool) {
	best, ok := bestMatch(candidates, artist, title, t.platforms)
	if !ok {
		t.log.Warn("no good match", "artist", artist, "title", title)
	}
	return best, ok
}

func (t *TuneHub) Close() {
	t.httpClient.CloseIdleConnections()
}
