package provider

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestTuneHubSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("keyword")
		if r.URL.Query().Get("type") != "aggregateSearch" {
			t.Errorf("type = %q, want aggregateSearch", r.URL.Query().Get("type"))
		}
		io.WriteString(w, `{
			"code": 200,
			"data": {
				"results": [
					{"id": "123", "name": "Love Story", "artist": "Taylor Swift",
					 "album": "Fearless", "platform": "netease",
					 "lrc": "http://x/lrc", "pic": "http://x/pic"},
					{"id": 456, "name": "Love Story (Live)", "artist": "Taylor Swift",
					 "album": "Live", "platform": "qq", "lrc": "", "pic": ""}
				]
			}
		}`)
	}))
	defer srv.Close()

	th := NewTuneHub(srv.URL, []string{"netease", "qq"}, testLogger())
	candidates := th.Search(context.Background(), "Taylor Swift", "Love Story", "")

	if gotQuery != "Taylor Swift Love Story" {
		t.Errorf("keyword = %q, want combined artist and title", gotQuery)
	}
	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}
	if candidates[0].ID != "123" {
		t.Errorf("candidates[0].ID = %q, want 123", candidates[0].ID)
	}
	if candidates[1].ID != "456" {
		t.Errorf("candidates[1].ID = %q, want numeric id coerced to string", candidates[1].ID)
	}
	if candidates[0].LyricsURL != "http://x/lrc" {
		t.Errorf("LyricsURL = %q", candidates[0].LyricsURL)
	}
}

func TestTuneHubSearchNon200Code(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"code": 500, "data": {"results": []}}`)
	}))
	defer srv.Close()

	th := NewTuneHub(srv.URL, nil, testLogger())
	if got := th.Search(context.Background(), "a", "t", ""); got != nil {
		t.Errorf("Search() = %v, want nil on envelope error code", got)
	}
}

func TestTuneHubSearchEmptyKeyword(t *testing.T) {
	th := NewTuneHub("http://unused.invalid", nil, testLogger())
	if got := th.Search(context.Background(), "", "", ""); got != nil {
		t.Errorf("Search() = %v, want nil without a keyword", got)
	}
}

func TestTuneHubSearchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	th := NewTuneHub(srv.URL, nil, testLogger())
	if got := th.Search(context.Background(), "a", "t", ""); got != nil {
		t.Errorf("Search() = %v, want nil on decode failure", got)
	}
}

func TestTuneHubLyrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good":
			io.WriteString(w, "[00:01.00]A line\n[00:02.00]Another")
		case "/jsonerr":
			io.WriteString(w, `{"code": 404, "msg": "not found"}`)
		case "/empty":
		}
	}))
	defer srv.Close()

	th := NewTuneHub(srv.URL, nil, testLogger())
	ctx := context.Background()

	if lyrics, ok := th.Lyrics(ctx, Candidate{LyricsURL: srv.URL + "/good"}); !ok || lyrics == "" {
		t.Errorf("Lyrics(good) = (%q, %v), want LRC text", lyrics, ok)
	}
	if _, ok := th.Lyrics(ctx, Candidate{LyricsURL: srv.URL + "/jsonerr"}); ok {
		t.Error("Lyrics(jsonerr) = true, want false for JSON envelope body")
	}
	if _, ok := th.Lyrics(ctx, Candidate{LyricsURL: srv.URL + "/empty"}); ok {
		t.Error("Lyrics(empty) = true, want false")
	}
	if _, ok := th.Lyrics(ctx, Candidate{}); ok {
		t.Error("Lyrics without URL = true, want false")
	}
}

func TestTuneHubCover(t *testing.T) {
	big := make([]byte, 2000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/typed":
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte{0xff, 0xd8, 0xff})
		case "/untyped-big":
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Write(big)
		case "/small-err":
			w.Header().Set("Content-Type", "text/html")
			io.WriteString(w, "<html>error</html>")
		}
	}))
	defer srv.Close()

	th := NewTuneHub(srv.URL, nil, testLogger())
	ctx := context.Background()

	if _, ok := th.Cover(ctx, Candidate{CoverURL: srv.URL + "/typed"}); !ok {
		t.Error("Cover(typed) = false, want true for image content type")
	}
	if data, ok := th.Cover(ctx, Candidate{CoverURL: srv.URL + "/untyped-big"}); !ok || len(data) != len(big) {
		t.Error("Cover(untyped-big) should pass the size heuristic")
	}
	if _, ok := th.Cover(ctx, Candidate{CoverURL: srv.URL + "/small-err"}); ok {
		t.Error("Cover(small-err) = true, want false for a small error page")
	}
	if _, ok := th.Cover(ctx, Candidate{}); ok {
		t.Error("Cover without URL = true, want false")
	}
}

func TestTuneHubServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	th := NewTuneHub(srv.URL, nil, testLogger())
	if got := th.Search(context.Background(), "a", "t", ""); got != nil {
		t.Errorf("Search() = %v, want nil on HTTP error", got)
	}
}
