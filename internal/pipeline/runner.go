// Package pipeline drives a library run: scan tracks, resolve them
// against the remote provider, then write sidecar files and embed tags.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"lyricflow/internal/config"
	"lyricflow/internal/provider"
	"lyricflow/internal/scanner"
	"lyricflow/internal/sidecar"
	"lyricflow/internal/tags"
)

// requestInterval paces remote calls so a full-library run doesn't
// hammer the provider.
const requestInterval = 200 * time.Millisecond

// Stats summarizes one library run.
type Stats struct {
	Scanned int // tracks seen
	Saved   int // sidecar files written
	Updated int // in-file tag writes
	Skipped int // tracks needing nothing
	Failed  int // tracks with no usable match
}

type Runner struct {
	cfg     *config.Config
	scanner *scanner.Scanner
	prov    provider.Provider
	sidecar *sidecar.Handler
	embed   *tags.Handler
	log     *log.Logger
	limiter *rate.Limiter
}

// New wires a runner around the given provider. The caller owns the
// provider and closes it after the last run.
func New(cfg *config.Config, prov provider.Provider, logger *log.Logger) *Runner {
	return &Runner{
		cfg:     cfg,
		scanner: scanner.New(cfg, logger),
		prov:    prov,
		sidecar: sidecar.NewHandler(cfg, logger),
		embed:   tags.NewHandler(logger),
		log:     logger.With("component", "pipeline"),
		limiter: rate.NewLimiter(rate.Every(requestInterval), 1),
	}
}

// Run performs one pass over the library. Per-track failures are logged
// and counted, never fatal; only a missing library root is an error.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	if _, err := os.Stat(r.cfg.MusicPath); err != nil {
		return stats, fmt.Errorf("music path %q: %w", r.cfg.MusicPath, err)
	}

	r.log.Info("starting library run", "path", r.cfg.MusicPath)

	// cover.jpg is shared per directory, so write it at most once per run.
	coverDirs := make(map[string]bool)

	for track := range r.scanner.Scan("") {
		if ctx.Err() != nil {
			break
		}
		stats.Scanned++
		r.processTrack(ctx, track, &stats, coverDirs)
	}

	r.log.Info("run complete",
		"scanned", stats.Scanned,
		"saved", stats.Saved,
		"updated", stats.Updated,
		"skipped", stats.Skipped,
		"failed", stats.Failed)
	return stats, nil
}

func (r *Runner) processTrack(ctx context.Context, track scanner.Track, stats *Stats, coverDirs map[string]bool) {
	needLyricsFile, needCoverFile := r.sidecar.NeedsProcessing(track)
	if needCoverFile && coverDirs[track.Dir()] {
		needCoverFile = false
	}

	embedLyrics := r.cfg.UpdateLyrics &&
		(r.cfg.ForceUpdateLyrics || !r.embed.HasEmbeddedLyrics(track.Path))
	embedCover := r.cfg.UpdateCover &&
		(r.cfg.ForceUpdateCover || !r.embed.HasEmbeddedCover(track.Path))
	embedBasic := r.cfg.UpdateBasicInfo &&
		(r.cfg.ForceUpdateBasicInfo || !r.embed.HasBasicInfo(track.Path))

	// Stream pointers are plain text and cannot hold tags.
	if track.IsStream() && (embedLyrics || embedCover || embedBasic) {
		r.log.Debug("stream pointer, skipping tag updates", "path", track.Path)
		embedLyrics, embedCover, embedBasic = false, false, false
	}

	if !needLyricsFile && !needCoverFile && !embedLyrics && !embedCover && !embedBasic {
		r.log.Debug("nothing to do", "path", track.Path)
		stats.Skipped++
		return
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return
	}

	candidates := r.prov.Search(ctx, track.Artist, track.Title, track.Album)
	best, ok := r.prov.BestMatch(candidates, track.Artist, track.Title)
	if !ok {
		r.log.Warn("no match found", "artist", track.Artist, "title", track.Title)
		stats.Failed++
		return
	}
	r.log.Info("matched",
		"artist", track.Artist,
		"title", track.Title,
		"platform", best.Platform,
		"match", best.Name)

	if embedBasic {
		if r.embed.UpdateBasicInfo(track.Path, best.Artist, best.Name, best.Album) {
			stats.Updated++
		}
	}

	if needLyricsFile || embedLyrics {
		if lyrics, ok := r.prov.Lyrics(ctx, best); ok {
			if needLyricsFile && r.sidecar.SaveLyrics(track, lyrics) {
				stats.Saved++
			}
			if embedLyrics && r.embed.EmbedLyrics(track.Path, lyrics) {
				stats.Updated++
			}
		}
	}

	if needCoverFile || embedCover {
		if data, ok := r.prov.Cover(ctx, best); ok {
			if needCoverFile && r.sidecar.SaveCover(track, data) {
				stats.Saved++
				coverDirs[track.Dir()] = true
			}
			if embedCover && r.embed.EmbedCover(track.Path, data) {
				stats.Updated++
			}
		}
	}
}

// RunForever runs once, then repeats on the configured interval until
// the context is canceled. A zero interval means a single run.
func (r *Runner) RunForever(ctx context.Context) error {
	if _, err := r.Run(ctx); err != nil {
		return err
	}

	interval := r.cfg.Interval()
	if interval == 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		r.log.Info("next run scheduled", "in", interval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.Run(ctx); err != nil {
				return err
			}
		}
	}
}
