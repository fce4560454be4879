package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"lyricflow/internal/config"
	"lyricflow/internal/pipeline"
	"lyricflow/internal/provider"
)

var version = "dev"

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	app := &cli.Command{
		Name:    "lyricflow",
		Usage:   "Fetch lyrics and cover art for a local music library",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			runCommand(logger),
			checkCommand(logger),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Fatal("application error", "err", err)
	}
}

func runCommand(logger *log.Logger) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Scan the library and process tracks, repeating on the configured interval",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "once",
				Usage: "Run a single pass regardless of the scan interval",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := setup(cmd, logger)
			if err != nil {
				return err
			}

			prov := provider.New(cfg, logger)
			defer prov.Close()

			runner := pipeline.New(cfg, prov, logger)
			if cmd.Bool("once") || cfg.Interval() == 0 {
				_, err := runner.Run(ctx)
				return err
			}
			err = runner.RunForever(ctx)
			if ctx.Err() != nil {
				logger.Info("shutting down")
				return nil
			}
			return err
		},
	}
}

func checkCommand(logger *log.Logger) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Probe the configured provider with a sample query",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "artist",
				Value: "Taylor Swift",
			},
			&cli.StringFlag{
				Name:  "title",
				Value: "Love Story",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := setup(cmd, logger)
			if err != nil {
				return err
			}

			prov := provider.New(cfg, logger)
			defer prov.Close()

			artist := cmd.String("artist")
			title := cmd.String("title")

			candidates := prov.Search(ctx, artist, title, "")
			logger.Info("search results", "count", len(candidates))
			best, ok := prov.BestMatch(candidates, artist, title)
			if !ok {
				return fmt.Errorf("no match for %q by %q", title, artist)
			}
			logger.Info("best match",
				"name", best.Name,
				"artist", best.Artist,
				"platform", best.Platform)

			if lyrics, ok := prov.Lyrics(ctx, best); ok {
				logger.Info("lyrics available", "bytes", len(lyrics))
			} else {
				logger.Warn("no lyrics for best match")
			}
			if cover, ok := prov.Cover(ctx, best); ok {
				logger.Info("cover available", "bytes", len(cover))
			} else {
				logger.Warn("no cover for best match")
			}
			return nil
		},
	}
}

// setup loads configuration and applies global flags shared by commands.
func setup(cmd *cli.Command, logger *log.Logger) (*config.Config, error) {
	if cmd.Bool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Debug("configuration loaded",
		"provider", cfg.APIProvider,
		"music_path", cfg.MusicPath)
	return cfg, nil
}
