package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"hn-scraper/internal/app"
	"hn-scraper/internal/config"
	"hn-scraper/internal/fetcher"
	"hn-scraper/internal/observability"
	"hn-scraper/internal/render"
	"hn-scraper/internal/scraper"
)

type rootFlags struct {
	configPath    string
	selectorsPath string
	url           string
	lenient       bool
	debug         bool
	noColor       bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "hn-scraper",
		Short:         "Scrape the Hacker News front page",
		Long:          "Fetch the Hacker News front page, extract ranked stories, and print them to stdout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config YAML (built-in defaults when omitted)")
	cmd.PersistentFlags().StringVar(&flags.selectorsPath, "selectors", "", "path to selectors YAML (built-in set when omitted)")
	cmd.PersistentFlags().StringVar(&flags.url, "url", "", "page URL (overrides config base_url)")
	cmd.PersistentFlags().BoolVar(&flags.lenient, "lenient", false, "skip entries with missing fields instead of aborting")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored table output")

	cmd.AddCommand(newStoriesCommand(flags))
	cmd.AddCommand(newTableCommand(flags))
	cmd.AddCommand(newLinksCommand(flags))

	return cmd
}

func newStoriesCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stories",
		Short: "Print rank, title, and URL per story as line blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(flags, scraper.StorySelectors(), render.NewLineRenderer(), false)
		},
	}
}

func newTableCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print stories as a two-row-per-story table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(flags, scraper.AnchorSelectors(), render.NewTableRenderer(), false)
		},
	}
}

func newLinksCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "Print every link target on the page, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(flags, scraper.StorySelectors(), nil, true)
		},
	}
}

func runPipeline(flags *rootFlags, selectors *scraper.Selectors, renderer render.Renderer, linksOnly bool) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return err
	}

	logger, err := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return err
	}
	defer func() { _ = logger.Sync() }()

	if flags.selectorsPath != "" {
		selectors, err = config.LoadSelectors(flags.selectorsPath)
		if err != nil {
			logger.Error("failed to load selectors", "path", flags.selectorsPath, "error", err.Error())
			return err
		}
	}

	if flags.noColor {
		text.DisableColors()
	}

	var pageFetcher app.PageFetcher
	if cfg.Rod.Enabled {
		pageFetcher = fetcher.NewRenderedFetcher(cfg, logger)
	} else {
		pageFetcher = fetcher.NewFetcher(cfg, logger)
	}

	scr := scraper.NewScraper(selectors, cfg.Extract.Lenient, logger)
	pipeline := app.NewPipeline(cfg, logger, pageFetcher, scr, renderer, os.Stdout)

	ctx, cancel := app.SignalContext(context.Background(), logger)
	defer cancel()

	if linksOnly {
		_, err = pipeline.RunLinks(ctx, cfg.BaseURL)
	} else {
		_, err = pipeline.Run(ctx, cfg.BaseURL)
	}
	return err
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flags.configPath != "" {
		loaded, err := config.LoadConfig(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.url != "" {
		cfg.BaseURL = flags.url
	}
	if flags.lenient {
		cfg.Extract.Lenient = true
	}
	if flags.debug {
		cfg.Observability.LogLevel = "debug"
	}

	return cfg, cfg.Validate()
}
