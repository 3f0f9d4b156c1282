// Command syncdatastardocs mirrors the data-star.dev reference into the
// repository as markdown, so the attribute and action docs used by the
// dashboard templates can be read offline.
//
// Usage:
//
//	go run ./scripts/syncdatastardocs [--out docs/datastar] [--split attributes,actions]
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"
)

type options struct {
	url     string
	out     string
	split   []string
	timeout time.Duration
	workers int
}

func main() {
	var opts options
	flags := pflag.NewFlagSet("syncdatastardocs", pflag.ExitOnError)
	flags.StringVar(&opts.url, "url", "https://data-star.dev/docs", "documentation page to scrape")
	flags.StringVar(&opts.out, "out", "docs/datastar", "output directory (replaced on every run)")
	flags.StringSliceVar(&opts.split, "split", []string{"attributes", "actions"}, "sections written as one file per entry")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "HTTP timeout")
	flags.IntVar(&opts.workers, "workers", 4, "concurrent file writers")
	_ = flags.Parse(os.Args[1:])

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("sync failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	logger.Info("fetching documentation", "url", opts.url)
	body, err := fetch(ctx, opts.url, opts.timeout)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	sections, err := parseSections(body)
	if err != nil {
		return err
	}
	logger.Info("parsed documentation", "sections", len(sections))

	pages := planPages(sections, toSet(opts.split), logger)
	if err := writePages(ctx, opts.out, pages, opts.workers); err != nil {
		return err
	}
	logger.Info("documentation synced", "pages", len(pages), "dir", opts.out)
	return nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[slugify(item)] = true
	}
	return set
}
