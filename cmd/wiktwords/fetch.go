package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wiktwords/internal/cache"
	"github.com/at-ishikawa/wiktwords/internal/config"
	"github.com/at-ishikawa/wiktwords/internal/definition"
	"github.com/at-ishikawa/wiktwords/internal/pipeline"
	"github.com/at-ishikawa/wiktwords/internal/wordlist"
)

func newFetchCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "fetch",
		Short: "Cache the raw definition of every valid word",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, func(ctx context.Context, runner *pipeline.Runner, entries []wordlist.Entry) error {
				runner.Fetch(ctx, entries)
				return nil
			})
		},
	}
	command.Flags().Bool(downloadFlag, false, "Download definitions missing from the cache")
	return command
}

func newExtractCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "extract",
		Short: "Cache definitions and extract their English sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, func(ctx context.Context, runner *pipeline.Runner, entries []wordlist.Entry) error {
				if _, err := runner.Run(ctx, entries); err != nil {
					return fmt.Errorf("runner.Run > %w", err)
				}
				return nil
			})
		},
	}
	command.Flags().Bool(downloadFlag, false, "Download definitions missing from the cache")
	return command
}

func runPipeline(cmd *cobra.Command, run func(context.Context, *pipeline.Runner, []wordlist.Entry) error) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	entries, err := wordlist.ParseLists(cfg.Lists.IndexFiles)
	if err != nil {
		return fmt.Errorf("wordlist.ParseLists > %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg.Cache, cfg.Database)
	if err != nil {
		return fmt.Errorf("openStore > %w", err)
	}
	defer func() {
		_ = closeStore()
	}()

	downloader := newDownloader(cfg.Definitions)
	defer func() {
		_ = downloader.Close()
	}()

	runner := newRunner(store, downloader, cmd.OutOrStdout(), cfg.Definitions)
	return run(ctx, runner, entries)
}

func newDownloader(cfg config.DefinitionsConfig) *definition.HTTPDownloader {
	return definition.NewHTTPDownloader(cfg.UserAgent, time.Duration(cfg.TimeoutSeconds)*time.Second)
}

func newRunner(store cache.Store, downloader definition.Downloader, out io.Writer, cfg config.DefinitionsConfig) *pipeline.Runner {
	return pipeline.NewRunner(store, downloader, out, pipeline.Options{
		BaseURL:       cfg.BaseURL,
		RawPrefix:     cfg.RawPrefix(),
		EnglishPrefix: cfg.EnglishPrefix(),
		Download:      cfg.Download,
		WindowSize:    cfg.ReportWindow,
		MaxDepth:      cfg.EnglishMaxDepth,
	})
}
