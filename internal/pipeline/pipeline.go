// Package pipeline drives the fetch and extraction stages over a word list.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/at-ishikawa/wiktwords/internal/cache"
	"github.com/at-ishikawa/wiktwords/internal/definition"
	"github.com/at-ishikawa/wiktwords/internal/english"
	"github.com/at-ishikawa/wiktwords/internal/progress"
	"github.com/at-ishikawa/wiktwords/internal/wordlist"
)

// Options configure both stages.
type Options struct {
	BaseURL       string
	RawPrefix     string
	EnglishPrefix string
	Download      bool
	WindowSize    int
	MaxDepth      int
}

// Report is the outcome of a run.
type Report struct {
	Fetch        definition.Summary
	DefinedWords []definition.DefinedWord
	EnglishWords []english.EnglishWord
}

// Runner owns the stages of one run. Fetch failures drop a single word,
// extraction failures abort the run.
type Runner struct {
	fetcher   *definition.Fetcher
	extractor *english.Extractor
}

func NewRunner(store cache.Store, downloader definition.Downloader, out io.Writer, options Options) *Runner {
	c := cache.New(store)
	reporter := progress.NewReporter(out, options.WindowSize)
	return &Runner{
		fetcher: definition.NewFetcher(c, downloader, reporter, definition.Options{
			BaseURL:   options.BaseURL,
			RawPrefix: options.RawPrefix,
			Download:  options.Download,
		}),
		extractor: english.NewExtractor(c, english.Options{
			RawPrefix:     options.RawPrefix,
			EnglishPrefix: options.EnglishPrefix,
			MaxDepth:      options.MaxDepth,
		}),
	}
}

// Fetch runs the fetch stage only.
func (r *Runner) Fetch(ctx context.Context, entries []wordlist.Entry) Report {
	definedWords, summary := r.fetcher.FetchAll(ctx, entries)
	slog.Default().Info("Fetched definitions",
		"words", summary.Total(),
		"found", summary[definition.StatusFound],
		"invalid", summary[definition.StatusInvalid],
		"not_downloaded", summary[definition.StatusNotDownloaded],
		"fetch_errors", summary[definition.StatusFetchError])
	return Report{
		Fetch:        summary,
		DefinedWords: definedWords,
	}
}

// Run fetches definitions and extracts their English sections.
func (r *Runner) Run(ctx context.Context, entries []wordlist.Entry) (Report, error) {
	report := r.Fetch(ctx, entries)

	englishWords, err := r.extractor.ExtractAll(ctx, report.DefinedWords)
	if err != nil {
		return report, fmt.Errorf("extractor.ExtractAll > %w", err)
	}
	slog.Default().Info("Extracted English definitions", "words", len(englishWords))
	report.EnglishWords = englishWords
	return report, nil
}
