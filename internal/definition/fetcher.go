// Package definition resolves words to cached raw definition pages,
// downloading the missing ones when allowed.
package definition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/wiktwords/internal/cache"
	"github.com/at-ishikawa/wiktwords/internal/progress"
	"github.com/at-ishikawa/wiktwords/internal/wordlist"
)

// Status is the classification of one word by the fetch stage.
type Status int

const (
	// StatusFound means the raw definition is cached.
	StatusFound Status = iota
	// StatusInvalid means the word does not link to a definition page.
	StatusInvalid
	// StatusNotDownloaded means the definition is not cached and downloads are disabled.
	StatusNotDownloaded
	// StatusFetchError means the download or the cache write failed. The word
	// is retried by the next run.
	StatusFetchError
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusInvalid:
		return "invalid"
	case StatusNotDownloaded:
		return "not_downloaded"
	case StatusFetchError:
		return "fetch_error"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// resolved reports whether the status counts toward the progress windows.
func (s Status) resolved() bool {
	return s != StatusFetchError
}

// DefinedWord is a word whose raw definition is stored at Path.
type DefinedWord struct {
	Path string
	Word string
}

// Result is the outcome for one entry. Word is set for StatusFound only and
// Err for StatusFetchError only.
type Result struct {
	Entry  wordlist.Entry
	Status Status
	Word   DefinedWord
	Err    error
}

// Summary counts results per status.
type Summary map[Status]int

// Total returns the number of processed entries.
func (s Summary) Total() int {
	total := 0
	for _, count := range s {
		total += count
	}
	return total
}

// Options configure a Fetcher.
type Options struct {
	// BaseURL is prepended to an entry's href.
	BaseURL string
	// RawPrefix is the cache key prefix of raw definitions, e.g. "data/defs/".
	RawPrefix string
	// Download enables network fetches on cache misses.
	Download bool
}

var errNotDownloaded = errors.New("definition is not downloaded")

// Fetcher runs the per-word fetch state machine.
type Fetcher struct {
	cache      *cache.Cache
	downloader Downloader
	reporter   *progress.Reporter
	options    Options
}

func NewFetcher(c *cache.Cache, downloader Downloader, reporter *progress.Reporter, options Options) *Fetcher {
	return &Fetcher{
		cache:      c,
		downloader: downloader,
		reporter:   reporter,
		options:    options,
	}
}

// Resolve classifies a single entry, downloading and caching its definition if needed.
func (f *Fetcher) Resolve(ctx context.Context, entry wordlist.Entry) Result {
	result := Result{Entry: entry}

	url, ok := entry.URL(f.options.BaseURL)
	if !ok {
		result.Status = StatusInvalid
		return result
	}

	path := entry.CachePath(f.options.RawPrefix)
	_, err := f.cache.ReadOrCreate(ctx, path, func() ([]byte, error) {
		if !f.options.Download {
			return nil, errNotDownloaded
		}
		f.reporter.Fetching(url)
		body, err := f.downloader.Download(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("downloader.Download > %w", err)
		}
		return []byte(body), nil
	})
	switch {
	case err == nil:
		result.Status = StatusFound
		result.Word = DefinedWord{Path: path, Word: entry.Word}
	case errors.Is(err, errNotDownloaded):
		result.Status = StatusNotDownloaded
	default:
		result.Status = StatusFetchError
		result.Err = err
	}
	return result
}

// FetchAll resolves the entries in order and returns the defined words in
// input order. Fetch errors drop the word and never abort the run.
func (f *Fetcher) FetchAll(ctx context.Context, entries []wordlist.Entry) ([]DefinedWord, Summary) {
	definedWords := make([]DefinedWord, 0, len(entries)*2/3)
	summary := make(Summary)
	for _, entry := range entries {
		f.reporter.Begin(entry.Word)
		result := f.Resolve(ctx, entry)
		f.reporter.End()

		summary[result.Status]++
		switch result.Status {
		case StatusFound:
			definedWords = append(definedWords, result.Word)
		case StatusFetchError:
			slog.Default().Debug("Failed to fetch a definition",
				"word", entry.Word,
				"href", entry.Href,
				"error", result.Err)
		}
		if result.Status.resolved() {
			f.reporter.Resolve(result.Status == StatusInvalid)
		}
	}
	return definedWords, summary
}
