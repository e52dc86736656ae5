package definition

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/wiktwords/internal/cache"
	mock_definition "github.com/at-ishikawa/wiktwords/internal/mocks/definition"
	"github.com/at-ishikawa/wiktwords/internal/progress"
	"github.com/at-ishikawa/wiktwords/internal/wordlist"
)

const (
	testBaseURL   = "https://en.wiktionary.org"
	testRawPrefix = "data/defs/"
)

type readOnlyStore struct {
	*cache.MemoryStore
}

func (readOnlyStore) Put(context.Context, string, []byte) error {
	return errors.New("read-only file system")
}

func TestFetcher_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		entry      wordlist.Entry
		cached     map[string]string
		download   bool
		setup      func(downloader *mock_definition.MockDownloader)
		wantStatus Status
		wantWord   DefinedWord
		wantStored map[string]string
	}{
		{
			name:       "invalid href",
			entry:      wordlist.Entry{Word: "bad", Href: "/bad"},
			download:   true,
			wantStatus: StatusInvalid,
		},
		{
			name:       "cache hit",
			entry:      wordlist.Entry{Word: "cat", Href: "/wiki/cat"},
			cached:     map[string]string{"data/defs/cat.html": "<p>cached</p>"},
			download:   true,
			wantStatus: StatusFound,
			wantWord:   DefinedWord{Path: "data/defs/cat.html", Word: "cat"},
			wantStored: map[string]string{"data/defs/cat.html": "<p>cached</p>"},
		},
		{
			name:       "cache hit with downloads disabled",
			entry:      wordlist.Entry{Word: "cat", Href: "/wiki/cat"},
			cached:     map[string]string{"data/defs/cat.html": "<p>cached</p>"},
			download:   false,
			wantStatus: StatusFound,
			wantWord:   DefinedWord{Path: "data/defs/cat.html", Word: "cat"},
		},
		{
			name:       "cache miss with downloads disabled",
			entry:      wordlist.Entry{Word: "cat", Href: "/wiki/cat"},
			download:   false,
			wantStatus: StatusNotDownloaded,
		},
		{
			name:     "cache miss and download",
			entry:    wordlist.Entry{Word: "rock/roll", Href: "/wiki/rock/roll"},
			download: true,
			setup: func(downloader *mock_definition.MockDownloader) {
				downloader.EXPECT().
					Download(gomock.Any(), "https://en.wiktionary.org/wiki/rock/roll").
					Return("<p>rock and roll</p>", nil)
			},
			wantStatus: StatusFound,
			wantWord:   DefinedWord{Path: "data/defs/rock-slash-roll.html", Word: "rock/roll"},
			wantStored: map[string]string{"data/defs/rock-slash-roll.html": "<p>rock and roll</p>"},
		},
		{
			name:     "cache miss and download error",
			entry:    wordlist.Entry{Word: "cat", Href: "/wiki/cat"},
			download: true,
			setup: func(downloader *mock_definition.MockDownloader) {
				downloader.EXPECT().
					Download(gomock.Any(), "https://en.wiktionary.org/wiki/cat").
					Return("", errors.New("connection refused"))
			},
			wantStatus: StatusFetchError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			downloader := mock_definition.NewMockDownloader(ctrl)
			if tt.setup != nil {
				tt.setup(downloader)
			}

			ctx := context.Background()
			store := cache.NewMemoryStore()
			for key, content := range tt.cached {
				require.NoError(t, store.Put(ctx, key, []byte(content)))
			}

			fetcher := NewFetcher(cache.New(store), downloader, progress.NewReporter(&bytes.Buffer{}, 10), Options{
				BaseURL:   testBaseURL,
				RawPrefix: testRawPrefix,
				Download:  tt.download,
			})
			got := fetcher.Resolve(ctx, tt.entry)

			assert.Equal(t, tt.entry, got.Entry)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantWord, got.Word)
			if tt.wantStatus == StatusFetchError {
				assert.Error(t, got.Err)
			} else {
				assert.NoError(t, got.Err)
			}

			assert.Equal(t, len(tt.cached)+len(tt.wantStored)-countOverlap(tt.cached, tt.wantStored), store.Len())
			for key, content := range tt.wantStored {
				stored, err := store.Get(ctx, key)
				require.NoError(t, err)
				assert.Equal(t, content, string(stored))
			}
		})
	}
}

func countOverlap(a, b map[string]string) int {
	count := 0
	for key := range a {
		if _, ok := b[key]; ok {
			count++
		}
	}
	return count
}

func TestFetcher_Resolve_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	downloader := mock_definition.NewMockDownloader(ctrl)
	downloader.EXPECT().Download(gomock.Any(), gomock.Any()).Return("<p>cat</p>", nil)

	fetcher := NewFetcher(
		cache.New(readOnlyStore{cache.NewMemoryStore()}),
		downloader,
		progress.NewReporter(&bytes.Buffer{}, 10),
		Options{BaseURL: testBaseURL, RawPrefix: testRawPrefix, Download: true},
	)
	got := fetcher.Resolve(context.Background(), wordlist.Entry{Word: "cat", Href: "/wiki/cat"})

	assert.Equal(t, StatusFetchError, got.Status)
	assert.Error(t, got.Err)
}

func TestFetcher_FetchAll(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = noColor
	})

	ctrl := gomock.NewController(t)
	downloader := mock_definition.NewMockDownloader(ctrl)
	gomock.InOrder(
		downloader.EXPECT().Download(gomock.Any(), "https://en.wiktionary.org/wiki/dog").Return("<p>dog</p>", nil),
		downloader.EXPECT().Download(gomock.Any(), "https://en.wiktionary.org/wiki/eel").Return("", errors.New("i/o timeout")),
		downloader.EXPECT().Download(gomock.Any(), "https://en.wiktionary.org/wiki/fox").Return("<p>fox</p>", nil),
	)

	ctx := context.Background()
	store := cache.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "data/defs/cat.html", []byte("<p>cat</p>")))

	var out bytes.Buffer
	fetcher := NewFetcher(cache.New(store), downloader, progress.NewReporter(&out, 2), Options{
		BaseURL:   testBaseURL,
		RawPrefix: testRawPrefix,
		Download:  true,
	})

	entries := []wordlist.Entry{
		{Word: "cat", Href: "/wiki/cat"},
		{Word: "bad", Href: "/bad"},
		{Word: "dog", Href: "/wiki/dog"},
		{Word: "eel", Href: "/wiki/eel"},
		{Word: "fox", Href: "/wiki/fox"},
	}
	got, summary := fetcher.FetchAll(ctx, entries)

	assert.Equal(t, []DefinedWord{
		{Path: "data/defs/cat.html", Word: "cat"},
		{Path: "data/defs/dog.html", Word: "dog"},
		{Path: "data/defs/fox.html", Word: "fox"},
	}, got)
	assert.Equal(t, Summary{StatusFound: 3, StatusInvalid: 1, StatusFetchError: 1}, summary)
	assert.Equal(t, 5, summary.Total())

	_, err := store.Get(ctx, "data/defs/eel.html")
	assert.ErrorIs(t, err, cache.ErrNotFound)

	// cat+bad and dog+fox complete two windows; eel is not counted
	output := out.String()
	assert.Contains(t, output, "[     0-     1]  50% invalid")
	assert.Contains(t, output, "[     2-     3]   0% invalid")
	assert.Equal(t, 2, strings.Count(output, "invalid\n"))
	assert.Contains(t, output, "(dog) https://en.wiktionary.org/wiki/dog")
	assert.NotContains(t, output, "https://en.wiktionary.org/wiki/cat")
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{status: StatusFound, want: "found"},
		{status: StatusInvalid, want: "invalid"},
		{status: StatusNotDownloaded, want: "not_downloaded"},
		{status: StatusFetchError, want: "fetch_error"},
		{status: Status(42), want: "Status(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}
