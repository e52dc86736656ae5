// Package english reduces cached definition pages to their English section.
package english

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/wiktwords/internal/cache"
	"github.com/at-ishikawa/wiktwords/internal/definition"
)

const (
	// SectionID is the id of the English section of a definition page.
	SectionID = "English"
	// DefaultMaxDepth is how deep the English section is looked for.
	DefaultMaxDepth = 2
)

// ErrRawDefinitionMissing means a defined word has no cached raw definition.
var ErrRawDefinitionMissing = errors.New("raw definition is missing")

// EnglishWord is a word whose English section is stored at Path.
type EnglishWord struct {
	Path string
	Word string
}

// Options configure an Extractor.
type Options struct {
	RawPrefix     string
	EnglishPrefix string
	MaxDepth      int
}

// Extractor writes the English section of every defined word to the cache.
// Unlike fetching, any failure is fatal for the whole batch.
type Extractor struct {
	cache   *cache.Cache
	options Options
}

func NewExtractor(c *cache.Cache, options Options) *Extractor {
	if options.MaxDepth <= 0 {
		options.MaxDepth = DefaultMaxDepth
	}
	return &Extractor{
		cache:   c,
		options: options,
	}
}

// ExtractAll extracts the English section of each word in order and stops
// at the first error.
func (e *Extractor) ExtractAll(ctx context.Context, words []definition.DefinedWord) ([]EnglishWord, error) {
	englishWords := make([]EnglishWord, 0, len(words))
	for _, word := range words {
		englishWord, err := e.Extract(ctx, word)
		if err != nil {
			return nil, fmt.Errorf("e.Extract(%s) > %w", word.Word, err)
		}
		englishWords = append(englishWords, englishWord)
	}
	return englishWords, nil
}

// Extract returns the English word of a defined word, computing and caching
// its section unless it is already cached.
func (e *Extractor) Extract(ctx context.Context, word definition.DefinedWord) (EnglishWord, error) {
	path, err := e.englishPath(word.Path)
	if err != nil {
		return EnglishWord{}, err
	}

	if _, err := e.cache.ReadOrCreate(ctx, path, func() ([]byte, error) {
		section, err := e.extractSection(ctx, word.Path)
		if err != nil {
			return nil, err
		}
		return []byte(section), nil
	}); err != nil {
		return EnglishWord{}, fmt.Errorf("cache.ReadOrCreate > %w", err)
	}
	return EnglishWord{Path: path, Word: word.Word}, nil
}

func (e *Extractor) englishPath(rawPath string) (string, error) {
	if !strings.HasPrefix(rawPath, e.options.RawPrefix) {
		return "", fmt.Errorf("path %s is not under %s", rawPath, e.options.RawPrefix)
	}
	return e.options.EnglishPrefix + strings.TrimPrefix(rawPath, e.options.RawPrefix), nil
}

func (e *Extractor) extractSection(ctx context.Context, rawPath string) (string, error) {
	raw, err := e.cache.Store().Get(ctx, rawPath)
	if errors.Is(err, cache.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", rawPath, ErrRawDefinitionMissing)
	}
	if err != nil {
		return "", fmt.Errorf("store.Get > %w", err)
	}

	nodes, err := parseFragment(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parseFragment(%s) > %w", rawPath, err)
	}
	section := findByID(nodes, SectionID, e.options.MaxDepth)
	if section == nil {
		return "", nil
	}
	return render(section)
}
