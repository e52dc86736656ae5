// Package wordlist reads the vocabulary from word-index pages and exports
// filtered word lists.
package wordlist

import "strings"

const (
	// WikiPrefix is the link prefix of an existing dictionary page.
	WikiPrefix = "/wiki/"

	slashEscape = "-slash-"
)

// Entry is a word and its link as found on a word-index page.
type Entry struct {
	Word string
	Href string
}

// IsValid reports whether the entry links to an existing definition.
func (e Entry) IsValid() bool {
	return strings.HasPrefix(e.Href, WikiPrefix)
}

// URL returns the absolute definition URL below baseURL.
// The second result is false for an invalid entry.
func (e Entry) URL(baseURL string) (string, bool) {
	if !e.IsValid() {
		return "", false
	}
	return baseURL + e.Href, true
}

// CachePath returns the key of the raw definition, e.g. data/defs/rock-slash-roll.html.
func (e Entry) CachePath(prefix string) string {
	return prefix + EscapeWord(e.Word) + ".html"
}

// EscapeWord replaces every "/" with "-slash-". Other characters are kept as is.
func EscapeWord(word string) string {
	return strings.ReplaceAll(word, "/", slashEscape)
}
