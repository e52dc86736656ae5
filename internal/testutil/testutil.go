// Package testutil provides shared test helpers for creating config files and word-index fixtures.
package testutil

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wiktwords/internal/wordlist"
)

// SetupTestConfig creates a config file whose directories all live in tmpDir,
// with one word-index page holding the given entries. Downloads are disabled.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, entries ...wordlist.Entry) string {
	t.Helper()

	indexFile := CreateIndexPage(t, filepath.Join(tmpDir, "lists"), "001-010.html", entries...)

	configContent := fmt.Sprintf(`lists:
  index_files:
    - %s
  output_directory: %s
definitions:
  base_url: https://en.wiktionary.org
  raw_directory: data/defs
  english_directory: data/en
  download: false
  report_window: 10
cache:
  backend: file
  directory: %s
`,
		indexFile,
		filepath.Join(tmpDir, "txt"),
		tmpDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// CreateIndexPage writes a word-index page with one link per entry and returns its path.
func CreateIndexPage(t *testing.T, dir, name string, entries ...wordlist.Entry) string {
	t.Helper()

	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "<a href=\"%s\">%s</a>\n", html.EscapeString(entry.Href), html.EscapeString(entry.Word))
	}

	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

// CreateRawDefinition stores a raw definition page where the file cache
// rooted at cacheDir expects it.
func CreateRawDefinition(t *testing.T, cacheDir, word, content string) string {
	t.Helper()

	key := wordlist.Entry{Word: word}.CachePath("data/defs/")
	path := filepath.Join(cacheDir, filepath.FromSlash(key))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
