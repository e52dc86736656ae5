package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLists(t *testing.T) {
	entries := []Entry{
		{Word: "cat", Href: "/wiki/cat"},
		{Word: "of", Href: "/wiki/of"},
		{Word: "Dog", Href: "/wiki/Dog"},
		{Word: "xyzzy", Href: "/w/index.php?title=xyzzy"},
		{Word: "a/b", Href: "/bad"},
	}
	dir := filepath.Join(t.TempDir(), "txt")

	require.NoError(t, GenerateLists(dir, entries))

	want := map[string]string{
		"all":                    "cat\nof\nDog\nxyzzy\na/b\n",
		"alpha_lower":            "cat\nof\nxyzzy\n",
		"min3":                   "cat\nDog\nxyzzy\na/b\n",
		"valid":                  "cat\nof\nDog\n",
		"alpha_lower_min3":       "cat\nxyzzy\n",
		"alpha_lower_valid":      "cat\nof\n",
		"min3_valid":             "cat\nDog\n",
		"alpha_lower_min3_valid": "cat\n",
	}
	for name, content := range want {
		t.Run(name, func(t *testing.T) {
			got, err := os.ReadFile(filepath.Join(dir, name+".txt"))
			require.NoError(t, err)
			assert.Equal(t, content, string(got))
		})
	}
	assert.Len(t, Filters, len(want))
}

func TestGenerateLists_Truncates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "all.txt"), []byte("stale\nwords\nhere\n"), 0644))

	require.NoError(t, GenerateLists(dir, []Entry{{Word: "cat", Href: "/wiki/cat"}}))

	got, err := os.ReadFile(filepath.Join(dir, "all.txt"))
	require.NoError(t, err)
	assert.Equal(t, "cat\n", string(got))
}

func TestIsAlphaLower(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{word: "cat", want: true},
		{word: "Cat", want: false},
		{word: "café", want: false},
		{word: "don't", want: false},
		{word: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, isAlphaLower(tt.word))
		})
	}
}
