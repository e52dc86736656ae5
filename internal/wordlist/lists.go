package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Filter selects the entries written to one list.
type Filter struct {
	Name  string
	Match func(Entry) bool
}

// Filters are the exported lists, each written to <name>.txt.
var Filters = []Filter{
	{Name: "all", Match: func(Entry) bool { return true }},
	{Name: "alpha_lower", Match: func(e Entry) bool { return isAlphaLower(e.Word) }},
	{Name: "min3", Match: func(e Entry) bool { return hasMinLength(e.Word) }},
	{Name: "valid", Match: Entry.IsValid},
	{Name: "alpha_lower_min3", Match: func(e Entry) bool { return hasMinLength(e.Word) && isAlphaLower(e.Word) }},
	{Name: "alpha_lower_valid", Match: func(e Entry) bool { return isAlphaLower(e.Word) && e.IsValid() }},
	{Name: "min3_valid", Match: func(e Entry) bool { return hasMinLength(e.Word) && e.IsValid() }},
	{Name: "alpha_lower_min3_valid", Match: func(e Entry) bool {
		return hasMinLength(e.Word) && isAlphaLower(e.Word) && e.IsValid()
	}},
}

const minLength = 3

// GenerateLists writes every list of Filters into dir, replacing existing files.
func GenerateLists(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll > %w", err)
	}
	for _, filter := range Filters {
		path := filepath.Join(dir, filter.Name+".txt")
		if err := generateList(path, entries, filter.Match); err != nil {
			return fmt.Errorf("generateList(%s) > %w", path, err)
		}
	}
	return nil
}

func generateList(path string, entries []Entry, match func(Entry) bool) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	writer := bufio.NewWriter(file)
	for _, entry := range entries {
		if !match(entry) {
			continue
		}
		if _, err := fmt.Fprintln(writer, entry.Word); err != nil {
			return fmt.Errorf("fmt.Fprintln > %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("writer.Flush > %w", err)
	}
	return file.Close()
}

// isAlphaLower reports whether the word only has ASCII lowercase letters.
func isAlphaLower(word string) bool {
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// hasMinLength counts bytes, not runes.
func hasMinLength(word string) bool {
	return len(word) >= minLength
}
