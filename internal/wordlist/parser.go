package wordlist

import (
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParseLists parses word-index pages in order and concatenates their entries.
func ParseLists(paths []string) ([]Entry, error) {
	var entries []Entry
	for _, path := range paths {
		listEntries, err := parseList(path)
		if err != nil {
			return nil, fmt.Errorf("parseList(%s) > %w", path, err)
		}
		entries = append(entries, listEntries...)
	}
	return entries, nil
}

func parseList(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader > %w", err)
	}

	var entries []Entry
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		// only plain links: <a href="...">word</a>
		children := link.Contents()
		if children.Length() != 1 || children.Get(0).Type != html.TextNode {
			return
		}
		href, _ := link.Attr("href")
		entries = append(entries, Entry{
			Word: children.Get(0).Data,
			Href: href,
		})
	})
	return entries, nil
}
