package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wiktwords/internal/wordlist"
)

func newListsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Export filtered word lists from the word-index pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			entries, err := wordlist.ParseLists(cfg.Lists.IndexFiles)
			if err != nil {
				return fmt.Errorf("wordlist.ParseLists > %w", err)
			}
			if err := wordlist.GenerateLists(cfg.Lists.OutputDirectory, entries); err != nil {
				return fmt.Errorf("wordlist.GenerateLists > %w", err)
			}
			slog.Default().Info("Generated word lists",
				"words", len(entries),
				"lists", len(wordlist.Filters),
				"directory", cfg.Lists.OutputDirectory)
			return nil
		},
	}
}
