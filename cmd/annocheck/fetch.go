package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/annocheck/internal/logging"
	"github.com/fyrsmithlabs/annocheck/internal/validate"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <reference>",
	Short: "Fetch and print a publication",
	Long: `Fetch the title and abstract for a publication reference and warm the
on-disk cache.

Examples:
  annocheck fetch PMID:12345678
  annocheck fetch https://example.org/paper.html`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

var cacheCmd = &cobra.Command{
	Use:   "cache <file.yaml>",
	Short: "Pre-fetch every publication an annotation file references",
	Long: `Fetch every distinct publication referenced by an annotation file so that
a later validate run hits only the local cache.

Examples:
  annocheck cache annotations.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCache,
}

func runFetch(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer logging.Sync(d.logger)

	pub, err := d.fetcher.Fetch(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetch %s: %w", args[0], err)
	}

	fmt.Printf("Reference: %s\n", pub.Reference)
	if pub.Title != "" {
		fmt.Printf("Title: %s\n", pub.Title)
	}
	if pub.Abstract != "" {
		fmt.Printf("\nAbstract:\n%s\n", pub.Abstract)
	}
	return nil
}

func runCache(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer logging.Sync(d.logger)

	refs, err := validate.References(args[0])
	if err != nil {
		return err
	}

	failed := 0
	for _, ref := range refs {
		if _, err := d.fetcher.Fetch(cmd.Context(), ref); err != nil {
			fmt.Printf("Warning: Could not fetch content for %s\n", ref)
			failed++
			continue
		}
		fmt.Printf("Cached %s\n", ref)
	}

	fmt.Printf("\nCached %d of %d referenced publications\n", len(refs)-failed, len(refs))
	if failed > 0 {
		return fmt.Errorf("%d references could not be fetched", failed)
	}
	return nil
}
