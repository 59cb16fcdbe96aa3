package cli

// This file contains the list command for displaying archived test
// summaries.

import (
	"fmt"
	"path/filepath"

	"github.com/testdash/testdash/history"
	"github.com/testdash/testdash/model"
	"github.com/urfave/cli/v2"
)

func (a *App) list(ctx *cli.Context) error {
	limit := ctx.Int("limit")
	resultsDir := filepath.Dir(resolveResultsFile(ctx))

	entries, err := history.LoadEntries(a.logger, resultsDir)
	if err != nil {
		return fmt.Errorf("failed to load summaries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No test summaries found")
		fmt.Printf("Summaries are read from %s\n", resultsDir)
		return nil
	}

	// Apply limit
	displayed := entries
	if limit > 0 && limit < len(displayed) {
		displayed = displayed[:limit]
	}

	fmt.Printf("\n=== Test Summaries (%d total) ===\n\n", len(entries))

	for _, entry := range displayed {
		s := entry.Summary

		// Determine status indicator
		status := "✓"
		if s.Status != model.StatusSuccess {
			status = "✗"
		}

		fmt.Printf("%s  %s  %d tests  pass_rate=%.2f%%\n", status, s.Timestamp, s.TotalTests, s.PassRate)
		fmt.Printf("   Passed: %d  Failed: %d  Ignored: %d\n", s.Passed, s.Failed, s.Ignored)
		fmt.Printf("   File: %s\n", filepath.Base(entry.FullPath))
	}

	return nil
}
