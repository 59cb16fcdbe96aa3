package cli

// This file contains the show command for printing a single archived test
// summary in full.

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/testdash/testdash/history"
	"github.com/urfave/cli/v2"
)

func (a *App) show(ctx *cli.Context) error {
	idx, resultsDir, err := parseShowArgs(ctx.Args().Slice())
	if err != nil {
		return err
	}

	entries, err := history.LoadEntries(a.logger, resultsDir)
	if err != nil {
		return fmt.Errorf("failed to load summaries: %w", err)
	}

	// Index 0 is the latest entry, -1 the one before it
	pos := -idx
	if pos >= len(entries) {
		return fmt.Errorf("no summary at index %d (found %d in %s)", idx, len(entries), resultsDir)
	}

	printSummary(entries[pos])
	return nil
}

// parseShowArgs parses the show arguments by hand: the command skips flag
// parsing so that negative indices like -1 are not mistaken for flags.
// Accepted are an optional index (0 selects the latest summary, -1 the 2nd
// latest, and so on) and the --dir/--results options. Returns the index and
// the resolved results directory.
func parseShowArgs(args []string) (int, string, error) {
	idx := 0
	haveIdx := false
	dir := "."
	results := ""

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			continue
		case strings.HasPrefix(arg, "--dir="):
			dir = strings.TrimPrefix(arg, "--dir=")
		case arg == "--dir":
			if i+1 >= len(args) {
				return 0, "", fmt.Errorf("missing value for --dir")
			}
			i++
			dir = args[i]
		case strings.HasPrefix(arg, "--results="):
			results = strings.TrimPrefix(arg, "--results=")
		case arg == "--results":
			if i+1 >= len(args) {
				return 0, "", fmt.Errorf("missing value for --results")
			}
			i++
			results = args[i]
		default:
			if haveIdx {
				return 0, "", fmt.Errorf("unexpected argument %q", arg)
			}
			n, err := strconv.Atoi(arg)
			if err != nil {
				return 0, "", fmt.Errorf("invalid index %q: %w", arg, err)
			}
			if n > 0 {
				return 0, "", fmt.Errorf("index must be 0 or negative, got %d", n)
			}
			idx = n
			haveIdx = true
		}
	}

	if results == "" {
		results = filepath.Join(dir, "..", "test-results", "summary.json")
	}

	return idx, filepath.Dir(results), nil
}

func printSummary(entry history.Entry) {
	s := entry.Summary

	fmt.Printf("\n=== Test Summary (%s) ===\n\n", filepath.Base(entry.FullPath))
	fmt.Printf("Timestamp: %s\n", s.Timestamp)
	fmt.Printf("Status:    %s\n", s.Status)
	fmt.Printf("Tests:     %d total, %d passed, %d failed, %d ignored\n",
		s.TotalTests, s.Passed, s.Failed, s.Ignored)
	fmt.Printf("Pass rate: %.2f%%\n", s.PassRate)

	if len(s.TestSuites) > 0 {
		fmt.Println("\nSuites:")
		keys := make([]string, 0, len(s.TestSuites))
		for k := range s.TestSuites {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			suite := s.TestSuites[k]
			fmt.Printf("  %-16s %s (%d tests)\n", k, suite.Name, suite.Count)
		}
	}

	if len(s.Environment) > 0 {
		fmt.Println("\nEnvironment:")
		keys := make([]string, 0, len(s.Environment))
		for k := range s.Environment {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s: %v\n", k, s.Environment[k])
		}
	}
}
