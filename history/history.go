package history

// This file contains shared utilities for loading archived test summaries
// from the results directory.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/testdash/testdash/model"
)

type Entry struct {
	Summary  model.Summary
	FullPath string
	ModTime  time.Time
}

// Time returns the best-effort time of the run: the summary's own timestamp
// when it parses as RFC 3339, otherwise the file's modification time.
func (e Entry) Time() time.Time {
	if ts, err := time.Parse(time.RFC3339, e.Summary.Timestamp); err == nil {
		return ts
	}
	return e.ModTime
}

// LoadEntries loads all summary files from the results directory, newest
// first. A missing directory is not an error; it yields no entries.
func LoadEntries(logger zerolog.Logger, resultsDir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(resultsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}

	var entries []Entry
	for _, d := range dirEntries {
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			continue
		}

		fullPath := filepath.Join(resultsDir, d.Name())
		summary, err := parseSummaryJSON(fullPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", fullPath).Msg("Failed to parse summary file")
			continue
		}

		info, err := d.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", fullPath, err)
		}

		entries = append(entries, Entry{
			Summary:  summary,
			FullPath: fullPath,
			ModTime:  info.ModTime(),
		})
	}

	// Sort by run time (newest first)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Time().After(entries[j].Time())
	})

	return entries, nil
}

// parseSummaryJSON parses a single summary file.
func parseSummaryJSON(path string) (model.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Summary{}, err
	}

	var summary model.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.Summary{}, err
	}

	return summary, nil
}
