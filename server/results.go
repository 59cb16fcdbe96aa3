package server

// This file contains the handlers for the test-results JSON routes.

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/testdash/testdash/history"
	"github.com/testdash/testdash/model"
)

// handleSummary serves the real results file byte-for-byte when it exists,
// and the constant mock payload otherwise. A missing file is the normal
// demo case, not an error.
func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	data, err := os.ReadFile(s.cfg.ResultsFile)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.cfg.ResultsFile).Msg("Failed to read results file, serving mock data")
		}
		data, err = json.MarshalIndent(model.Mock(), "", "  ")
		if err != nil {
			http.Error(w, "failed to encode summary", http.StatusInternalServerError)
			return
		}
		s.logger.Debug().Msg("Serving mock summary")
	} else {
		s.logger.Debug().Str("path", s.cfg.ResultsFile).Msg("Serving summary from disk")
	}

	writeJSON(w, data)
}

// handleHistory serves all archived summaries from the results directory
// as a JSON array, newest first. An absent directory yields an empty array.
func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	entries, err := history.LoadEntries(s.logger, filepath.Dir(s.cfg.ResultsFile))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load summary history")
		http.Error(w, "failed to load summary history", http.StatusInternalServerError)
		return
	}

	summaries := make([]model.Summary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, entry.Summary)
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		http.Error(w, "failed to encode summary history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, data)
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	// The dashboard may be opened from a file:// URL or another local port
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_, _ = w.Write(data)
}
