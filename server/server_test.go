package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testdash/testdash/model"
)

// newTestServer builds a server over a temp dashboard directory containing
// index.html and a sibling test-results directory, mirroring the layout the
// CI pipeline produces.
func newTestServer(t *testing.T, indexHTML string) (*Server, string) {
	t.Helper()

	root := t.TempDir()
	dashboardDir := filepath.Join(root, "dashboard")
	require.NoError(t, os.Mkdir(dashboardDir, 0o755))

	if indexHTML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dashboardDir, "index.html"), []byte(indexHTML), 0o644))
	}

	srv := New(zerolog.Nop(), Config{
		Port:        8080,
		Dir:         dashboardDir,
		ResultsFile: filepath.Join(root, "test-results", "summary.json"),
	})
	return srv, root
}

func get(t *testing.T, h http.Handler, path string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Result()
}

func body(t *testing.T, resp *http.Response) []byte {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return data
}

func TestRootServesIndex(t *testing.T) {
	srv, _ := newTestServer(t, "<html><body>dashboard</body></html>")
	h := srv.Handler()

	rootResp := get(t, h, "/")
	assert.Equal(t, http.StatusOK, rootResp.StatusCode)
	assert.Contains(t, rootResp.Header.Get("Content-Type"), "text/html")

	directResp := get(t, h, "/index.html")
	assert.Equal(t, http.StatusOK, directResp.StatusCode)

	assert.Equal(t, body(t, directResp), body(t, rootResp))
}

func TestRootWithoutIndexIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t, "")

	resp := get(t, srv.Handler(), "/")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSummaryServedFromDisk(t *testing.T) {
	srv, root := newTestServer(t, "")

	// Deliberately odd formatting: the file must pass through untouched
	raw := []byte("{\"status\":   \"failure\",\n\t\"total_tests\": 3}\n")
	resultsDir := filepath.Join(root, "test-results")
	require.NoError(t, os.Mkdir(resultsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(resultsDir, "summary.json"), raw, 0o644))

	resp := get(t, srv.Handler(), "/test-results/summary.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, raw, body(t, resp))
}

func TestSummaryMockFallback(t *testing.T) {
	srv, _ := newTestServer(t, "")

	resp := get(t, srv.Handler(), "/test-results/summary.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	data := body(t, resp)

	// Pretty-printed with a 2-space indent
	assert.Contains(t, string(data), "\n  \"timestamp\"")

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &got))
	for _, key := range []string{
		"timestamp", "status", "total_tests", "passed", "failed",
		"ignored", "pass_rate", "test_suites", "environment",
	} {
		assert.Contains(t, got, key)
	}

	var summary model.Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, summary.TotalTests, summary.Passed+summary.Failed+summary.Ignored)
	assert.Equal(t, 437, summary.Passed)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 0, summary.Ignored)
}

func TestHistoryListsArchivedSummaries(t *testing.T) {
	srv, root := newTestServer(t, "")

	resultsDir := filepath.Join(root, "test-results")
	require.NoError(t, os.Mkdir(resultsDir, 0o755))
	writeSummary := func(name, timestamp, status string) {
		t.Helper()
		s := model.Summary{Timestamp: timestamp, Status: status}
		data, err := json.Marshal(s)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(resultsDir, name), data, 0o644))
	}
	writeSummary("summary.json", "2025-01-22T09:00:00Z", model.StatusSuccess)
	writeSummary("summary-2025-01-20.json", "2025-01-20T09:00:00Z", model.StatusFailure)
	require.NoError(t, os.WriteFile(filepath.Join(resultsDir, "broken.json"), []byte("{"), 0o644))

	resp := get(t, srv.Handler(), "/test-results/history.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var summaries []model.Summary
	require.NoError(t, json.Unmarshal(body(t, resp), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "2025-01-22T09:00:00Z", summaries[0].Timestamp)
	assert.Equal(t, "2025-01-20T09:00:00Z", summaries[1].Timestamp)
}

func TestHistoryEmptyWithoutResultsDir(t *testing.T) {
	srv, _ := newTestServer(t, "")

	resp := get(t, srv.Handler(), "/test-results/history.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, "[]", string(body(t, resp)))
}

func TestStaticFiles(t *testing.T) {
	srv, _ := newTestServer(t, "<html></html>")
	dashboardDir := srv.cfg.Dir
	require.NoError(t, os.WriteFile(filepath.Join(dashboardDir, "app.js"), []byte("console.log(1)"), 0o644))

	resp := get(t, srv.Handler(), "/app.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []byte("console.log(1)"), body(t, resp))

	missing := get(t, srv.Handler(), "/missing.css")
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	srv, _ := newTestServer(t, "<html></html>")
	// Let the kernel pick a free port
	srv.cfg.Port = 0

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	// Give the listener a moment to come up before interrupting
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestSummaryRejectsNonGET(t *testing.T) {
	srv, _ := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodPost, "/test-results/summary.json", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
