package model

// Status values reported by the CI pipeline in a summary.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Summary is the aggregate result of a single test run, as written by the
// CI pipeline and rendered by the dashboard UI. It is read verbatim from
// disk and never mutated by this program.
type Summary struct {
	// Timestamp of the run, ISO-8601
	Timestamp string `json:"timestamp"`
	// Overall run status ("success" or "failure")
	Status string `json:"status"`
	// Total number of tests executed
	TotalTests int `json:"total_tests"`
	// Number of tests that passed
	Passed int `json:"passed"`
	// Number of tests that failed
	Failed int `json:"failed"`
	// Number of tests that were ignored
	Ignored int `json:"ignored"`
	// Percentage of tests that passed (0-100)
	PassRate float64 `json:"pass_rate"`
	// Per-suite breakdown, keyed by suite identifier
	TestSuites map[string]Suite `json:"test_suites"`
	// Free-form metadata about the environment the tests ran in
	Environment map[string]any `json:"environment"`
}

// Suite describes one test suite within a run
type Suite struct {
	// Human-readable suite name
	Name string `json:"name"`
	// Number of tests in the suite
	Count int `json:"count"`
}

// Mock returns the constant demo summary served when no real results file
// is present, so the dashboard can be previewed without running the
// pipeline. Values mirror a representative run of the project under test.
func Mock() Summary {
	return Summary{
		Timestamp:  "2025-01-21T12:00:00Z",
		Status:     StatusSuccess,
		TotalTests: 437,
		Passed:     437,
		Failed:     0,
		Ignored:    0,
		PassRate:   100.00,
		TestSuites: map[string]Suite{
			"library": {
				Name:  "Library Unit Tests",
				Count: 396,
			},
			"infrastructure": {
				Name:  "Infrastructure Integration Tests",
				Count: 19,
			},
			"jetstream": {
				Name:  "JetStream Event Store Tests",
				Count: 6,
			},
			"persistence": {
				Name:  "Persistence Integration Tests",
				Count: 7,
			},
		},
		Environment: map[string]any{
			"rust_version":  "1.75.0",
			"nats_required": true,
			"nats_endpoint": "localhost:4222",
		},
	}
}
