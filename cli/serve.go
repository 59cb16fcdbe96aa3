package cli

// This file contains the serve command, which runs the dashboard HTTP
// server until interrupted.

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/testdash/testdash/server"
	"github.com/urfave/cli/v2"
)

func (a *App) serve(ctx *cli.Context) error {
	cfg := server.Config{
		Port:        ctx.Int("port"),
		Dir:         ctx.String("dir"),
		ResultsFile: resolveResultsFile(ctx),
	}

	srv := server.New(a.logger, cfg)

	runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(runCtx)
}

// resolveResultsFile applies the conventional location of the summary file
// when --results is not given: the test-results directory next to the
// dashboard directory, as laid out by the CI pipeline.
func resolveResultsFile(ctx *cli.Context) string {
	if results := ctx.String("results"); results != "" {
		return results
	}
	return filepath.Join(ctx.String("dir"), "..", "test-results", "summary.json")
}
