package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "testdash"

const defaultPort = 8080

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Preview the test-results dashboard locally",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "serve",
		Usage:  "Serve the dashboard and test results over HTTP",
		Action: app.serve,
		Flags:  serveFlags(),
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List archived test summaries",
		Action: app.list,
		Flags: append(resultsFlags(),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		),
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show one archived test summary",
		ArgsUsage: "[INDEX]",
		Action:    app.show,
		// Flag parsing would mistake negative indices like -1 for flags,
		// so the command parses its own arguments.
		SkipFlagParsing: true,
		Description: `Show one archived test summary in full.

Arguments:
  0           Show the latest summary (default)
  -1          Show the 2nd latest summary
  -2          Show the 3rd latest summary

Options (parsed by the command itself):
  --dir DIR        Directory containing the dashboard files (default: .)
  --results FILE   Path to the results summary JSON

Examples:
  testdash show         # Show the latest summary
  testdash show -1      # Show the 2nd latest summary`,
	})
	// Default action when no command is specified: serve with defaults,
	// so a bare "testdash" brings the dashboard up on :8080.
	app.cli.Action = app.serve
	app.cli.Flags = append(app.cli.Flags, serveFlags()...)
	return app
}

// serveFlags returns the flags of the serve command. They are also attached
// to the app itself for the no-command default action, so fresh instances
// are built on every call.
func serveFlags() []cli.Flag {
	return append(resultsFlags(),
		&cli.IntFlag{
			Name:  "port",
			Usage: "Port to listen on",
			Value: defaultPort,
		},
	)
}

// resultsFlags returns the flags shared by every command that locates the
// dashboard and its results files.
func resultsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "dir",
			Usage: "Directory containing the dashboard files",
			Value: ".",
		},
		&cli.StringFlag{
			Name:  "results",
			Usage: "Path to the results summary JSON (default: <dir>/../test-results/summary.json)",
		},
	}
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && len(commit) >= 8 {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}
