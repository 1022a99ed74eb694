package main

import (
	"errors"
	"flag"
	"io"
	"os"

	"github.com/idilsaglam/mytodo/internal/cli"
	"github.com/idilsaglam/mytodo/internal/config"
	"github.com/idilsaglam/mytodo/internal/logging"
	"github.com/idilsaglam/mytodo/internal/store/memstore"
	"github.com/idilsaglam/mytodo/internal/tui"
	"github.com/idilsaglam/mytodo/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns the process exit code (0 ok, 1 error, 2 usage).
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(errOut)
	cfg, err := config.Load(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		ui.Fail(errOut, err.Error())
		return 2
	}

	ui.SetTheme(cfg.Theme)
	logger := logging.New(errOut, cfg.LogLevel, cfg.LogFormat)
	if cfg.File != "" {
		logger.Debug("config loaded", "file", cfg.File)
	}

	store := memstore.New(
		memstore.WithStartID(cfg.StartID),
		memstore.WithLogger(logger),
	)
	if cfg.Seed {
		store.Seed()
	}

	opt := cli.Options{
		Group:     cfg.Group,
		AssumeYes: cfg.AssumeYes,
		Logger:    logger,
		Interactive: func(s cli.Store) error {
			return tui.Run(s)
		},
	}

	// Positional args run once as a single command before the loop,
	// e.g. `todo -seed ls`. A failing command ends the process with its code.
	r := cli.NewRunner(in, out, errOut, store, opt)
	if rest := fs.Args(); len(rest) > 0 {
		if code := r.Exec(rest); code != 0 {
			return code
		}
	}
	return r.Loop()
}
