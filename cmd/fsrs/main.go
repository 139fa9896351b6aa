// Command fsrs simulates FSRS reviews from the command line.
//
//	fsrs [-log-level warn] simulate -ratings again,good,good [-elapsed 0,1d,3d] [-config f.yaml] [-json]
//	fsrs [-log-level warn] interval -stability 3.5 [-retention 0.8] [-config f.yaml]
//	fsrs [-log-level warn] preview [-ratings good,good] [-next 2d] [-config f.yaml] [-json] [-watch]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sky-flux/fsrs"
	"github.com/sky-flux/fsrs/config"
)

const usage = `usage: fsrs [-log-level level] <command> [flags]

commands:
  simulate   replay ratings on a new card and print every review
  interval   print the interval for a stability
  preview    print the four possible outcomes of the next review
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("fsrs failed")
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fsrs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	logLevel := fs.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("%w: -log-level: %v", errUsage, err)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).
		Level(level).
		With().Timestamp().Logger()

	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "simulate":
		return runSimulate(rest, stdout, stderr)
	case "interval":
		return runInterval(rest, stdout, stderr)
	case "preview":
		return runPreview(ctx, rest, stdout, stderr)
	default:
		fs.Usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// loadScheduler builds a scheduler from the config file at path, or from the
// defaults when path is empty.
func loadScheduler(path string) (*fsrs.Scheduler, error) {
	f := &config.File{}
	if path != "" {
		var err error
		if f, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	return f.NewScheduler(log.Logger)
}
