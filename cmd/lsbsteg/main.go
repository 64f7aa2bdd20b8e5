package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/yyyoichi/lsbsteg/internal/config"
)

const usage = `usage: lsbsteg <command> [flags]

commands:
  hide      hide a message in an image and save it as PNG or BMP
  reveal    print the message hidden in an image
  capacity  show how many characters an image can hold
  quality   compare a cover image with its stego image

Run 'lsbsteg <command> -h' for the flags of a command.
`

var errUsage = errors.New("usage")

type env struct {
	cfg    config.Config
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

type command func(ctx context.Context, e env, args []string) error

var commands = map[string]command{
	"hide":     runHide,
	"reveal":   runReveal,
	"capacity": runCapacity,
	"quality":  runQuality,
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config loading failed: %v\n", err)
		return 1
	}
	lvl, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}))

	err = cmd(ctx, env{cfg: cfg, log: logger, stdout: stdout, stderr: stderr}, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp), errors.Is(err, errUsage):
		return 2
	default:
		logger.Error(args[0]+" failed", "err", err)
		return 1
	}
}

func newFlagSet(name string, e env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}
