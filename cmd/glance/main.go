package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/glance/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		// Only a help request gets here.
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "glance: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags reads the command line. Malformed flags are reported to stderr
// and skipped, never fatal, so glance can be started by bars that pass
// their own arguments. Only a help request returns an error.
func parseFlags(args []string, stderr io.Writer) (app.Options, error) {
	fs := pflag.NewFlagSet("glance", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.ParseErrorsWhitelist.UnknownFlags = true

	var opts app.Options
	fs.BoolVarP(&opts.Segments.Audio, "audio", "a", false, "show the audio volume segment")
	fs.BoolVarP(&opts.Segments.Battery, "battery", "b", false, "show the battery segment")
	fs.BoolVarP(&opts.Segments.Weather, "weather", "w", false, "show the weather segment")
	fs.BoolVarP(&opts.Segments.CPU, "cpu", "c", false, "show the CPU temperature segment")
	fs.BoolVarP(&opts.Segments.Garage, "garage", "g", false, "show the garage door segment")
	fs.BoolVarP(&opts.Segments.Memory, "memory", "m", false, "show the memory segment")
	fs.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/glance/config.toml)")
	fs.StringVar(&opts.PrefsPath, "prefs", "", "prefs file path (default ~/.config/glance/prefs.toml)")
	fs.StringVarP(&opts.Output, "output", "o", "", "output mode: tui, plain, i3bar or pango (default from config)")

	err := fs.ParseAll(args, func(flag *pflag.Flag, value string) error {
		if err := fs.Set(flag.Name, value); err != nil {
			fmt.Fprintf(stderr, "glance: ignoring --%s: %v\n", flag.Name, err)
		}
		return nil
	})
	switch {
	case errors.Is(err, pflag.ErrHelp):
		return app.Options{}, err
	case err != nil:
		// Parsing stops at the bad argument; flags before it still apply.
		fmt.Fprintf(stderr, "glance: ignoring %v\n", err)
	}
	return opts, nil
}
