// Command x68kbd feeds a modern keyboard to an X68000: USB HID usages in,
// X68000 keycodes out on the keyboard serial line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"x68kbd/config"
	"x68kbd/keytable"
)

type options struct {
	conf     string
	debug    bool
	verbose  bool
	test     bool // print translated bytes instead of writing the port
	extended bool
	format   string // dump
}

// parseArgs seeds the flags from the environment, then parses args. It
// returns the remaining positional arguments.
func parseArgs(args []string, lookupEnv func(string) (string, bool)) (*options, []string, error) {
	o := &options{conf: config.DefaultPath}
	if v, ok := lookupEnv("CONFIG"); ok {
		o.conf = v
	}
	_, o.debug = lookupEnv("DEBUG")
	_, o.verbose = lookupEnv("VERBOSE")
	_, o.test = lookupEnv("TEST")

	F := flag.NewFlagSet("x68kbd", flag.ContinueOnError)
	F.StringVarP(&o.conf, "conf", "c", o.conf, "Non-default config location")
	F.BoolVarP(&o.debug, "debug", "d", o.debug, "Debug log level")
	F.BoolVarP(&o.verbose, "verbose", "v", o.verbose, "At least info log level")
	F.BoolVarP(&o.test, "test", "t", o.test, "Print translated bytes to STDOUT instead of the serial port")
	F.BoolVarP(&o.extended, "extended", "x", false, "Enable the unverified 0x8c-0xe7 table")
	F.StringVar(&o.format, "format", "text", "dump format: text, toml or yaml")
	F.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: x68kbd [flags] [run | translate <code>... | dump | shell]\n")
		F.PrintDefaults()
	}
	if err := F.Parse(args); err != nil {
		return nil, nil, err
	}
	return o, F.Args(), nil
}

func logLevel(conf string, debug, verbose bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(conf)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if verbose && lvl > zerolog.InfoLevel {
		lvl = zerolog.InfoLevel
	}
	return lvl
}

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().Timestamp().
		Logger()
}

func tableFor(c *config.Config, extended bool) keytable.Table {
	return keytable.New(keytable.WithExtended(extended || c.Table.Extended))
}

func main() {
	opts, args, err := parseArgs(os.Args[1:], os.LookupEnv)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, cfgErr := config.Load(opts.conf)
	level := "info"
	if cfg != nil {
		level = cfg.Log.Level
	}
	log := newLogger(os.Stderr, logLevel(level, opts.debug, opts.verbose))
	switch {
	case errors.Is(cfgErr, config.ErrNotFound):
		log.Warn().Err(cfgErr).Msg("using embedded defaults")
	case cfgErr != nil:
		log.Fatal().Err(cfgErr).Msg("config")
	}

	cmd, rest := "run", args
	if len(args) > 0 {
		cmd, rest = args[0], args[1:]
	}
	table := tableFor(cfg, opts.extended)

	switch cmd {
	case "run":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = run(ctx, cfg, opts, log)
		stop()
	case "translate":
		err = translate(os.Stdout, table, rest)
	case "dump":
		err = dump(os.Stdout, table, opts.format)
	case "shell":
		err = shell(table)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		log.Error().Err(err).Str("command", cmd).Msg("failed")
		os.Exit(1)
	}
}
