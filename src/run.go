package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"x68kbd/bridge"
	"x68kbd/config"
	"x68kbd/evsource"
)

func policyFor(c *config.Config) (*bridge.Policy, error) {
	return bridge.NewPolicy(c.Unmapped.Action, c.Unmapped.Exec, c.HookTimeout(), c.Unmapped.MaxReply)
}

// openSource returns the configured input and a func that closes it. The close
// func is safe to call more than once and unblocks a pending read.
func openSource(c *config.Config, log zerolog.Logger) (bridge.Source, func(), error) {
	switch c.Input.Source {
	case "serial":
		port, err := bridge.OpenSerial(c.Input.Device, c.Input.Baud)
		if err != nil {
			return nil, nil, err
		}
		return bridge.NewByteSource(port), onceCloser(port), nil

	case "stdin":
		return bridge.NewByteSource(os.Stdin), func() {}, nil

	default:
		var (
			dev *evsource.Device
			err error
		)
		if c.Input.Device != "" {
			dev, err = evsource.Open(c.Input.Device, log)
		} else {
			dev, err = evsource.Find(c.Input.BypassRE, log)
		}
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", dev.Path()).Str("name", dev.Name()).Msg("keyboard")
		if c.Input.Grab {
			if err := dev.Grab(); err != nil {
				dev.Close()
				return nil, nil, err
			}
		}
		return dev, onceCloser(dev), nil
	}
}

func openSink(c *config.Config, test bool, stdout io.Writer) (bridge.Sink, func(), error) {
	if test || c.Output.Port == "" {
		return bridge.NewHexSink(stdout), func() {}, nil
	}
	port, err := bridge.OpenSerial(c.Output.Port, c.Output.Baud)
	if err != nil {
		return nil, nil, err
	}
	return bridge.NewLineSink(port), onceCloser(port), nil
}

func onceCloser(c io.Closer) func() {
	var once sync.Once
	return func() {
		once.Do(func() { c.Close() })
	}
}

func serveMetrics(addr string, m *bridge.Metrics, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("listen", addr).Msg("metrics listener")
		}
	}()
	return srv
}

// run pumps the configured source into the configured sink until ctx is done
// or the source fails. Config file changes swap the table and the unmapped
// policy in place.
func run(ctx context.Context, cfg *config.Config, opts *options, log zerolog.Logger) error {
	policy, err := policyFor(cfg)
	if err != nil {
		return err
	}

	sink, closeSink, err := openSink(cfg, opts.test, os.Stdout)
	if err != nil {
		return err
	}
	defer closeSink()

	var metrics *bridge.Metrics
	if cfg.Metrics.Listen != "" {
		metrics = bridge.NewMetrics()
		srv := serveMetrics(cfg.Metrics.Listen, metrics, log.With().Str("component", "metrics").Logger())
		defer srv.Close()
	}

	b := bridge.New(bridge.Options{
		Table:   tableFor(cfg, opts.extended),
		Policy:  policy,
		Sink:    sink,
		Log:     log.With().Str("component", "bridge").Logger(),
		Metrics: metrics,
	})
	defer b.Close()

	src, closeSrc, err := openSource(cfg, log.With().Str("component", "input").Logger())
	if err != nil {
		return err
	}
	defer closeSrc()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		closeSrc()
	}()

	if _, err := os.Stat(opts.conf); err == nil {
		wlog := log.With().Str("component", "config").Logger()
		go func() {
			err := config.Watch(ctx, opts.conf, wlog, func(c *config.Config) {
				p, err := policyFor(c)
				if err != nil {
					wlog.Error().Err(err).Msg("reload")
					return
				}
				b.SetTable(tableFor(c, opts.extended))
				b.SetPolicy(p)
				wlog.Info().Bool("extended", b.Table().Extended()).Str("unmapped", p.Action).Msg("reloaded")
			})
			if err != nil {
				wlog.Error().Err(err).Msg("watch")
			}
		}()
	}

	log.Info().
		Str("input", cfg.Input.Source).
		Bool("extended", b.Table().Extended()).
		Msg("running")
	if err := b.Run(ctx, src); err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	return nil
}
