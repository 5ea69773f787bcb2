package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/crossgrid/generator"
	"github.com/katalvlaran/crossgrid/grid"
	"github.com/katalvlaran/crossgrid/metrics"
	"github.com/katalvlaran/crossgrid/render"
	"github.com/katalvlaran/crossgrid/wordbank"
)

// Output formats of generate.
const (
	formatText   = "text"
	formatStyled = "styled"
	formatJSON   = "json"
	formatYAML   = "yaml"
)

type generateFlags struct {
	format      string
	metricsAddr string
	seedGrid    string
}

func newGenerateCmd(a *app) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate <words-file>",
		Short: "Evolve a grid from a word list",
		Long: `Load a word list and evolve a grid from it.

Each line of the list is WORD[|direction[|clue]] where direction is across,
down, a, d or empty. Blank lines and lines starting with # are ignored.

A --seed-grid file draws a starting layout one row per line, letters for
filled cells and '.', '#' or spaces for empty ones. Every run of two or more
letters must be a word of the list.

Interrupting the run stops it after the current round and prints the best
grid found so far.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.format, "format", "f", formatText, "output format: text, styled, json or yaml")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	cmd.Flags().StringVar(&f.seedGrid, "seed-grid", "", "start every layout from the grid drawn in this file")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, path string, f generateFlags) error {
	switch f.format {
	case formatText, formatStyled, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q", f.format)
	}
	cfg, err := a.effectiveConfig(cmd)
	if err != nil {
		return err
	}
	bank, err := wordbank.LoadFile(path, wordbank.WithLogger(a.log))
	if err != nil {
		return err
	}

	opts := []generator.Option{generator.WithLogger(a.log)}
	if f.seedGrid != "" {
		data, err := os.ReadFile(f.seedGrid)
		if err != nil {
			return err
		}
		seed, err := grid.Parse(bank, string(data), cfg.GridOptions()...)
		if err != nil {
			return fmt.Errorf("seed grid %s: %w", f.seedGrid, err)
		}
		a.log.Debug("seed grid loaded", zap.Int("words", seed.PlacedCount()))
		opts = append(opts, generator.WithSeedGrid(seed))
	}

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	opts = append(opts, generator.WithObserver(rec))
	if f.metricsAddr != "" {
		stop, err := a.serveMetrics(f.metricsAddr, reg)
		if err != nil {
			return err
		}
		defer stop()
	}

	gen, err := generator.New(bank, cfg, opts...)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	res, runErr := gen.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if err := write(cmd.OutOrStdout(), f.format, res); err != nil {
		return err
	}
	return runErr
}

func write(w io.Writer, format string, res generator.Result) error {
	layout := render.Export(res.Best, res.Breakdown)
	layout.RunID = res.RunID

	switch format {
	case formatJSON:
		data, err := layout.JSON()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case formatYAML:
		data, err := layout.YAML()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	view := render.Framed(res.Best)
	if format == formatStyled {
		view = render.Styled(res.Best)
	}
	_, err := fmt.Fprintf(w, "%s\n\n%s\nscore %.3f after %d rounds (%s), %d of %d words placed\n",
		view, layout.Clues(), res.Score(), res.Rounds, res.State,
		res.Best.PlacedCount(), res.Best.Bank().Len())
	return err
}

// serveMetrics exposes reg over HTTP until the returned stop is called.
func (a *app) serveMetrics(addr string, reg *prometheus.Registry) (stop func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	a.log.Info("serving metrics", zap.String("addr", ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		<-done
	}, nil
}
