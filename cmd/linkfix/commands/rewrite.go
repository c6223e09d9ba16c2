package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/linkfix/internal/config"
	"git.home.luguber.info/inful/linkfix/internal/foundation/errors"
	"git.home.luguber.info/inful/linkfix/internal/logfields"
	"git.home.luguber.info/inful/linkfix/internal/metrics"
	"git.home.luguber.info/inful/linkfix/internal/rewrite"
)

// RewriteCmd implements the default 'rewrite' command.
type RewriteCmd struct {
	Root            string `arg:"" optional:"" help:"Documentation root to scan (default: config root, LINKFIX_ROOT, or ./docs)"`
	Format          string `short:"f" default:"text" enum:"text,json" help:"Summary output format (text or json)"`
	Decoding        string `help:"Content decoding: preserve (raw bytes) or lossy (UTF-8, ill-formed bytes replaced)"`
	MetricsTextfile string `name:"metrics-textfile" help:"Write Prometheus metrics to this file after the run"`
}

// Run executes the rewrite command.
func (r *RewriteCmd) Run(ctx context.Context, _ *Global, root *CLI) error {
	cfg, err := r.resolveConfig(root.Config)
	if err != nil {
		return err
	}

	logger := NewLogger(os.Stderr, cfg.Logging, root.Verbose)
	slog.SetDefault(logger)
	logger.Debug("Effective configuration", "config", cfg.String())

	return r.execute(ctx, cfg, logger, os.Stdout)
}

// resolveConfig loads the config file and applies flag overrides on top.
func (r *RewriteCmd) resolveConfig(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if r.Root != "" {
		cfg.Root = r.Root
	}
	if r.Decoding != "" {
		cfg.Decoding = config.DecodingMode(r.Decoding)
	}
	if r.MetricsTextfile != "" {
		cfg.Metrics.Textfile = r.MetricsTextfile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *RewriteCmd) execute(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	opts := []rewrite.Option{
		rewrite.WithDecoding(cfg.Decoding),
		rewrite.WithLogger(logger),
	}

	var recorder *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		opts = append(opts, rewrite.WithRecorder(recorder))
	}

	result, runErr := rewrite.NewRewriter(cfg.Root, opts...).Run(ctx)
	if result == nil {
		return runErr
	}

	if err := rewrite.NewFormatter(r.Format).Format(out, result); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "formatting output").Build()
	}

	if recorder != nil {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, recorder.Registry()); err != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}

	if runErr != nil {
		return runErr
	}
	if result.HasFailures() {
		// Per-file failures are reported but do not change the exit status.
		logger.Warn(fmt.Sprintf("%d entries could not be processed", len(result.Failures)), logfields.Failures(len(result.Failures)))
	}
	return nil
}
