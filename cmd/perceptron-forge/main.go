package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"perceptron-forge/internal/config"
	"perceptron-forge/internal/dataset"
	"perceptron-forge/internal/logging"
	"perceptron-forge/internal/model"
	"perceptron-forge/internal/render"
	"perceptron-forge/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config")
	datasetName := flag.String("dataset", "", "Dataset name (and, xor)")
	modelName := flag.String("model", "", "Model (perceptron, multilayer)")
	eta := flag.Float64("eta", 0, "Learning rate")
	iterationCap := flag.Int("cap", 0, "Maximum perceptron steps or multilayer epochs")
	seed := flag.Int64("seed", 0, "PRNG seed")
	beta := flag.Float64("beta", 0, "tanh steepness")
	logEvery := flag.Int("log-every", 0, "Log every N steps or epochs")
	logLevel := flag.String("log-level", "", "DEBUG, INFO, WARN or ERROR")
	renderSurface := flag.Bool("render", false, "Print the decision surface after every step or epoch")
	delay := flag.Duration("delay", 0, "Pause after every rendered step or epoch")
	listen := flag.String("listen", "", "Serve the HTTP API on this address instead of training once")
	datasetsDir := flag.String("datasets-dir", "", "Directory of extra YAML dataset definitions")
	sweep := flag.Bool("sweep", false, "Train every dataset with every model concurrently")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fatal("failed to load config", err)
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(config.Overrides{
		Dataset:      *datasetName,
		Model:        *modelName,
		Eta:          *eta,
		IterationCap: *iterationCap,
		Seed:         *seed,
		Beta:         *beta,
		LogEvery:     *logEvery,
		LogLevel:     *logLevel,
		Render:       *renderSurface,
		Listen:       *listen,
		DatasetsDir:  *datasetsDir,
	})

	if err := cfg.Validate(); err != nil {
		fatal("invalid config", err)
	}

	logger := logging.Configure(os.Stderr, cfg.LogLevel)
	reg := dataset.Builtin()
	if cfg.DatasetsDir != "" {
		sets, err := dataset.LoadDir(cfg.DatasetsDir)
		if err != nil {
			fatal("failed to load datasets", err)
		}
		for _, s := range sets {
			reg.Add(s)
			logger.Info("dataset registered", "name", s.Name(), "samples", s.Len(), "dim", s.Dim())
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case cfg.Listen != "":
		err = serve(ctx, cfg, reg, logger)
	case *sweep:
		err = runSweep(ctx, os.Stdout, cfg, reg, logger)
	default:
		err = runOnce(ctx, os.Stdout, cfg, reg, logger, *delay)
	}
	if err != nil {
		stop()
		fatal("training failed", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}

func runConfig(cfg *config.Config, logger *slog.Logger) trainer.RunConfig {
	return trainer.RunConfig{
		Eta:          cfg.Eta,
		IterationCap: cfg.IterationCap,
		Seed:         cfg.Seed,
		Beta:         cfg.Beta,
		LogEvery:     cfg.LogEvery,
		Logger:       logger,
	}
}

func runOnce(ctx context.Context, out io.Writer, cfg *config.Config, reg dataset.Registry, logger *slog.Logger, delay time.Duration) error {
	set, err := reg.Lookup(cfg.Dataset)
	if err != nil {
		return err
	}
	opt := render.DefaultOptions()
	opt.Beta = cfg.Beta

	var onProgress trainer.ProgressFunc
	if cfg.Render {
		onProgress = func(p trainer.Progress) {
			fmt.Fprintf(out, "%s %d error=%g\n", unitName(p), p.Index, p.Error)
			if err := render.Surface(out, set, p.Weights, opt); err != nil {
				logger.Warn("render failed", "err", err)
			}
			if delay > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(delay):
				}
			}
		}
	}

	kind, err := cfg.ModelKind()
	if err != nil {
		return err
	}
	res, err := trainer.Train(ctx, reg, trainer.Request{
		Dataset:   cfg.Dataset,
		Model:     kind,
		RunConfig: runConfig(cfg, logger),
	}, onProgress)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, res.Summary())
	if cfg.Render {
		return render.Surface(out, set, res.Weights, opt)
	}
	return nil
}

func unitName(p trainer.Progress) string {
	if p.Model == model.Multilayer {
		return "epoch"
	}
	return "step"
}
