package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"perceptron-forge/internal/config"
	"perceptron-forge/internal/dataset"
	"perceptron-forge/internal/model"
	"perceptron-forge/internal/trainer"
)

// runSweep trains every registered dataset with both models. Runs are
// independent and execute concurrently; the first configuration error
// cancels the rest.
func runSweep(ctx context.Context, out io.Writer, cfg *config.Config, reg dataset.Registry, logger *slog.Logger) error {
	type job struct {
		dataset string
		kind    model.Kind
	}
	var jobs []job
	for _, name := range reg.Names() {
		for _, kind := range []model.Kind{model.Perceptron, model.Multilayer} {
			jobs = append(jobs, job{dataset: name, kind: kind})
		}
	}

	results := make([]*trainer.Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		i, j := i, j
		rc := runConfig(cfg, logger)
		if rc.Seed != 0 {
			rc.Seed += int64(i)
		}
		g.Go(func() error {
			res, err := trainer.Train(gctx, reg, trainer.Request{Dataset: j.dataset, Model: j.kind, RunConfig: rc}, nil)
			if err != nil {
				return errors.Wrapf(err, "%s/%s", j.dataset, j.kind)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATASET\tMODEL\tSTATE\tSTEPS\tERROR\tELAPSED")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.6g\t%s\n", r.Dataset, r.Model, r.State, r.Steps, r.Error, r.Elapsed)
	}
	return tw.Flush()
}
