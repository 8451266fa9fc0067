package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/Ghostkeeper/R2D2/config"
	"github.com/Ghostkeeper/R2D2/history"
	"github.com/Ghostkeeper/R2D2/model"
	"github.com/Ghostkeeper/R2D2/model/hyperopt"
	"github.com/Ghostkeeper/R2D2/settings"
	"github.com/Ghostkeeper/R2D2/training"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/stat"
)

type tuneCmdConfig struct {
	*rootCmdConfig
	logger
	history     string
	iterations  int
	printerType string
	nozzle      string
	material    string
}

func tuneCmd(rootConfig *rootCmdConfig) *cobra.Command {
	ucc := &tuneCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Search training parameters",
		Long:  `Randomly search bag count, training ratio and polynomial degree for the lowest mean per row test error over all settings.`,
		Run: func(cmd *cobra.Command, args []string) {
			ucc.logger = logger(ucc.verbose)
			if err := ucc.run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(ucc.history), "history", "i", "", "path to a print records file or directory (overrides history.path)")
	cmd.PersistentFlags().IntVarP(&(ucc.iterations), "iterations", "n", 20, "count of sampled parameter sets")
	cmd.PersistentFlags().StringVar(&(ucc.printerType), "printer", "", "only tune with prints made with this printer type")
	cmd.PersistentFlags().StringVar(&(ucc.nozzle), "nozzle", "", "only tune with prints made with this nozzle")
	cmd.PersistentFlags().StringVar(&(ucc.material), "material", "", "only tune with prints made with this material")
	return cmd
}

// tuningSpace covers the parameters the configuration file can set
func tuningSpace(iterations int, seed int64) hyperopt.Space {
	return hyperopt.Space{
		Seed:       seed,
		Iterations: iterations,
		Variance: hyperopt.Variance{
			"bags":     hyperopt.IntRange{3, 10},
			"ratio":    hyperopt.Range{0.6, 0.9},
			"exponent": hyperopt.IntRange{1, 5},
		},
	}
}

// meanScore trains every setting and averages the model scores
func meanScore(o training.Orchestrator, src settings.Source) hyperopt.Objective {
	base := o.Training
	return func(ctx context.Context, p model.Params) (float64, error) {
		o.Training = base.With(p)
		c, err := o.TrainAll(ctx, src)
		if err != nil {
			return 0, err
		}
		if len(c.Models) == 0 {
			return 0, xerrors.Errorf("no model trained: %w", model.ErrInsufficientData)
		}
		scores := make([]float64, 0, len(c.Models))
		for _, l := range c.Labels() {
			scores = append(scores, c.Models[l].Score)
		}
		return stat.Mean(scores, nil), nil
	}
}

func (ucc *tuneCmdConfig) run() error {
	cfg, err := config.Load(ucc.configFile)
	if err != nil {
		return err
	}
	if ucc.history != "" {
		cfg.HistoryPath = ucc.history
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	prints, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	src := prints.Select(history.Filter{PrinterType: ucc.printerType, Nozzle: ucc.nozzle, Material: ucc.material})
	ucc.Logf("Tuning with %d prints of %s ...", src.Len(), cfg.HistoryPath)

	tr := cfg.Training()
	o := training.Orchestrator{Training: tr, Workers: cfg.SettingsWorkers, Logger: logger(false).sink()}
	r, err := tuningSpace(ucc.iterations, tr.Seed).Search(ctx, meanScore(o, src))
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("training.%s: %v\n", k, r.Params[k])
	}
	fmt.Printf("# mean test error per row %.5f\n", r.Score)
	return nil
}
