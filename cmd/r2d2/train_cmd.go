package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Ghostkeeper/R2D2/config"
	"github.com/Ghostkeeper/R2D2/history"
	"github.com/Ghostkeeper/R2D2/store"
	"github.com/Ghostkeeper/R2D2/training"
	"github.com/spf13/cobra"
)

type trainCmdConfig struct {
	*rootCmdConfig
	logger
	history     string
	store       string
	printerType string
	nozzle      string
	material    string
	dryRun      bool
}

func trainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	tcc := &trainCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train models from evaluated prints",
		Long:  `Train an ensemble model for every setting recorded by the evaluated prints and store them.`,
		Run: func(cmd *cobra.Command, args []string) {
			tcc.logger = logger(tcc.verbose)
			if err := tcc.run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(tcc.history), "history", "i", "", "path to a print records file or directory (overrides history.path)")
	cmd.PersistentFlags().StringVarP(&(tcc.store), "output", "o", "", "path to the SQLite model database (overrides store.path)")
	cmd.PersistentFlags().StringVar(&(tcc.printerType), "printer", "", "only train from prints made with this printer type")
	cmd.PersistentFlags().StringVar(&(tcc.nozzle), "nozzle", "", "only train from prints made with this nozzle")
	cmd.PersistentFlags().StringVar(&(tcc.material), "material", "", "only train from prints made with this material")
	cmd.PersistentFlags().BoolVar(&(tcc.dryRun), "dry-run", false, "train without storing the models")
	return cmd
}

func (tcc *trainCmdConfig) run() error {
	cfg, err := config.Load(tcc.configFile)
	if err != nil {
		return err
	}
	if tcc.history != "" {
		cfg.HistoryPath = tcc.history
	}
	if tcc.store != "" {
		cfg.StorePath = tcc.store
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	prints, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	src := prints.Select(history.Filter{PrinterType: tcc.printerType, Nozzle: tcc.nozzle, Material: tcc.material})
	tcc.Logf("Training from %d prints of %s ...", src.Len(), cfg.HistoryPath)

	tr := cfg.Training()
	tr.Verbose = tcc.verbose
	o := training.Orchestrator{Training: tr, Workers: cfg.SettingsWorkers, Logger: tcc.logger.sink()}
	c, err := o.TrainAll(ctx, src)
	if err != nil && c == nil {
		return err
	}
	for _, l := range c.Labels() {
		m := c.Models[l]
		tcc.Logf("%v: %d bags, mean test error per row %.5f, coefficients %v", l, len(m.Members), m.Score, m.Coefficients)
	}
	for _, l := range c.Failed() {
		tcc.Logf("%v: not trained: %v", l, c.Failures[l])
	}
	if err != nil {
		return err
	}
	if tcc.dryRun {
		return nil
	}
	st, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()
	if err = st.Save(ctx, c); err != nil {
		return err
	}
	tcc.Logf("Stored %d models in %s", len(c.Models), cfg.StorePath)
	return nil
}
