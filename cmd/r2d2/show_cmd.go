package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Ghostkeeper/R2D2/config"
	"github.com/Ghostkeeper/R2D2/store"
	"github.com/spf13/cobra"
)

type showCmdConfig struct {
	*rootCmdConfig
	store string
}

func showCmd(rootConfig *rootCmdConfig) *cobra.Command {
	scc := &showCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show stored models",
		Run: func(cmd *cobra.Command, args []string) {
			if err := scc.run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(scc.store), "input", "i", "", "path to the SQLite model database (overrides store.path)")
	return cmd
}

func (scc *showCmdConfig) run() error {
	cfg, err := config.Load(scc.configFile)
	if err != nil {
		return err
	}
	if scc.store != "" {
		cfg.StorePath = scc.store
	}
	ctx := context.Background()
	st, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()
	c, err := st.Load(ctx)
	if err != nil {
		return err
	}
	for _, l := range c.Labels() {
		m := c.Models[l]
		fmt.Printf("%v\texponent %d\t%s of %d bags\tbest %d\terror per row %.5f\n",
			l, m.HighestExponent, m.Aggregation, len(m.Members), m.Best, m.Score)
		fmt.Printf("\tfeatures %v\n\tcoefficients %v\n", m.Features, m.Coefficients)
	}
	return nil
}
