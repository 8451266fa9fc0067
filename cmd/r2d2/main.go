package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	configFile string
	verbose    bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "r2d2",
		Short: "r2d2 learns how print settings relate to print evaluations",
		Long:  `A tool to train, per print setting, a response surface mapping the evaluations of past prints to the setting values they were printed with`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().StringVarP(&(config.configFile), "config", "c", "", "path to a YAML configuration file (defaults to r2d2.yaml in $R2D2_CFG_PATH or the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), trainCmd(config), tuneCmd(config), showCmd(config))
	return rootCmd
}
