package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of r2d2",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("r2d2 %s\n", version)
		},
	}
}
