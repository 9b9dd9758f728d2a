package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lxyhes/flowforge"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flowforge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flowforge version %s\n", flowforge.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
