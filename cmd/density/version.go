package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terranova/density"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of density",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "density version %s\n", strings.TrimSpace(density.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
