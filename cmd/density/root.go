package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terranova/density/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "density",
	Short: "Density evaluates terrain density-function documents",
	Long: `Density parses density-function documents, resolves them against an asset pack
and samples them at points or over lattices. Positive values are solid, negative values are air.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory holding density.yaml or, without one, the asset pack")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (overrides --dir lookup)")
	rootCmd.PersistentFlags().String("pack", "", "Asset pack directory (overrides the config file)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log engine lifecycle events to stderr")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Discard all logs")
}

// options reads the persistent flags.
func options(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	cfgPath, _ := flags.GetString("config")
	pack, _ := flags.GetString("pack")
	debug, _ := flags.GetBool("debug")
	quiet, _ := flags.GetBool("quiet")
	return cli.Options{Dir: dir, ConfigPath: cfgPath, Pack: pack, Debug: debug, Quiet: quiet}
}

// openApp loads the pack and warns about broken assets without failing.
func openApp(cmd *cobra.Command, opts cli.Options) (*cli.App, error) {
	app, err := cli.Open(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	if !app.Report.OK() {
		app.Logger.Warn("Pack has problems; run 'density validate' for details", "problems", len(app.Report.Problems))
	}
	return app, nil
}
