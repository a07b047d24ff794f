package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terranova/density/internal/cli"
	"github.com/terranova/density/internal/presentation/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [document ...]",
	Short: "Check the pack, or documents against it",
	Long: `Without arguments, loads every asset of the pack and reports the ones that
fail to parse or resolve. With arguments, checks each document against the pack.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options(cmd)
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			cfg, err := cli.LoadConfig(opts)
			if err != nil {
				return err
			}
			logger, err := cli.NewLogger(cfg, opts.Quiet)
			if err != nil {
				return err
			}
			src, err := cli.OpenSource(cfg, logger)
			if err != nil {
				return err
			}
			app := &cli.App{Config: cfg, Logger: logger, Source: src}
			report, err := app.NewEngine().ValidatePack(cmd.Context(), src)
			if err != nil {
				return err
			}
			if err := cli.PrintMarkdown(out, tui.PackMarkdown("Pack "+cfg.Pack, report)); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("pack has %d problem(s)", len(report.Problems))
			}
			return nil
		}

		app, err := openApp(cmd, opts)
		if err != nil {
			return err
		}
		var failed error
		for _, arg := range args {
			doc, err := cli.ReadDocument(arg, os.Stdin)
			if err == nil {
				err = app.Engine.Validate(doc)
			}
			if err != nil {
				fmt.Fprintf(out, "✗ %s: %v\n", arg, err)
				failed = errors.Join(failed, err)
				continue
			}
			fmt.Fprintf(out, "✓ %s\n", arg)
		}
		return failed
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
