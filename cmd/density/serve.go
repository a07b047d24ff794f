package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/terranova/density/internal/cli"
	"github.com/terranova/density/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Loads the pack and exposes evaluation, previews and validation as a JSON API.
Previews are cached in memory, or in Redis when server.redis is configured.
Prometheus metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options(cmd)
		opts.Metrics = true

		app, err := openApp(cmd, opts)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
			app.Config.Server.Addr = addr
		}
		if cmd.Flags().Changed("watch") {
			app.Config.Server.Watch, _ = cmd.Flags().GetBool("watch")
		}

		if cli.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr)
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.Serve(ctx, app, app.Config.Server.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides server.addr)")
	serveCmd.Flags().Bool("watch", false, "Reload the pack when its files change (overrides server.watch)")
}
