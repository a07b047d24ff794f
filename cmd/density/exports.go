package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List the exports, curves and positions of the pack",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		app, err := openApp(cmd, options(cmd))
		if err != nil {
			return err
		}
		reg := app.Engine.Registry()
		sections := []struct {
			Title string
			Names []string
		}{
			{"exports", reg.ExportNames()},
			{"curves", reg.CurveNames()},
			{"positions", reg.PositionsNames()},
		}

		out := cmd.OutOrStdout()
		if asJSON {
			m := make(map[string][]string, len(sections))
			for _, s := range sections {
				m[s.Title] = append([]string{}, s.Names...)
			}
			return json.NewEncoder(out).Encode(m)
		}
		for _, s := range sections {
			fmt.Fprintf(out, "%s (%d)\n", s.Title, len(s.Names))
			for _, n := range s.Names {
				fmt.Fprintf(out, "  %s\n", n)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportsCmd)
	exportsCmd.Flags().Bool("json", false, "Print as JSON")
}
