package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/terranova/density/internal/cli"
	"github.com/terranova/density/pkg/domain"
)

var evalCmd = &cobra.Command{
	Use:   "eval <document> [x,y,z ...]",
	Short: "Evaluate a document at one or more points",
	Long: `Compiles a document against the pack and prints its value at each point.
The document is a file path, inline JSON, or '-' for stdin. Without points it is
evaluated at the origin. A failed point prints its error and sets the exit status.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		rawInputs, _ := cmd.Flags().GetString("inputs")

		inputs, err := parseInputs(rawInputs)
		if err != nil {
			return err
		}
		points := []domain.Vec3{{}}
		if len(args) > 1 {
			points = points[:0]
			for _, a := range args[1:] {
				p, err := parseVec(a)
				if err != nil {
					return err
				}
				points = append(points, p)
			}
		}

		doc, err := cli.ReadDocument(args[0], os.Stdin)
		if err != nil {
			return err
		}
		app, err := openApp(cmd, options(cmd))
		if err != nil {
			return err
		}
		prog, err := app.Engine.Compile(cmd.Context(), doc)
		if err != nil {
			return err
		}

		type result struct {
			Point domain.Vec3 `json:"point"`
			Value *float64    `json:"value,omitempty"`
			Error string      `json:"error,omitempty"`
		}
		results := make([]result, len(points))
		failed := 0
		for i, p := range points {
			results[i].Point = p
			v, err := app.Engine.Evaluate(cmd.Context(), prog, p, inputs)
			if err != nil {
				results[i].Error = err.Error()
				failed++
				continue
			}
			results[i].Value = &v
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}
		} else {
			for _, r := range results {
				if r.Value == nil {
					fmt.Fprintf(out, "%g,%g,%g\terror: %s\n", r.Point.X, r.Point.Y, r.Point.Z, r.Error)
					continue
				}
				fmt.Fprintf(out, "%g,%g,%g\t%s\n", r.Point.X, r.Point.Y, r.Point.Z, strconv.FormatFloat(*r.Value, 'g', -1, 64))
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d point(s) failed", failed, len(points))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().Bool("json", false, "Print results as JSON")
	evalCmd.Flags().String("inputs", "", `World inputs as JSON, e.g. {"terrain":64,"baseHeights":{"sea":62}}`)
}
