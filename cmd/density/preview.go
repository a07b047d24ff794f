package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terranova/density/internal/cli"
	"github.com/terranova/density/internal/presentation/tui"
	"github.com/terranova/density/pkg/domain"
)

var previewCmd = &cobra.Command{
	Use:   "preview <document>",
	Short: "Evaluate a document over a lattice",
	Long: `Samples a document over a regular lattice and prints one table per Y layer.
Use --json for the raw grid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		originRaw, _ := flags.GetString("origin")
		stepRaw, _ := flags.GetString("step")
		sizeRaw, _ := flags.GetString("size")
		layer, _ := flags.GetInt("layer")
		asJSON, _ := flags.GetBool("json")
		rawInputs, _ := flags.GetString("inputs")

		origin, err := parseVec(originRaw)
		if err != nil {
			return err
		}
		step, err := parseVec(stepRaw)
		if err != nil {
			return err
		}
		size, err := parseSize(sizeRaw)
		if err != nil {
			return err
		}
		dom := domain.Domain{Origin: origin, Step: step, Size: size}
		if err := dom.Validate(); err != nil {
			return err
		}
		if layer >= size[1] {
			return fmt.Errorf("layer %d is outside the domain (%d layers)", layer, size[1])
		}
		inputs, err := parseInputs(rawInputs)
		if err != nil {
			return err
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
		grid, err := app.Engine.EvaluateGrid(cmd.Context(), prog, dom, inputs)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return json.NewEncoder(out).Encode(grid)
		}

		var sb strings.Builder
		for iy := 0; iy < size[1]; iy++ {
			if layer >= 0 && iy != layer {
				continue
			}
			sb.WriteString(tui.SliceMarkdown(grid, iy))
			sb.WriteString("\n")
		}
		return cli.PrintMarkdown(out, sb.String())
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().String("origin", "0,0,0", "Lattice origin x,y,z")
	previewCmd.Flags().String("step", "1,1,1", "Lattice spacing x,y,z")
	previewCmd.Flags().String("size", "16,1,16", "Points per axis sx,sy,sz")
	previewCmd.Flags().Int("layer", -1, "Only print this Y layer index")
	previewCmd.Flags().Bool("json", false, "Print the grid as JSON")
	previewCmd.Flags().String("inputs", "", "World inputs as JSON")
}
