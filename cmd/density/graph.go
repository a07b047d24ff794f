package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terranova/density/internal/cli"
	"github.com/terranova/density/internal/presentation/graph"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <document>",
	Short: "Export the node tree as a Mermaid diagram",
	Long: `Parses a document and outputs a Mermaid diagram (graph TD) of its node tree.
With --at the document is also evaluated there and the failing node kind is highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, _ := cmd.Flags().GetString("at")
		rawInputs, _ := cmd.Flags().GetString("inputs")

		doc, err := cli.ReadDocument(args[0], os.Stdin)
		if err != nil {
			return err
		}
		app, err := openApp(cmd, options(cmd))
		if err != nil {
			return err
		}
		root, err := app.Engine.Parse(doc)
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if at != "" {
			p, err := parseVec(at)
			if err != nil {
				return err
			}
			inputs, err := parseInputs(rawInputs)
			if err != nil {
				return err
			}
			overlay = faultOverlay(cmd, app, doc, p, inputs)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(root, overlay))
		return nil
	},
}

// faultOverlay evaluates doc at p and marks the kind that failed, if any.
func faultOverlay(cmd *cobra.Command, app *cli.App, doc []byte, p domain.Vec3, inputs *domain.ContextInputs) *graph.Overlay {
	prog, err := app.Engine.Compile(cmd.Context(), doc)
	if err == nil {
		_, err = app.Engine.Evaluate(cmd.Context(), prog, p, inputs)
	}
	if err == nil {
		return nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "evaluation at %g,%g,%g failed: %v\n", p.X, p.Y, p.Z, err)

	var evalErr *domain.EvalError
	if !errors.As(err, &evalErr) {
		return nil
	}
	kind, _, _ := strings.Cut(evalErr.Node, "#")
	return &graph.Overlay{Faulted: []ast.Kind{ast.Kind(kind)}}
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("at", "", "Evaluate at x,y,z and highlight the failing node")
	graphCmd.Flags().String("inputs", "", "World inputs as JSON")
}
