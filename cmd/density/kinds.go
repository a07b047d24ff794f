package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terranova/density/internal/compiler"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/schema"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds [kind ...]",
	Short: "List the node kinds and their fields",
	Long: `Without arguments, lists every node kind grouped by category.
With arguments, prints the accepted fields of each kind as JSON, e.g. {"Scale":"number?"}.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			var last ast.Category
			for _, k := range ast.Kinds() {
				if c := ast.CategoryOf(k); c != last {
					fmt.Fprintf(out, "%s\n", c)
					last = c
				}
				fmt.Fprintf(out, "  %s\n", k)
			}
			return nil
		}

		shapes := make(map[string]schema.Schema, len(args))
		for _, arg := range args {
			s, ok := compiler.Shape(ast.Kind(arg))
			if !ok {
				return fmt.Errorf("unknown node kind %q", arg)
			}
			shapes[arg] = s
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(shapes)
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
