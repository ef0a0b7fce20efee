// Command sqlcraft renders SQL statements from JSON or YAML query
// descriptions, for trying out query shapes without writing Go.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/sqlcraft"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sqlcraft:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sqlcraft",
		Short: "Render SQL statements from structured query descriptions",
		Long: `sqlcraft renders SELECT, INSERT, UPDATE and DELETE statements as
MySQL-dialect SQL text from a JSON or YAML description of their clauses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newRenderCmd())
	return cmd
}

// renderOptions holds flags for the render command.
type renderOptions struct {
	output  string
	noColor bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a query description file to SQL",
		Long: `Render reads a query description from a .json, .yaml or .yml file
and prints the resulting SQL statement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write SQL to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var b *sqlcraft.Builder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err = sqlcraft.FromYAML(data)
	default:
		b, err = sqlcraft.FromJSON(data)
	}
	if err != nil {
		return err
	}

	stmt, err := b.Build()
	if err != nil {
		return err
	}

	if opts.output != "" {
		return os.WriteFile(opts.output, []byte(stmt+"\n"), 0o644)
	}
	if opts.noColor {
		color.NoColor = true
	}
	_, err = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), stmt)
	return err
}
