// Package main provides the entry point for the page-graph CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for page-graph.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page-graph",
		Short: "Site structure auditor for static page collections",
		Long: `page-graph audits the link structure of a static site.

It reads a directory of page files, extracts and normalizes the links on
each page, builds a directed page graph, and reports every page that is
unreachable from the root page. The graph can be emitted in Graphviz DOT
form or rendered to SVG.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
