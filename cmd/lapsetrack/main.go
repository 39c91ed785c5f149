// Package main is the entry point for the lapsetrack CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lapsetrack",
		Short: "Well production gap research server",
		Long: `Lapsetrack researches gaps in oil and gas well production records.

It pulls monthly production data from state regulator websites, stores the
researched records, and finds the periods during which no well in a group
produced at all.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(researchCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
