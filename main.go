package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mazesolver",
	Short: "Solve and generate walled grid mazes",
	Long: `mazesolver finds shortest 8-connected paths through walled grid mazes.

Mazes are read as ASCII grids, YAML documents, images or protobuf messages.
The serve command exposes the solver over HTTP with cached, persisted results.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
