package main

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-mazesolver/maze"
	"github.com/beka-birhanu/vinom-mazesolver/maze/bfs"
	"github.com/beka-birhanu/vinom-mazesolver/mazeio"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve <maze> [output]",
	Short: "Solve a maze file",
	Long: `Solves the maze in <maze>, picking the decoder from the file extension
(.txt, .yaml/.yml, .png/.gif/.jpg, .pb).

Without [output] the solved maze is printed as ASCII with the path drawn as '*'.
An image [output] gets the path painted green on top of the maze.

Examples:
  mazesolver solve maze.txt
  mazesolver solve maze.png solved.png`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ""
		if len(args) == 2 {
			out = args[1]
		}
		return runSolve(cmd.OutOrStdout(), args[0], out)
	},
}

func runSolve(stdout io.Writer, in, out string) error {
	m, src, err := mazeio.Load(in)
	if err != nil {
		return fmt.Errorf("loading %s: %w", in, err)
	}

	var stats bfs.Stats
	started := time.Now()
	res, err := maze.SolveResult(m, bfs.New(bfs.WithStatsHook(func(st bfs.Stats) { stats = st })))
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	if res.Found {
		fmt.Fprintf(stdout, "Path found: %d hops, %d cells expanded in %s\n", res.Hops(), stats.Expanded, elapsed)
	} else {
		fmt.Fprintf(stdout, "No path found: %d cells expanded in %s\n", stats.Expanded, elapsed)
	}

	if out == "" {
		_, err = io.WriteString(stdout, mazeio.FormatText(m, res.Path))
		return err
	}
	return writeSolution(out, m, src, res.Path)
}

func writeSolution(out string, m *maze.Maze, src image.Image, path []maze.Cell) error {
	var buf bytes.Buffer
	switch mazeio.FormatOf(out) {
	case mazeio.FormatImage:
		if src == nil {
			src = mazeio.Image(m)
		}
		if err := mazeio.RenderSolution(&buf, src, path); err != nil {
			return err
		}
	default:
		buf.WriteString(mazeio.FormatText(m, path))
	}
	return os.WriteFile(out, buf.Bytes(), 0o644)
}
