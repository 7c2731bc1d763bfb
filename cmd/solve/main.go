// Command solve prints a jump sequence that clears a triangular peg-solitaire
// board down to one peg, one "row, col -> row, col" line per move.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/annolangen/solitaire/internal/logx"
	"github.com/annolangen/solitaire/internal/peg"
	"github.com/annolangen/solitaire/internal/solver"
)

const (
	exitOK = iota
	exitInvalid
	exitNoSolution
	exitTimeout
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		rows    = fs.Int("rows", peg.StandardRows, "board rows")
		vacant  = fs.Int("vacant", 12, "index of the initially empty hole")
		all     = fs.Bool("all", false, "solve every starting vacancy and print a summary")
		memo    = fs.Bool("memo", false, "cache dead-end positions")
		timeout = fs.Duration("timeout", time.Minute, "give up after this long (0 = no limit)")
		verbose = fs.Bool("v", false, "draw each position and log search stats")
	)
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := logx.NewLogger(stderr, level)

	b, err := peg.BuildBoard(*rows)
	if err != nil {
		logger.Error().Err(err).Msg("build board")
		return exitInvalid
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}
	s := solver.New(b, solver.Config{Logger: logger, Memo: *memo})

	if *all {
		return runAll(ctx, s, stdout, logger)
	}

	start, err := b.InitialPosition(*vacant)
	if err != nil {
		logger.Error().Err(err).Msg("initial position")
		return exitInvalid
	}
	res, err := s.Solve(ctx, start)
	if err != nil {
		logger.Error().Err(err).Msg("solve")
		return searchFailed(err)
	}
	if !res.Solved {
		fmt.Fprintf(stdout, "no solution from vacancy %d on %d rows\n", *vacant, *rows)
		return exitNoSolution
	}

	if *verbose {
		p := start
		fmt.Fprint(stdout, b.Render(p))
		for _, m := range res.Moves {
			p = m.Apply(p)
			fmt.Fprintf(stdout, "\n%s\n%s", m, b.Render(p))
		}
		fmt.Fprintf(stdout, "\n%d moves, %d nodes, %v\n\n", len(res.Moves), res.Stats.Nodes, res.Stats.Duration)
	}
	fmt.Fprintln(stdout, peg.FormatSolution(res.Moves))
	return exitOK
}

func runAll(ctx context.Context, s *solver.Solver, stdout io.Writer, logger zerolog.Logger) int {
	results, err := s.SolveAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("solve all")
		return searchFailed(err)
	}
	code := exitOK
	for v, res := range results {
		if !res.Solved {
			fmt.Fprintf(stdout, "%2d: no solution (%d nodes)\n", v, res.Stats.Nodes)
			code = exitNoSolution
			continue
		}
		h, _ := s.Board().Hole(v)
		fmt.Fprintf(stdout, "%2d (%d, %d): %d moves (%d nodes)\n", v, h.Row, h.Col, len(res.Moves), res.Stats.Nodes)
	}
	return code
}

// searchFailed maps a search error to an exit code.
func searchFailed(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return exitTimeout
	}
	return exitInvalid
}
