package solver

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// SolveAll searches from every single-vacancy start, one per hole, with at
// most Config.Workers searches running at once. results[i] is the search
// with hole i empty. The first error cancels the remaining searches.
func (s *Solver) SolveAll(ctx context.Context) ([]Result, error) {
	t0 := time.Now()
	results := make([]Result, s.board.Total())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for v := range results {
		g.Go(func() error {
			start, err := s.board.InitialPosition(v)
			if err != nil {
				return err
			}
			res, err := s.Solve(gctx, start)
			if err != nil {
				return err
			}
			results[v] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	solved := 0
	for _, r := range results {
		if r.Solved {
			solved++
		}
	}
	s.log.Info().
		Int("starts", len(results)).
		Int("solved", solved).
		Int("workers", s.cfg.Workers).
		Dur("dur", time.Since(t0)).
		Msg("solved all vacancies")
	return results, nil
}
