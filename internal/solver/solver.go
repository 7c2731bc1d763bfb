// Package solver finds jump sequences that reduce a peg-solitaire position
// to a single peg, by depth-bounded backtracking over peg.Board moves.
package solver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/annolangen/solitaire/internal/peg"
)

var (
	// ErrNoPegs is returned when the start position is empty.
	ErrNoPegs = errors.New("position has no pegs")
	// ErrForeignPosition is returned for positions with bits beyond the board.
	ErrForeignPosition = peg.ErrForeignPosition
)

// Config configures a Solver.
type Config struct {
	Logger    zerolog.Logger // zero value discards
	Memo      bool           // record dead ends in a DeadEndCache shared by all searches
	MemoLimit int            // maximum recorded dead ends (0 = DefaultMemoLimit)
	Workers   int            // SolveAll parallelism (0 = runtime.NumCPU())
}

// DefaultMemoLimit bounds the dead-end cache when Config.MemoLimit is unset.
const DefaultMemoLimit = 1 << 20

// Stats describes one search.
type Stats struct {
	Nodes     uint64        `json:"nodes"`
	CacheHits uint64        `json:"cache_hits"`
	Duration  time.Duration `json:"duration_ns"`
}

// Result is the outcome of a search. Solved is false when no sequence
// reaches a single peg; that is not an error.
type Result struct {
	Start  peg.Position
	Moves  []peg.Move
	Solved bool
	Stats  Stats
}

// Totals aggregates Stats over the lifetime of a Solver.
type Totals struct {
	Searches     uint64 `json:"searches"`
	Solved       uint64 `json:"solved"`
	Nodes        uint64 `json:"nodes"`
	CacheHits    uint64 `json:"cache_hits"`
	CacheEntries int    `json:"cache_entries"`
}

// Solver runs searches on one board. It is safe for concurrent use.
type Solver struct {
	board *peg.Board
	cfg   Config
	log   zerolog.Logger
	cache *DeadEndCache

	searches  atomic.Uint64
	solved    atomic.Uint64
	nodes     atomic.Uint64
	cacheHits atomic.Uint64
}

// New returns a Solver for b.
func New(b *peg.Board, cfg Config) *Solver {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	s := &Solver{
		board: b,
		cfg:   cfg,
		log:   cfg.Logger.With().Str("component", "solver").Int("rows", b.Rows()).Logger(),
	}
	if cfg.Memo {
		if cfg.MemoLimit <= 0 {
			cfg.MemoLimit = DefaultMemoLimit
		}
		s.cache = NewDeadEndCache(cfg.MemoLimit)
		s.cfg.MemoLimit = cfg.MemoLimit
	}
	return s
}

// Board returns the board the solver searches on.
func (s *Solver) Board() *peg.Board { return s.board }

// Solve searches b from start with no deadline.
func Solve(start peg.Position, b *peg.Board) (Result, error) {
	return New(b, Config{}).Solve(context.Background(), start)
}

// Solve searches for a sequence of PegCount()-1 moves from start. A single
// peg is already solved with no moves. The context is checked before every
// move attempt; on cancellation the context error is returned.
func (s *Solver) Solve(ctx context.Context, start peg.Position) (Result, error) {
	if !s.board.Contains(start) {
		return Result{}, fmt.Errorf("%w: %s on %d holes", ErrForeignPosition, start, s.board.Total())
	}
	pegs := start.PegCount()
	if pegs == 0 {
		return Result{}, ErrNoPegs
	}

	t0 := time.Now()
	sr := &search{
		ctx:   ctx,
		board: s.board,
		cache: s.cache,
		path:  make([]peg.Move, pegs-1),
	}
	ok := sr.dfs(pegs-1, start)

	res := Result{
		Start: start,
		Stats: Stats{Nodes: sr.nodes, CacheHits: sr.hits, Duration: time.Since(t0)},
	}
	s.searches.Add(1)
	s.nodes.Add(sr.nodes)
	s.cacheHits.Add(sr.hits)

	if err := ctx.Err(); err != nil && !ok {
		s.log.Debug().Str("start", start.String()).Uint64("nodes", sr.nodes).Err(err).Msg("search canceled")
		return res, fmt.Errorf("search %s: %w", start, err)
	}
	if ok {
		res.Solved = true
		res.Moves = sr.path
		s.solved.Add(1)
	}

	s.log.Debug().
		Str("start", start.String()).
		Int("pegs", pegs).
		Bool("solved", ok).
		Uint64("nodes", sr.nodes).
		Uint64("cache_hits", sr.hits).
		Dur("dur", res.Stats.Duration).
		Msg("search finished")
	return res, nil
}

// Totals returns counters accumulated over every search so far.
func (s *Solver) Totals() Totals {
	t := Totals{
		Searches:  s.searches.Load(),
		Solved:    s.solved.Load(),
		Nodes:     s.nodes.Load(),
		CacheHits: s.cacheHits.Load(),
	}
	if s.cache != nil {
		t.CacheEntries = s.cache.Len()
	}
	return t
}

// search holds the state of one depth-first run.
type search struct {
	ctx   context.Context
	board *peg.Board
	cache *DeadEndCache
	path  []peg.Move // path[i] is the i-th move of the line being explored
	nodes uint64
	hits  uint64
}

// dfs reports whether depth more moves from p reach a single peg. On success
// path[len(path)-depth:] holds those moves.
func (sr *search) dfs(depth int, p peg.Position) bool {
	sr.nodes++
	if depth == 0 {
		return true
	}
	if sr.cache != nil && sr.cache.Dead(depth, p) {
		sr.hits++
		return false
	}
	for m := range sr.board.Moves(p) {
		if sr.ctx.Err() != nil {
			return false
		}
		if sr.dfs(depth-1, m.Apply(p)) {
			sr.path[len(sr.path)-depth] = m
			return true
		}
	}
	// A canceled subtree is not proven dead.
	if sr.cache != nil && sr.ctx.Err() == nil {
		sr.cache.MarkDead(depth, p)
	}
	return false
}
