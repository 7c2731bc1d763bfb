package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/annolangen/solitaire/internal/peg"
	"github.com/annolangen/solitaire/internal/solver"
)

// Config configures the router.
type Config struct {
	DefaultRows   int           // rows used when the request has no rows parameter
	SearchTimeout time.Duration // deadline for each solve request (0 = none)
	Solver        solver.Config
}

// Handler serves the solver over HTTP. One Solver is kept per row count so
// dead-end caches survive across requests.
type Handler struct {
	cfg Config
	log zerolog.Logger

	mu      sync.Mutex
	solvers map[int]*solver.Solver
}

// NewRouter creates the HTTP router.
func NewRouter(log zerolog.Logger, cfg Config) http.Handler {
	if cfg.Solver.Memo && cfg.Solver.MemoLimit <= 0 {
		cfg.Solver.MemoLimit = solver.DefaultMemoLimit
	}
	h := &Handler{
		cfg:     cfg,
		log:     log,
		solvers: make(map[int]*solver.Solver),
	}
	if cfg.Solver.Memo {
		log.Info().Int("limit", cfg.Solver.MemoLimit).Msg("dead-end memo enabled")
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(h.health))
	mux.Handle("/readyz", http.HandlerFunc(h.health))
	mux.Handle("/v1/board", http.HandlerFunc(h.board))
	mux.Handle("/v1/moves", http.HandlerFunc(h.moves))
	mux.Handle("/v1/solve", http.HandlerFunc(h.solve))
	mux.Handle("/v1/solve/all", http.HandlerFunc(h.solveAll))
	mux.Handle("/v1/stats", http.HandlerFunc(h.stats))

	// pprof endpoints
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return CORS(RequestID(AccessLog(log, Compress(mux))))
}

// solverFor returns the shared solver for rows, building it on first use.
func (h *Handler) solverFor(rows int) (*solver.Solver, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.solvers[rows]; ok {
		return s, nil
	}
	b, err := peg.BuildBoard(rows)
	if err != nil {
		return nil, err
	}
	s := solver.New(b, h.cfg.Solver)
	h.solvers[rows] = s
	return s, nil
}

// boardParam resolves the rows query parameter to a solver.
func (h *Handler) boardParam(r *http.Request) (*solver.Solver, error) {
	rows := h.cfg.DefaultRows
	if v := r.URL.Query().Get("rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid rows parameter: " + err.Error())
		}
		rows = n
	}
	return h.solverFor(rows)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) board(w http.ResponseWriter, r *http.Request) {
	s, err := h.boardParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, ToBoardResponse(s.Board()))
}

func (h *Handler) moves(w http.ResponseWriter, r *http.Request) {
	s, err := h.boardParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b := s.Board()
	pos, err := positionParam(r, b)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	moves := peg.EnumerateMoves(pos, b)
	resp := MovesResponse{
		Position: pos.String(),
		Pegs:     pos.PegCount(),
		Moves:    make([]MoveResponse, 0, len(moves)),
	}
	for _, m := range moves {
		resp.Moves = append(resp.Moves, ToMoveResponse(m, pos))
	}
	writeJSON(w, resp)
}

// positionParam reads either position (hex mask) or vacant (hole index).
func positionParam(r *http.Request, b *peg.Board) (peg.Position, error) {
	q := r.URL.Query()
	if v := q.Get("position"); v != "" {
		return peg.ParsePosition(b, v)
	}
	v := q.Get("vacant")
	if v == "" {
		return 0, errors.New("missing position or vacant parameter")
	}
	idx, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New("invalid vacant parameter: " + err.Error())
	}
	return b.InitialPosition(idx)
}

func (h *Handler) solve(w http.ResponseWriter, r *http.Request) {
	s, err := h.boardParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pos, err := positionParam(r, s.Board())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := h.searchContext(r)
	defer cancel()
	res, err := s.Solve(ctx, pos)
	if err != nil {
		if errors.Is(err, solver.ErrNoPegs) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.searchFailed(w, r, err, "solve")
		return
	}
	if res.Solved {
		if _, err := peg.Replay(s.Board(), res.Start, res.Moves); err != nil {
			h.log.Error().Err(err).Str("rid", GetRequestID(r.Context())).Msg("solution failed replay")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, ToSolveResponse(res))
}

func (h *Handler) solveAll(w http.ResponseWriter, r *http.Request) {
	s, err := h.boardParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := h.searchContext(r)
	defer cancel()
	results, err := s.SolveAll(ctx)
	if err != nil {
		h.searchFailed(w, r, err, "solve all")
		return
	}
	resp := SolveAllResponse{
		Rows:    s.Board().Rows(),
		Results: make([]SolveResponse, 0, len(results)),
	}
	for _, res := range results {
		if res.Solved {
			resp.Solved++
		}
		resp.Results = append(resp.Results, ToSolveResponse(res))
	}
	writeJSON(w, resp)
}

// searchContext bounds a search by the request and SearchTimeout.
func (h *Handler) searchContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.cfg.SearchTimeout > 0 {
		return context.WithTimeout(r.Context(), h.cfg.SearchTimeout)
	}
	return context.WithCancel(r.Context())
}

// searchFailed reports a search that stopped before finishing.
func (h *Handler) searchFailed(w http.ResponseWriter, r *http.Request, err error, op string) {
	h.log.Warn().Err(err).Str("rid", GetRequestID(r.Context())).Msg(op)
	if errors.Is(err, context.DeadlineExceeded) {
		http.Error(w, "search timed out", http.StatusGatewayTimeout)
		return
	}
	http.Error(w, "search interrupted", http.StatusServiceUnavailable)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	out := make(map[string]solver.Totals, len(h.solvers))
	for rows, s := range h.solvers {
		out[strconv.Itoa(rows)] = s.Totals()
	}
	h.mu.Unlock()
	writeJSON(w, map[string]any{
		"memo":   h.cfg.Solver.Memo,
		"boards": out,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
