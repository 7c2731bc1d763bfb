package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/annolangen/solitaire/internal/httpapi"
	"github.com/annolangen/solitaire/internal/logx"
	"github.com/annolangen/solitaire/internal/peg"
	"github.com/annolangen/solitaire/internal/solver"
)

func main() {
	defaultAddr := ":8015"
	if env := os.Getenv("PEGSOLVE_ADDR"); env != "" {
		defaultAddr = env
	}

	var (
		addr          = flag.String("addr", defaultAddr, "listen address")
		rows          = flag.Int("rows", peg.StandardRows, "default board rows")
		memo          = flag.Bool("memo", true, "cache dead-end positions across searches")
		memoLimit     = flag.Int("memo-limit", solver.DefaultMemoLimit, "maximum cached dead ends per board")
		workers       = flag.Int("workers", 0, "parallel searches for /v1/solve/all (0 = NumCPU)")
		searchTimeout = flag.Duration("search-timeout", 30*time.Second, "per-request search deadline (0 = none)")
		logLevel      = flag.String("log-level", os.Getenv("PEGSOLVE_LOG_LEVEL"), "log level (debug, info, warn, error)")
	)
	flag.Parse()

	level, err := logx.ParseLevel(*logLevel)
	if err != nil {
		fallback := logx.NewLogger(os.Stdout, zerolog.InfoLevel)
		fallback.Fatal().Err(err).Msg("parse flags")
	}
	logger := logx.NewLogger(os.Stdout, level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := solver.Config{
		Logger:    logger,
		Memo:      *memo,
		MemoLimit: *memoLimit,
		Workers:   *workers,
	}
	srv, err := newServer(ctx, logger, *addr, *rows, *searchTimeout, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("configure server")
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Int("rows", *rows).Bool("memo", *memo).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("api server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http server shutdown error")
	}
	logger.Info().Msg("shutdown complete")
}

// newServer validates the default board and builds the HTTP server. Request
// contexts derive from ctx so shutdown cancels in-flight searches.
func newServer(ctx context.Context, logger zerolog.Logger, addr string, rows int, searchTimeout time.Duration, cfg solver.Config) (*http.Server, error) {
	if _, err := peg.BuildBoard(rows); err != nil {
		return nil, err
	}
	return &http.Server{
		Addr: addr,
		Handler: httpapi.NewRouter(logger, httpapi.Config{
			DefaultRows:   rows,
			SearchTimeout: searchTimeout,
			Solver:        cfg,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}, nil
}
