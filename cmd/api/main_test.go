package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/annolangen/solitaire/internal/peg"
	"github.com/annolangen/solitaire/internal/solver"
)

func TestNewServer(t *testing.T) {
	srv, err := newServer(context.Background(), zerolog.Nop(), ":0", peg.StandardRows, time.Second, solver.Config{Memo: true})
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	if srv.Addr != ":0" {
		t.Errorf("Addr = %q", srv.Addr)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/solve?vacant=12", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("solve status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewServer_InvalidRows(t *testing.T) {
	for _, rows := range []int{1, peg.MaxRows + 1} {
		if _, err := newServer(context.Background(), zerolog.Nop(), ":0", rows, time.Second, solver.Config{}); !errors.Is(err, peg.ErrInvalidRows) {
			t.Errorf("rows=%d: err = %v, want ErrInvalidRows", rows, err)
		}
	}
}
