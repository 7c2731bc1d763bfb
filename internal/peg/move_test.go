package peg

import (
	"errors"
	"testing"
)

func TestEnumerateMoves_StandardStarts(t *testing.T) {
	b := MustBuildBoard(StandardRows)
	tests := []struct {
		name   string
		vacant int
		want   []string
	}{
		{"vacant 12", 12, []string{"2, 0 -> 4, 2", "2, 2 -> 4, 2", "4, 0 -> 4, 2", "4, 4 -> 4, 2"}},
		// The up jump from (2, 0) is gated out; only the up-left jump reaches the apex.
		{"vacant 0", 0, []string{"2, 2 -> 0, 0"}},
		{"vacant 4", 4, []string{"4, 1 -> 2, 1", "4, 3 -> 2, 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := b.InitialPosition(tt.vacant)
			if err != nil {
				t.Fatalf("InitialPosition: %v", err)
			}
			moves := EnumerateMoves(p, b)
			if len(moves) != len(tt.want) {
				t.Fatalf("got %d moves %v, want %v", len(moves), moves, tt.want)
			}
			for i, m := range moves {
				if m.String() != tt.want[i] {
					t.Errorf("move %d = %q, want %q", i, m.String(), tt.want[i])
				}
			}
		})
	}
}

func TestEnumerateMoves_Invariants(t *testing.T) {
	b := MustBuildBoard(StandardRows)
	// Walk a handful of positions reachable by always taking the first move.
	for v := 0; v < b.Total(); v++ {
		p, _ := b.InitialPosition(v)
		for {
			moves := EnumerateMoves(p, b)
			if len(moves) == 0 {
				break
			}
			for _, m := range moves {
				if !p.Occupied(m.Start.Index) || !p.Occupied(m.Middle.Index) || p.Occupied(m.Destination.Index) {
					t.Fatalf("move %s not legal on %s", m, p)
				}
				if m.Start == m.Middle || m.Middle == m.Destination || m.Start == m.Destination {
					t.Fatalf("move %s reuses a hole", m)
				}
				s := step[m.Direction]
				if m.Middle.Row-m.Start.Row != s.dr || m.Middle.Col-m.Start.Col != s.dc ||
					m.Destination.Row-m.Middle.Row != s.dr || m.Destination.Col-m.Middle.Col != s.dc {
					t.Fatalf("move %s is not collinear along %s", m, m.Direction)
				}
				next := m.Apply(p)
				if diff := next ^ p; diff != m.Mask() || diff.PegCount() != 3 {
					t.Fatalf("move %s toggled %s, want %s", m, diff, m.Mask())
				}
				if next.PegCount() != p.PegCount()-1 {
					t.Fatalf("move %s: peg count %d -> %d", m, p.PegCount(), next.PegCount())
				}
				if next^m.Mask() != p {
					t.Fatalf("move %s: mask is not self-inverse", m)
				}
			}
			p = moves[0].Apply(p)
		}
	}
}

func TestMoves_Restartable(t *testing.T) {
	b := MustBuildBoard(StandardRows)
	p, _ := b.InitialPosition(12)
	first := EnumerateMoves(p, b)
	second := EnumerateMoves(p, b)
	if len(first) != len(second) {
		t.Fatalf("enumeration length changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("move %d differs: %s vs %s", i, first[i], second[i])
		}
	}

	n := 0
	for range b.Moves(p) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break yielded %d moves", n)
	}
}

func TestEnumerateMoves_SmallBoards(t *testing.T) {
	// Two rows have no interior: nothing can jump.
	b := MustBuildBoard(2)
	p, _ := b.InitialPosition(0)
	if moves := EnumerateMoves(p, b); len(moves) != 0 {
		t.Errorf("rows=2: got moves %v", moves)
	}

	b = MustBuildBoard(3)
	p, _ = b.InitialPosition(3) // (2, 0)
	moves := EnumerateMoves(p, b)
	if len(moves) != 2 || moves[0].String() != "0, 0 -> 2, 0" || moves[1].String() != "2, 2 -> 2, 0" {
		t.Errorf("rows=3 vacant (2, 0): got %v", moves)
	}
}

func TestApply_PanicsOnIllegalMove(t *testing.T) {
	b := MustBuildBoard(StandardRows)
	p, _ := b.InitialPosition(12)
	m := EnumerateMoves(p, b)[0]
	defer func() {
		if recover() == nil {
			t.Error("Apply on a full board did not panic")
		}
	}()
	m.Apply(b.Mask())
}

func TestReplayAndFormat(t *testing.T) {
	b := MustBuildBoard(StandardRows)
	start, _ := b.InitialPosition(12)
	m1 := EnumerateMoves(start, b)[0]
	mid := m1.Apply(start)
	m2 := EnumerateMoves(mid, b)[0]

	end, err := Replay(b, start, []Move{m1, m2})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if end != m2.Apply(mid) {
		t.Errorf("Replay = %s, want %s", end, m2.Apply(mid))
	}
	if _, err := Replay(b, start, []Move{m1, m1}); err == nil {
		t.Error("Replay accepted a repeated move")
	}
	if _, err := Replay(b, b.Mask()|1<<15, nil); !errors.Is(err, ErrForeignPosition) {
		t.Errorf("Replay foreign start err = %v, want ErrForeignPosition", err)
	}

	got := FormatSolution([]Move{m1, m2})
	want := m1.String() + "\n" + m2.String()
	if got != want {
		t.Errorf("FormatSolution = %q, want %q", got, want)
	}
	if got := FormatSolution(nil); got != "" {
		t.Errorf("FormatSolution(nil) = %q, want empty", got)
	}
}
