package peg

import (
	"fmt"
	"iter"
	"strings"
)

// Direction is one of the six jump axes.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	UpLeft
	Down
	DownRight
)

// Directions lists the jump axes in enumeration order.
var Directions = [...]Direction{Left, Right, Up, UpLeft, Down, DownRight}

// step is the (row, col) delta of one step along each direction.
var step = [...]struct{ dr, dc int }{
	Left:      {0, -1},
	Right:     {0, 1},
	Up:        {-1, 0},
	UpLeft:    {-1, -1},
	Down:      {1, 0},
	DownRight: {1, 1},
}

var directionNames = [...]string{"left", "right", "up", "up-left", "down", "down-right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// applies reports whether a jump from (row, col) along d stays on a board
// with the given number of rows.
func (d Direction) applies(row, col, rows int) bool {
	switch d {
	case Left:
		return col > 1
	case Right:
		return col+2 <= row
	case Up:
		return row > 1 && col < row-2
	case UpLeft:
		return row > 1 && col > 1
	case Down, DownRight:
		return row < rows-2
	}
	return false
}

// Move is a single jump: the peg on Start jumps over Middle into Destination.
type Move struct {
	Start       Hole      `json:"start"`
	Middle      Hole      `json:"middle"`
	Destination Hole      `json:"destination"`
	Direction   Direction `json:"-"`
}

// Mask returns the three bits the move toggles.
func (m Move) Mask() Position {
	return bit(m.Start.Index) | bit(m.Middle.Index) | bit(m.Destination.Index)
}

// Legal reports whether m can be applied to p: Start and Middle hold pegs
// and Destination is empty.
func (m Move) Legal(p Position) bool {
	return p.Occupied(m.Start.Index) && p.Occupied(m.Middle.Index) && !p.Occupied(m.Destination.Index)
}

// Apply returns the position after making m on p. It panics if m is not
// legal on p; moves must only be applied to the position they came from.
func (m Move) Apply(p Position) Position {
	if !m.Legal(p) {
		panic(fmt.Sprintf("peg: move %s applied to position %s it is not legal on", m, p))
	}
	return p ^ m.Mask()
}

// String renders the move as "<row>, <col> -> <row>, <col>".
func (m Move) String() string {
	return fmt.Sprintf("%d, %d -> %d, %d", m.Start.Row, m.Start.Col, m.Destination.Row, m.Destination.Col)
}

// Moves yields the legal moves from p in row-major hole order and, per hole,
// in Directions order. The sequence can be ranged over any number of times.
func (b *Board) Moves(p Position) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for _, h := range b.holes {
			if !p.Occupied(h.Index) {
				continue
			}
			for _, d := range Directions {
				if !d.applies(h.Row, h.Col, b.rows) {
					continue
				}
				s := step[d]
				mid := b.at(h.Row+s.dr, h.Col+s.dc)
				dst := b.at(h.Row+2*s.dr, h.Col+2*s.dc)
				if !p.Occupied(mid.Index) || p.Occupied(dst.Index) {
					continue
				}
				if !yield(Move{Start: h, Middle: mid, Destination: dst, Direction: d}) {
					return
				}
			}
		}
	}
}

// EnumerateMoves collects the legal moves from p in enumeration order.
func EnumerateMoves(p Position, b *Board) []Move {
	var out []Move
	for m := range b.Moves(p) {
		out = append(out, m)
	}
	return out
}

// Replay applies moves to start in order, checking each one, and returns
// the final position.
func Replay(b *Board, start Position, moves []Move) (Position, error) {
	if !b.Contains(start) {
		return 0, fmt.Errorf("%w: start %s", ErrForeignPosition, start)
	}
	p := start
	for i, m := range moves {
		if !m.Legal(p) {
			return 0, fmt.Errorf("move %d (%s) is not legal on %s", i, m, p)
		}
		p ^= m.Mask()
	}
	return p, nil
}

// FormatSolution renders moves one per line in order.
func FormatSolution(moves []Move) string {
	lines := make([]string, len(moves))
	for i, m := range moves {
		lines[i] = m.String()
	}
	return strings.Join(lines, "\n")
}
