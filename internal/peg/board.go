package peg

import (
	"errors"
	"fmt"
	"strings"
)

// MaxRows is the largest board whose holes fit in a Position mask.
const MaxRows = 10

// StandardRows is the row count of the classic 15-hole puzzle.
const StandardRows = 5

var (
	// ErrInvalidRows is returned by BuildBoard for row counts outside [2, MaxRows].
	ErrInvalidRows = errors.New("invalid row count")
	// ErrHoleOutOfRange is returned when a hole index is outside [0, Total).
	ErrHoleOutOfRange = errors.New("hole index out of range")
	// ErrForeignPosition is returned for positions with bits beyond the board.
	ErrForeignPosition = errors.New("position does not fit board")
)

// Hole is one slot on the board.
type Hole struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Index int `json:"index"`
}

// Board is the immutable triangular layout for a given number of rows.
// Row r holds r+1 holes; indices are assigned row-major, left to right.
type Board struct {
	rows  int
	holes []Hole // by index
}

// BuildBoard builds the triangular geometry with the given number of rows.
func BuildBoard(rows int) (*Board, error) {
	if rows < 2 || rows > MaxRows {
		return nil, fmt.Errorf("%w: %d (want 2..%d)", ErrInvalidRows, rows, MaxRows)
	}
	b := &Board{
		rows:  rows,
		holes: make([]Hole, 0, rows*(rows+1)/2),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c <= r; c++ {
			b.holes = append(b.holes, Hole{Row: r, Col: c, Index: len(b.holes)})
		}
	}
	return b, nil
}

// MustBuildBoard is BuildBoard for row counts known to be valid.
func MustBuildBoard(rows int) *Board {
	b, err := BuildBoard(rows)
	if err != nil {
		panic(err)
	}
	return b
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Total returns the number of holes, rows*(rows+1)/2.
func (b *Board) Total() int { return len(b.holes) }

// Holes returns the holes ordered by index. The slice must not be modified.
func (b *Board) Holes() []Hole { return b.holes }

// Row returns the holes of row r, left to right.
func (b *Board) Row(r int) []Hole {
	start := r * (r + 1) / 2
	return b.holes[start : start+r+1]
}

// Hole returns the hole at index i.
func (b *Board) Hole(i int) (Hole, error) {
	if i < 0 || i >= len(b.holes) {
		return Hole{}, fmt.Errorf("%w: %d (board has %d holes)", ErrHoleOutOfRange, i, len(b.holes))
	}
	return b.holes[i], nil
}

// At returns the hole at (row, col). ok is false outside the triangle.
func (b *Board) At(row, col int) (h Hole, ok bool) {
	if row < 0 || row >= b.rows || col < 0 || col > row {
		return Hole{}, false
	}
	return b.holes[row*(row+1)/2+col], true
}

// at is At without the bounds check; callers have already gated (row, col).
func (b *Board) at(row, col int) Hole {
	return b.holes[row*(row+1)/2+col]
}

// Mask returns the Position with every hole occupied.
func (b *Board) Mask() Position {
	return Position(1)<<uint(len(b.holes)) - 1
}

// InitialPosition returns the full board with only the given hole empty.
func (b *Board) InitialPosition(vacant int) (Position, error) {
	if vacant < 0 || vacant >= len(b.holes) {
		return 0, fmt.Errorf("%w: %d (board has %d holes)", ErrHoleOutOfRange, vacant, len(b.holes))
	}
	return b.Mask() &^ bit(vacant), nil
}

// Contains reports whether p has no bits set outside the board.
func (b *Board) Contains(p Position) bool {
	return p&^b.Mask() == 0
}

// Render draws p as a centered triangle, x for a peg and . for an empty hole.
func (b *Board) Render(p Position) string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		sb.WriteString(strings.Repeat(" ", b.rows-r-1))
		for i, h := range b.Row(r) {
			if i > 0 {
				sb.WriteByte(' ')
			}
			if p.Occupied(h.Index) {
				sb.WriteByte('x')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
