package peg

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Position is board occupancy as a bitmask: bit i set means hole i holds a peg.
// Bits at or above the board's Total are always zero.
type Position uint64

func bit(i int) Position { return Position(1) << uint(i) }

// Occupied reports whether hole i holds a peg.
func (p Position) Occupied(i int) bool {
	return p&bit(i) != 0
}

// PegCount returns the number of occupied holes.
func (p Position) PegCount() int {
	return bits.OnesCount64(uint64(p))
}

// String returns the mask as lowercase hex, for example "efff".
func (p Position) String() string {
	return strconv.FormatUint(uint64(p), 16)
}

// ParsePosition parses a hex mask as produced by String and checks it fits b.
func ParsePosition(b *Board, s string) (Position, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse position %q: %w", s, err)
	}
	p := Position(v)
	if !b.Contains(p) {
		return 0, fmt.Errorf("%w: position %s sets holes beyond %d", ErrForeignPosition, s, b.Total()-1)
	}
	return p, nil
}
