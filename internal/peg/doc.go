// Package peg models the triangular peg-solitaire board: hole geometry,
// bitmask positions and single-jump moves.
package peg
