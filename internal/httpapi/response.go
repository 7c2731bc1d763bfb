package httpapi

import (
	"github.com/annolangen/solitaire/internal/peg"
	"github.com/annolangen/solitaire/internal/solver"
)

// BoardResponse describes the board geometry.
type BoardResponse struct {
	Rows  int          `json:"rows"`
	Total int          `json:"total"`
	Holes [][]peg.Hole `json:"holes"` // by row
}

type MovesResponse struct {
	Position string         `json:"position"` // hex mask
	Pegs     int            `json:"pegs"`
	Moves    []MoveResponse `json:"moves"`
}

type MoveResponse struct {
	Start       peg.Hole `json:"start"`
	Middle      peg.Hole `json:"middle"`
	Destination peg.Hole `json:"destination"`
	Direction   string   `json:"direction"`
	Text        string   `json:"text"`  // "r, c -> r, c"
	Child       string   `json:"child"` // hex mask after the move
}

type SolveResponse struct {
	Start  string         `json:"start"`
	Pegs   int            `json:"pegs"`
	Solved bool           `json:"solved"`
	Moves  []MoveResponse `json:"moves,omitempty"`
	Text   string         `json:"text,omitempty"` // one move per line
	Stats  solver.Stats   `json:"stats"`
}

type SolveAllResponse struct {
	Rows    int             `json:"rows"`
	Solved  int             `json:"solved"`
	Results []SolveResponse `json:"results"`
}

// ToBoardResponse converts a board to its JSON form.
func ToBoardResponse(b *peg.Board) *BoardResponse {
	resp := &BoardResponse{
		Rows:  b.Rows(),
		Total: b.Total(),
		Holes: make([][]peg.Hole, b.Rows()),
	}
	for r := range resp.Holes {
		resp.Holes[r] = b.Row(r)
	}
	return resp
}

// ToMoveResponse converts m, enumerated from pos, to its JSON form.
func ToMoveResponse(m peg.Move, pos peg.Position) MoveResponse {
	return MoveResponse{
		Start:       m.Start,
		Middle:      m.Middle,
		Destination: m.Destination,
		Direction:   m.Direction.String(),
		Text:        m.String(),
		Child:       m.Apply(pos).String(),
	}
}

// ToSolveResponse converts a search result to its JSON form.
func ToSolveResponse(res solver.Result) SolveResponse {
	resp := SolveResponse{
		Start:  res.Start.String(),
		Pegs:   res.Start.PegCount(),
		Solved: res.Solved,
		Stats:  res.Stats,
	}
	if !res.Solved {
		return resp
	}
	resp.Moves = make([]MoveResponse, 0, len(res.Moves))
	p := res.Start
	for _, m := range res.Moves {
		resp.Moves = append(resp.Moves, ToMoveResponse(m, p))
		p = m.Apply(p)
	}
	resp.Text = peg.FormatSolution(res.Moves)
	return resp
}
