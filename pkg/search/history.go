package search

import "github.com/dmitrov/rookery/pkg/board"

// History tracks how often a quiet move has caused a beta cutoff, weighted by the depth at
// which it happened, so that moves which have paid off deep in the tree are preferred over
// ones that only worked near the leaves. Indexed by side to move, piece kind and destination
// square rather than the full move, so a cutoff learned in one position also helps order a
// transposed or nearby one. Captures and promotions are ordered by MVVLVA instead and never
// recorded here.
//
// The zero value is usable; a nil *History (e.g. a Context with no history configured)
// degrades every move to priority zero.
type History struct {
	score [board.NumColors][board.NumPieces][64]int32
}

// Bonus credits a quiet move that caused a beta cutoff at the given depth.
func (h *History) Bonus(c board.Color, m board.Move, depth int) {
	if h == nil || m.IsCapture() || m.IsPromotion() {
		return
	}
	h.score[c][m.Piece][m.To] += int32(depth * depth)
}

// Get returns the accumulated history score for a move, zero if it has never caused a cutoff.
func (h *History) Get(c board.Color, m board.Move) int32 {
	if h == nil {
		return 0
	}
	return h.score[c][m.Piece][m.To]
}
