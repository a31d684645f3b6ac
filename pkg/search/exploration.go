package search

import (
	"context"
	"github.com/dmitrov/rookery/pkg/board"
	"github.com/dmitrov/rookery/pkg/eval"
)

// Exploration defines move selection and priority in a given position. Limited exploration is required
// by quiescence search and can be used for forward pruning in full search. Default: explore all
// moves in MVVLVA order.
type Exploration func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn)

func FullExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return MVVLVA, IsAnyMove
}

// QuiescenceExploration limits search to captures and promotions that are not an obvious loss
// of material -- the standard quiescence move set, used to resolve the horizon effect without
// expanding the full tree. b is shared with the caller and reflects the position as of the move
// under consideration, since the predicate is only consulted after the move has been pushed.
func QuiescenceExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return MVVLVA, func(m board.Move) bool {
		return IsQuickGain(b, m)
	}
}

// IsQuickGain selects promotions and captures that are not an obvious loss of material: either
// the capture itself nets material by nominal value, or -- if it doesn't, a queen taking a
// knight, say -- the piece is not simply lost on the square it lands on.
func IsQuickGain(b *board.Board, m board.Move) bool {
	if m.IsPromotion() {
		return true
	}
	if !m.IsCapture() {
		return false
	}
	if eval.NominalValue(m.Piece) <= eval.NominalValue(m.Capture) {
		return true
	}
	return eval.IsSafe(b.Position(), b.Turn().Opponent(), m.Piece, m.To)
}

// Selection returns a move order and priority for exploring the given moves.
func Selection(list []board.Move) (board.MovePriorityFn, board.MovePredicateFn) {
	rank := map[board.Move]board.MovePriority{}
	for i, m := range list {
		rank[m] = board.MovePriority(len(list) - i)
	}

	priority := func(move board.Move) board.MovePriority {
		return rank[move]
	}
	pick := func(move board.Move) bool {
		_, ok := rank[move]
		return ok
	}
	return priority, pick
}

// MVVLVA implements the MVV-LVA move priority.
func MVVLVA(m board.Move) board.MovePriority {
	if p := board.MovePriority(100 * eval.NominalValueGain(m)); p > 0 {
		return p - board.MovePriority(eval.NominalValue(m.Piece))
	}
	return 0
}

// IsAnyMove selects all moves.
func IsAnyMove(m board.Move) bool {
	return true
}
