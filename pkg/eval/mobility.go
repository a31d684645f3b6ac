package eval

import (
	"context"
	"github.com/dmitrov/rookery/pkg/board"
)

// mobilityWeight is the per-destination bonus for a legal-looking officer move, 10 centipawns
// as in the standard simplified evaluation function.
const mobilityWeight = Pawns(10) / 100

// officerKinds are the pieces whose destination count is cheap to compute from a rotated
// bitboard and meaningfully reflects activity -- pawns and the king are excluded.
var officerKinds = [...]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen}

// Mobility rewards the side with more squares available to its knights, bishops, rooks and
// queens, using the same Attackboard lookup movegen uses to enumerate officer moves.
type Mobility struct{}

func (Mobility) Evaluate(ctx context.Context, b *board.Board) Pawns {
	pos := b.Position()
	turn := b.Turn()
	return mobilityFor(pos, turn) - mobilityFor(pos, turn.Opponent())
}

func mobilityFor(pos *board.Position, c board.Color) Pawns {
	own := pos.Color(c)
	rotated := pos.Rotated()

	var n int
	for _, p := range officerKinds {
		for _, sq := range pos.Piece(c, p).ToSquares() {
			targets := board.Attackboard(rotated, sq, p) &^ own
			n += targets.PopCount()
		}
	}
	return Pawns(n) * mobilityWeight
}
