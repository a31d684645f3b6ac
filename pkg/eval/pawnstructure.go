package eval

import (
	"context"
	"github.com/dmitrov/rookery/pkg/board"
)

// pawnStructureWeight is the per-weakness penalty, 15 centipawns, for a doubled or isolated
// pawn.
const pawnStructureWeight = Pawns(15) / 100

// PawnStructure penalizes doubled pawns (more than one pawn on a file) and isolated pawns (no
// friendly pawn on either adjacent file).
type PawnStructure struct{}

func (PawnStructure) Evaluate(ctx context.Context, b *board.Board) Pawns {
	pos := b.Position()
	turn := b.Turn()
	return pawnStructureFor(pos, turn) - pawnStructureFor(pos, turn.Opponent())
}

func pawnStructureFor(pos *board.Position, c board.Color) Pawns {
	var perFile [8]int
	for _, sq := range pos.Piece(c, board.Pawn).ToSquares() {
		perFile[sq.File().V()]++
	}

	var weaknesses int
	for f := 0; f < 8; f++ {
		if perFile[f] == 0 {
			continue
		}
		if perFile[f] > 1 {
			weaknesses += perFile[f] - 1
		}
		left := f > 0 && perFile[f-1] > 0
		right := f < 7 && perFile[f+1] > 0
		if !left && !right {
			weaknesses++
		}
	}
	return -Pawns(weaknesses) * pawnStructureWeight
}
