package eval

import (
	"context"
	"github.com/dmitrov/rookery/pkg/board"
)

const bishopPairBonus = Pawns(30) / 100

// BishopPair rewards holding both bishops, which together cover every square color and tend
// to outvalue a bishop and knight in open positions.
type BishopPair struct{}

func (BishopPair) Evaluate(ctx context.Context, b *board.Board) Pawns {
	pos := b.Position()
	turn := b.Turn()
	return bishopPairFor(pos, turn) - bishopPairFor(pos, turn.Opponent())
}

func bishopPairFor(pos *board.Position, c board.Color) Pawns {
	if pos.Piece(c, board.Bishop).PopCount() >= 2 {
		return bishopPairBonus
	}
	return 0
}

const (
	rookSeventhRankBonus = Pawns(20) / 100
	rookOpenFileBonus    = Pawns(15) / 100
)

// RookPlacement rewards a rook on the seventh rank, where it harasses pawns and cuts off the
// enemy king, and a rook on a file with no pawns of either color anywhere on it.
type RookPlacement struct{}

func (RookPlacement) Evaluate(ctx context.Context, b *board.Board) Pawns {
	pos := b.Position()
	turn := b.Turn()
	return rookPlacementFor(pos, turn) - rookPlacementFor(pos, turn.Opponent())
}

func rookPlacementFor(pos *board.Position, c board.Color) Pawns {
	pawns := pos.Piece(board.White, board.Pawn) | pos.Piece(board.Black, board.Pawn)

	var bonus Pawns
	for _, sq := range pos.Piece(c, board.Rook).ToSquares() {
		if pstRank(c, sq) == 6 {
			bonus += rookSeventhRankBonus
		}
		if pawns&board.BitFile(sq.File()) == 0 {
			bonus += rookOpenFileBonus
		}
	}
	return bonus
}
