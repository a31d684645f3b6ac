// Package eval contains position evaluation logic and utilities.
package eval

import (
	"context"
	"github.com/dmitrov/rookery/pkg/board"
)

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns the position score in Pawns.
	Evaluate(ctx context.Context, b *board.Board) Pawns
}

// Material returns the nominal material advantage balance for the side to move.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board) Pawns {
	pos := b.Position()
	turn := b.Turn()

	var pawns Pawns
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		pawns += Pawns(pos.Piece(turn, p).PopCount()-pos.Piece(turn.Opponent(), p).PopCount()) * NominalValue(p)
	}
	return pawns
}

// NominalValue is the absolute value of a piece kind, in pawns. Delegates to Piece.NominalValue,
// the canonical centipawn table, so move ordering and material evaluation never disagree with
// each other about what a piece is worth.
func NominalValue(p board.Piece) Pawns {
	return Pawns(p.NominalValue()) / 100
}

// Composite sums the scores of a set of evaluators, letting independent heuristics -- material,
// piece placement, mobility, pawn structure and the like -- be composed into a single static
// evaluation.
type Composite []Evaluator

func (c Composite) Evaluate(ctx context.Context, b *board.Board) Pawns {
	var sum Pawns
	for _, e := range c {
		sum += e.Evaluate(ctx, b)
	}
	return sum
}

// NominalValueGain is the nominal material gain for a move.
func NominalValueGain(m board.Move) Pawns {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}
