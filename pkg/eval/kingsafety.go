package eval

import (
	"context"
	"github.com/dmitrov/rookery/pkg/board"
)

// kingSafetyWeight is the 20 centipawn unit applied to the king safety adjustments below.
const kingSafetyWeight = Pawns(20) / 100

// kingPinWeight penalizes each pin targeting the king: a pinned defender can't always move to
// meet a threat, so the king is more exposed than the raw material on the board suggests.
const kingPinWeight = Pawns(10) / 100

// KingSafety penalizes a king caught in the center files, a king with pinned defenders, and
// rewards one tucked into a castled corner of its own back rank.
type KingSafety struct{}

func (KingSafety) Evaluate(ctx context.Context, b *board.Board) Pawns {
	pos := b.Position()
	turn := b.Turn()
	return kingSafetyFor(pos, turn) - kingSafetyFor(pos, turn.Opponent())
}

func kingSafetyFor(pos *board.Position, c board.Color) Pawns {
	sq := pos.King(c)
	f, r := sq.File().V(), pstRank(c, sq)

	var score Pawns
	switch {
	case r == 0 && (f <= 1 || f >= 6):
		score = kingSafetyWeight
	case r <= 3 && f >= 2 && f <= 5:
		score = -kingSafetyWeight
	}

	pins := FindPins(pos, c, board.King)
	score -= Pawns(len(pins)) * kingPinWeight
	return score
}
