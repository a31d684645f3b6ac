package eval

import "fmt"

// Pawns is a position or move score denominated in pawns, positive favoring the side to move.
// A human-readable centipawn value is simply Pawns*100.
type Pawns float32

// Score is a search result: either a heuristic evaluation in Pawns, or a forced mate at some
// ply distance. Positive favors the side to move at the node the Score was computed for, per
// the negamax convention: Negate flips it as the score is passed up to the parent.
//
// Mate is the signed ply-distance to a forced mate: positive means the side to move delivers
// it, negative means the side to move is on the losing end. Zero means no forced mate was
// found in the searched line, in which case Pawns holds the heuristic evaluation. The zero
// Score is deliberately invalid (see IsInvalid) so an unset Context.Alpha/Beta is detectable.
type Score struct {
	Pawns Pawns
	Mate  int
	valid bool
}

var (
	// ZeroScore is the valid, neutral score (a dead draw).
	ZeroScore = Score{valid: true}
	// InvalidScore is a score that carries no information, e.g. a cancelled search.
	InvalidScore = Score{}
	// NegInfScore is smaller than any other score: the side to move has just been mated.
	NegInfScore = Score{Mate: -1, valid: true}
	// InfScore is larger than any other score: the side to move has just delivered mate.
	InfScore = Score{Mate: 1, valid: true}
)

// HeuristicScore wraps a static evaluation into a Score with no forced mate.
func HeuristicScore(p Pawns) Score {
	return Score{Pawns: p, valid: true}
}

// MateInXScore constructs a Score for a forced mate delivered by the side to move in n plies.
func MateInXScore(n int) Score {
	return Score{Mate: n, valid: true}
}

// IsInvalid returns true iff the score carries no information (the zero Score).
func (s Score) IsInvalid() bool {
	return !s.valid
}

// IsHeuristic returns true iff the score is a static evaluation rather than a forced mate.
func (s Score) IsHeuristic() bool {
	return s.Mate == 0
}

// MateDistance returns the ply distance to the forced mate and true, or (0, false) if the
// score is not a mate score.
func (s Score) MateDistance() (int, bool) {
	if s.Mate == 0 {
		return 0, false
	}
	if s.Mate < 0 {
		return -s.Mate, true
	}
	return s.Mate, true
}

// Negate flips the score to the opponent's point of view, per the negamax convention.
func (s Score) Negate() Score {
	return Score{Pawns: -s.Pawns, Mate: -s.Mate, valid: s.valid}
}

// IncrementMateDistance adds one ply to a mate score as it is passed up the search tree.
// Non-mate scores are returned unchanged, and so is NegInfScore (the side to move is mated
// on the board), so that the mating move scores as a mate in one ply at its parent.
func IncrementMateDistance(s Score) Score {
	switch {
	case s.Mate > 0:
		return Score{Pawns: s.Pawns, Mate: s.Mate + 1, valid: s.valid}
	case s.Mate < -1:
		return Score{Pawns: s.Pawns, Mate: s.Mate - 1, valid: s.valid}
	default:
		return s
	}
}

// mateBase puts any forced mate far outside the range of a heuristic evaluation, so that a
// mate score always outranks a heuristic one and a faster mate always outranks a slower one.
const mateBase = 1 << 20

func (s Score) value() float64 {
	switch {
	case s.Mate > 0:
		return mateBase - float64(s.Mate)
	case s.Mate < 0:
		return -mateBase - float64(s.Mate)
	default:
		return float64(s.Pawns)
	}
}

// Less orders scores from the same point of view: worse (for the side to move) first.
func (s Score) Less(o Score) bool {
	return s.value() < o.value()
}

// Max returns the larger (better) of the two scores.
func Max(a, b Score) Score {
	if a.Less(b) {
		return b
	}
	return a
}

// Min returns the smaller (worse) of the two scores.
func Min(a, b Score) Score {
	if b.Less(a) {
		return b
	}
	return a
}

func (s Score) String() string {
	if s.Mate != 0 {
		return fmt.Sprintf("mate(%+d)", s.Mate)
	}
	return fmt.Sprintf("%.2f", s.Pawns)
}
