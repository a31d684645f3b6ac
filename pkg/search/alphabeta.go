package search

import (
	"context"
	"github.com/dmitrov/rookery/pkg/board"
	"github.com/dmitrov/rookery/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// AlphaBeta implements alpha-beta pruning. Pseudo-code:
//
// function alphabeta(node, depth, α, β, maximizingPlayer) is
//
//	if depth = 0 or node is a terminal node then
//	    return the heuristic value of node
//	if maximizingPlayer then
//	    value := −∞
//	    for each child of node do
//	        value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* β cutoff *)
//	    return value
//	else
//	    value := +∞
//	    for each child of node do
//	        value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
//	        β := min(β, value)
//	        if β ≤ α then
//	            break (* α cutoff *)
//	    return value
//
// See: https://en.wikipedia.org/wiki/Alpha–beta_pruning.

// Forward-pruning tunables. Depths and margins are in plies and pawns respectively, chosen
// conservatively: enough to matter at engine-test depths without pruning away tactics a deeper
// search would have found.
const (
	nullMoveMinDepth  = 3
	nullMoveReduction = 2

	razorMaxDepth = 3
	razorMargin   = eval.Pawns(2.5)

	futilityMaxDepth = 2
	futilityMargin   = eval.Pawns(1.2)

	nullWindowEpsilon = eval.Pawns(0.01)
)

type AlphaBeta struct {
	Explore Exploration
	Eval    QuietSearch

	// Static, if set, is used to estimate a position's value cheaply -- without searching -- as
	// the basis for null-move, razoring and futility pruning decisions. A nil Static disables
	// all three; the search then degrades gracefully to plain alpha-beta.
	Static Evaluator
}

func (p AlphaBeta) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runAlphaBeta{
		explore: fullIfNotSet(p.Explore),
		eval:    p.Eval,
		static:  p.Static,
		tt:      sctx.TT,
		noise:   sctx.Noise,
		history: sctx.History,
		ponder:  sctx.Ponder,
		b:       b,
	}
	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score, moves := run.search(ctx, depth, low, high)
	if contextx.IsCancelled(ctx) {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runAlphaBeta struct {
	explore Exploration
	eval    QuietSearch
	static  Evaluator
	tt      TranspositionTable
	noise   eval.Random
	history *History
	b       *board.Board
	nodes   uint64

	ponder []board.Move
}

// maxMovePriority clamps a history score to what MovePriority (int16) can hold, so a long run
// of cutoffs on the same piece/square can't wrap around into a negative priority.
const maxMovePriority = board.MovePriority(1<<15 - 1)

func clampMovePriority(v int32) board.MovePriority {
	if v > int32(maxMovePriority) {
		return maxMovePriority
	}
	return board.MovePriority(v)
}

// hasNonPawnMaterial reports whether the side has any piece besides pawns and king -- the usual
// guard against null-move pruning going wrong in king-and-pawn zugzwang positions.
func hasNonPawnMaterial(pos *board.Position, c board.Color) bool {
	return pos.Piece(c, board.Knight) != 0 || pos.Piece(c, board.Bishop) != 0 ||
		pos.Piece(c, board.Rook) != 0 || pos.Piece(c, board.Queen) != 0
}

// search returns the positive score for the color.
func (m *runAlphaBeta) search(ctx context.Context, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return eval.InvalidScore, nil
	}
	if m.b.Result().Outcome == board.Draw {
		return eval.ZeroScore, nil
	}

	var best board.Move
	if bound, d, score, mv, ok := m.tt.Read(m.b.Hash()); ok {
		best = mv
		if d >= depth {
			switch bound {
			case ExactBound:
				return score, nil // cutoff: known exact value
			case LowerBound:
				if !score.Less(beta) {
					return score, nil // cutoff: known to fail high here too
				}
			case UpperBound:
				if score.Less(alpha) {
					return score, nil // cutoff: known to fail low here too
				}
			}
		} // else: not deep enough to trust
	}

	if depth == 0 {
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise}
		nodes, score := m.eval.QuietSearch(ctx, sctx, m.b)
		m.nodes += nodes

		m.tt.Write(m.b.Hash(), ExactBound, m.b.Ply(), 0, score, board.Move{})
		return score, nil
	}

	inCheck := m.b.Position().IsChecked(m.b.Turn())

	// Null-move pruning: if the side to move can skip a turn and still fail high, the position is
	// so good that a real move would too, barring zugzwang. Disabled near mate scores, in check,
	// right after another null move, and when only king and pawns remain (where passing is often
	// the best move, not a null one).
	last, hasLast := m.b.LastMove()
	afterNull := hasLast && last.IsNull()
	if depth >= nullMoveMinDepth && !inCheck && !afterNull && m.static != nil && beta.IsHeuristic() && hasNonPawnMaterial(m.b.Position(), m.b.Turn()) {
		m.b.PushNullMove()
		nullBeta := beta.Negate()
		nullAlpha := eval.HeuristicScore(nullBeta.Pawns - nullWindowEpsilon)
		score, _ := m.search(ctx, depth-1-nullMoveReduction, nullAlpha, nullBeta)
		m.b.PopNullMove()

		if !contextx.IsCancelled(ctx) && !score.IsInvalid() {
			score = eval.IncrementMateDistance(score).Negate()
			if !score.Less(beta) {
				return score, nil // cutoff
			}
		}
	}

	// Razoring: at shallow depth, if the static evaluation is so far below alpha that only a
	// tactical shot could recover it, drop straight into quiescence rather than searching quietly.
	if depth <= razorMaxDepth && !inCheck && m.static != nil && alpha.IsHeuristic() {
		static := eval.HeuristicScore(m.static.Evaluate(ctx, m.b))
		margin := eval.Pawns(depth) * razorMargin
		if static.Pawns+margin < alpha.Pawns {
			sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise}
			nodes, score := m.eval.QuietSearch(ctx, sctx, m.b)
			m.nodes += nodes
			if score.Less(alpha) {
				return score, nil // confirmed: no tactical recovery
			} // else: static eval was misleading, fall through to a full search
		}
	}

	m.nodes++

	// Futility pruning: at the frontier, a quiet move that cannot plausibly close the gap to
	// alpha is not worth searching -- only captures, promotions and check evasions are explored.
	futile := false
	if depth <= futilityMaxDepth && !inCheck && m.static != nil && alpha.IsHeuristic() {
		static := eval.HeuristicScore(m.static.Evaluate(ctx, m.b))
		margin := eval.Pawns(depth) * futilityMargin
		futile = static.Pawns+margin <= alpha.Pawns
	}

	origAlpha := alpha
	hasLegalMove := false
	bound := ExactBound
	var pv []board.Move

	priority, explore := m.explore(ctx, m.b)

	// Quiet moves have no MVVLVA priority of their own (it returns zero for them); rank those by
	// history instead, so a move that kept causing cutoffs elsewhere in the tree gets tried early.
	turn := m.b.Turn()
	history := m.history
	base := priority
	priority = func(mv board.Move) board.MovePriority {
		if p := base(mv); p != 0 {
			return p
		}
		return clampMovePriority(history.Get(turn, mv))
	}

	if len(m.ponder) > 0 {
		explore = m.ponder[0].Equals // overwrite: use ponder move even if not intended to be explored
		m.ponder = m.ponder[1:]
	}

	moves := board.NewMoveList(m.b.Position().PseudoLegalMoves(m.b.Turn()), board.First(best, priority))
	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !m.b.PushMove(move) {
			continue // skip: not legal
		}
		hasLegalMove = true

		tactical := move.IsCapture() || move.IsPromotion() || m.b.Position().IsChecked(m.b.Turn())
		if explore(move) && (!futile || tactical) {
			score, rem := m.search(ctx, depth-1, beta.Negate(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
			if alpha.Less(score) {
				alpha = score
				pv = append([]board.Move{move}, rem...)
			}
		}

		m.b.PopMove()

		if alpha == beta || beta.Less(alpha) {
			bound = LowerBound
			m.history.Bonus(m.b.Turn(), move, depth)
			break // cutoff
		}
	}

	if bound != LowerBound && !origAlpha.Less(alpha) {
		bound = UpperBound
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.NegInfScore, nil
		}
		return eval.ZeroScore, nil
	}

	m.tt.Write(m.b.Hash(), bound, m.b.Ply(), depth, alpha, firstOrNone(pv))
	return alpha, pv
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}

func fullIfNotSet(p Exploration) Exploration {
	if p == nil {
		return FullExploration
	}
	return p
}
