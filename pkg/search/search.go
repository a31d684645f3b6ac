// Package search contains search functionality and utilities.
package search

import (
	"context"
	"errors"
	"fmt"
	"github.com/dmitrov/rookery/pkg/board"
	"github.com/dmitrov/rookery/pkg/eval"
	"time"
)

// ErrHalted is an error indicating that the search was halted.
var ErrHalted = errors.New("search halted")

// Evaluator is a static position evaluator, as consumed by quiescence search. Re-declared here
// (rather than importing eval.Evaluator directly at every call site) so the search package's
// interfaces are self-contained and easy to mock in tests.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) eval.Pawns
}

// QuietSearch resolves a position to a stable (quiescent) score, expanding captures and
// promotions beyond the nominal search horizon to avoid the horizon effect.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score)
}

// Context carries the mutable, per-search state that a Search implementation threads through
// its recursion: the alpha-beta window, the shared transposition table, evaluation noise, and
// (for pondering/analysis breakdowns) a forced first line to explore.
type Context struct {
	Alpha, Beta eval.Score
	TT          TranspositionTable
	Noise       eval.Random
	History     *History
	Ponder      []board.Move
}

// Search implements search of the game tree to a given depth. Thread-safe; a caller drives
// iterative deepening by calling Search again with an incremented depth and a shared TT.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}

// PV represents the principal variation found by a completed (or halted) search at some depth.
type PV struct {
	Depth int           // depth of search, in plies
	Moves []board.Move  // principal variation, best move first
	Score eval.Score    // evaluation of the principal variation
	Nodes uint64        // interior/leaf nodes searched
	Time  time.Duration // wall-clock time taken by the search
	Hash  float64       // transposition table utilization [0;1]
}

func (p PV) String() string {
	pv := board.PrintMoves(p.Moves)
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v", p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), pv)
}
