package search_test

import (
	"context"
	"github.com/dmitrov/rookery/pkg/board"
	"github.com/dmitrov/rookery/pkg/board/fen"
	"github.com/dmitrov/rookery/pkg/eval"
	"github.com/dmitrov/rookery/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newTestBoard(f string) (*board.Board, error) {
	pos, turn, noprogress, fullmoves, err := fen.Decode(f)
	if err != nil {
		return nil, err
	}
	zt := board.NewZobristTable(1)
	return board.NewBoard(zt, pos, turn, noprogress, fullmoves), nil
}

func TestAlphaBeta(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		fen      string
		depth    int
		expected eval.Score
	}{
		{fen.Initial, 3, eval.ZeroScore},

		{"k7/7R/6R1/8/8/8/8/7K w - - 0 1", 1, eval.MateInXScore(1)},
		{"k7/7R/6R1/8/8/8/8/7K w - - 0 1", 2, eval.MateInXScore(1)},
		{"k7/7R/6R1/8/8/8/8/7K w - - 0 1", 3, eval.MateInXScore(1)},
	}

	ab := search.AlphaBeta{
		Explore: search.FullExploration,
		Eval: search.Quiescence{
			Explore: search.QuiescenceExploration,
			Eval:    eval.Material{},
		},
	}

	for _, tt := range tests {
		b, err := newTestBoard(tt.fen)
		require.NoError(t, err)

		sctx := &search.Context{TT: search.NoTranspositionTable{}}
		n, actual, _, err := ab.Search(ctx, sctx, b, tt.depth)
		require.NoError(t, err)

		assert.Lessf(t, n, uint64(200000), "too many nodes: %v", tt.fen)
		assert.Equalf(t, tt.expected, actual, "failed: %v", tt.fen)
	}
}

func TestAlphaBetaFindsMatingMove(t *testing.T) {
	ctx := context.Background()

	b, err := newTestBoard("k7/7R/6R1/8/8/8/8/7K w - - 0 1")
	require.NoError(t, err)

	ab := search.AlphaBeta{
		Explore: search.FullExploration,
		Eval: search.Quiescence{
			Explore: search.QuiescenceExploration,
			Eval:    eval.Material{},
		},
	}

	sctx := &search.Context{TT: search.NoTranspositionTable{}}
	_, actual, moves, err := ab.Search(ctx, sctx, b, 2)
	require.NoError(t, err)

	assert.Equal(t, eval.MateInXScore(1), actual)
	require.Len(t, moves, 1)
	assert.Equal(t, "g6g8", moves[0].String())
}
