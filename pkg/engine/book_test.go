package engine_test

import (
	"context"
	"github.com/dmitrov/rookery/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestBookFromLines(t *testing.T) {
	ctx := context.Background()

	book, err := engine.NewBook([]engine.Line{
		{"e2e4", "d7d5", "d2d4"},
		{"e2e4", "d7d6"},
		{"d2d4", "d7d6"},
	}, 42)
	require.NoError(t, err)

	// Single-candidate histories resolve deterministically.
	move, found, err := book.Find(ctx, "e2e4 d7d5")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "D2D4", move.String())

	move, found, err = book.Find(ctx, "d2d4")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "d7d6", move.String())

	// Histories past the end of every line have no candidates.
	_, found, err = book.Find(ctx, "e2e4 d7d6")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = book.Find(ctx, "d2d4 d7d6")
	require.NoError(t, err)
	assert.False(t, found)

	// The empty history has two candidates: e2e4 and d2d4.
	move, found, err = book.Find(ctx, "")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, []string{"e2e4", "d2d4"}, move.String())
}

func TestBookFromText(t *testing.T) {
	ctx := context.Background()

	text := `
# comment
e2e4 e7e5 -> g1f3 # 3
e2e4 e7e5 -> f1c4 # 1

d2d4 -> d7d5
`
	book, err := engine.ParseBook(strings.NewReader(text), 7)
	require.NoError(t, err)

	move, found, err := book.Find(ctx, "d2d4")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "d7d5", move.String())

	counts := map[string]int{}
	for i := 0; i < 100; i++ {
		move, found, err := book.Find(ctx, "e2e4 e7e5")
		require.NoError(t, err)
		require.True(t, found)
		counts[move.String()]++
	}
	assert.Greater(t, counts["g1f3"], counts["f1c4"]) // weighted 3:1

	_, found, err = book.Find(ctx, "g1f3")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestParseBookMalformed(t *testing.T) {
	_, err := engine.ParseBook(strings.NewReader("not a valid entry"), 1)
	assert.Error(t, err)

	_, err = engine.ParseBook(strings.NewReader("e2e4 -> zz99"), 1)
	assert.Error(t, err)
}
