// Package board contains the chess board representation and move generation utilities.
package board

import "fmt"

const (
	repetition3Limit   = 3
	repetition5Limit   = 5
	noprogressPlyLimit = 100
)

type node struct {
	pos        Position
	hash       ZobristHash
	noprogress int

	next Move // if not current
	prev *node
}

// Board represents a chess board, metadata and history of positions, and adjudicates game
// results, notably the various draw conditions that a bare Position cannot decide on its own.
// Not thread-safe; a search goroutine should Fork its own Board.
type Board struct {
	zt          *ZobristTable
	repetitions map[ZobristHash]int

	fullmoves int
	turn      Color
	result    Result
	ply       int
	current   *node
}

// NewBoard builds a board around the given starting position, side to move, no-progress ply count
// (half-move clock) and full-move number, as decoded from a FEN record.
func NewBoard(zt *ZobristTable, pos Position, turn Color, noprogress, fullmoves int) *Board {
	current := &node{
		pos:        pos,
		noprogress: noprogress,
		hash:       zt.Hash(&pos, turn),
	}

	repetitions := map[ZobristHash]int{
		current.hash: 1,
	}

	return &Board{
		zt:          zt,
		repetitions: repetitions,
		fullmoves:   fullmoves,
		turn:        turn,
		current:     current,
	}
}

// Fork branches off a new board, sharing the node history for past positions. If forked, the shared
// history should not be mutated (via PopMove past the fork point) as the forward moves might then
// become stale for the sibling.
func (b *Board) Fork() *Board {
	fork := &Board{
		zt:          b.zt,
		repetitions: map[ZobristHash]int{},
		fullmoves:   b.fullmoves,
		turn:        b.turn,
		result:      b.result,
		ply:         b.ply,
		current: &node{
			pos:        b.current.pos,
			hash:       b.current.hash,
			noprogress: b.current.noprogress,
			prev:       b.current.prev,
		},
	}
	for k, v := range b.repetitions {
		fork.repetitions[k] = v
	}

	return fork
}

func (b *Board) Position() *Position {
	return &b.current.pos
}

func (b *Board) Hash() ZobristHash {
	return b.current.hash
}

func (b *Board) Turn() Color {
	return b.turn
}

func (b *Board) NoProgress() int {
	return b.current.noprogress
}

func (b *Board) FullMoves() int {
	return b.fullmoves
}

// Ply returns the number of half-moves played since the board was created, used by the
// transposition table's replacement policy.
func (b *Board) Ply() int {
	return b.ply
}

func (b *Board) Result() Result {
	return b.result
}

// PushMove attempts to make a pseudo-legal move. Returns true iff legal, in which case the board
// now reflects the resulting position and any draw condition it triggers.
func (b *Board) PushMove(m Move) bool {
	if b.result.Reason == Checkmate || b.result.Reason == Stalemate {
		return false // there are no legal moves
	} // else: ignore draws that are not always called correctly.

	next, ok := b.current.pos.Move(b.turn, m)
	if !ok {
		return false
	}

	// (1) Move is legal. Create new node.

	n := &node{
		pos:        next,
		hash:       b.zt.Move(b.current.hash, &b.current.pos, b.turn, m),
		noprogress: updateNoProgress(b.current.noprogress, m),
		prev:       b.current,
	}

	b.current.next = m
	b.current = n

	// (2) Update board-level metadata.

	b.ply++
	b.turn = b.turn.Opponent()
	b.repetitions[b.current.hash]++
	if b.turn == White {
		b.fullmoves++
	}

	// (3) Determine if draw condition applies.

	b.result = Result{}

	if b.repetitions[b.current.hash] >= repetition3Limit {
		actual := b.identicalPositionCount(b.current, b.turn, b.current.noprogress)
		switch {
		case actual >= repetition5Limit:
			b.result = Result{Outcome: Draw, Reason: Repetition5}
		case actual >= repetition3Limit:
			b.result = Result{Outcome: Draw, Reason: Repetition3}
		default:
			// zobrist collision: not an actual repetition
		}
	}

	if b.current.noprogress >= noprogressPlyLimit {
		b.result = Result{Outcome: Draw, Reason: NoProgress}
	}

	if m.IsCapture() || m.IsPromotion() {
		if b.current.pos.HasInsufficientMaterial() {
			b.result = Result{Outcome: Draw, Reason: InsufficientMaterial}
		}
	}

	return true
}

// PopMove undoes the last move, if any, and returns it.
func (b *Board) PopMove() (Move, bool) {
	if b.current.prev == nil {
		return Move{}, false
	}

	// (1) Update board-level metadata.

	b.ply--
	b.turn = b.turn.Opponent()
	b.repetitions[b.current.hash]--
	b.result = Result{} // a legal move was made, so not terminal
	if b.turn == Black {
		b.fullmoves--
	}

	// (2) Pop current node.

	b.current = b.current.prev
	m := b.current.next
	b.current.next = Move{}
	return m, true
}

// PushNullMove makes a null move: the side to move passes without moving a piece. Used by null-move
// pruning to get a cheap "what if the opponent got a free move" bound. Clears any en passant target,
// since the right to capture it lapses after any other move, real or null.
func (b *Board) PushNullMove() {
	pos := b.current.pos
	hash := b.current.hash
	if ep, ok := pos.EnPassant(); ok {
		hash ^= b.zt.enpassant[ep]
		pos.hasEP = false
	}
	hash ^= b.zt.turn[b.turn]
	hash ^= b.zt.turn[b.turn.Opponent()]

	n := &node{
		pos:        pos,
		hash:       hash,
		noprogress: b.current.noprogress,
		prev:       b.current,
	}
	b.current.next = Move{}
	b.current = n

	b.ply++
	b.turn = b.turn.Opponent()
	b.repetitions[b.current.hash]++
	if b.turn == White {
		b.fullmoves++
	}
	b.result = Result{}
}

// PopNullMove undoes the last PushNullMove.
func (b *Board) PopNullMove() {
	b.ply--
	b.turn = b.turn.Opponent()
	b.repetitions[b.current.hash]--
	b.result = Result{}
	if b.turn == Black {
		b.fullmoves--
	}
	b.current = b.current.prev
}

// AdjudicateNoLegalMoves adjudicates the position assuming no legal moves exist for the side to
// move: checkmate if in check, stalemate otherwise. The caller is responsible for having confirmed
// LegalMoves is empty; this method does not re-derive it.
func (b *Board) AdjudicateNoLegalMoves() Result {
	result := Result{Outcome: Draw, Reason: Stalemate}
	if b.Position().IsChecked(b.Turn()) {
		result = Result{Outcome: Loss(b.Turn()), Reason: Checkmate}
	}
	b.Adjudicate(result)
	return result
}

// Adjudicate sets the board's result directly, used by engine/search layers that resign or claim
// a draw outside of the board's own detection (e.g. a UCI "draw" agreement).
func (b *Board) Adjudicate(result Result) {
	b.result = result
}

func (b *Board) identicalPositionCount(n *node, turn Color, limit int) int {
	ret := 1
	tmp := n.prev
	t := b.turn.Opponent()

	for i := 1; i < limit && tmp != nil; i++ {
		if tmp.hash == n.hash && turn == t && tmp.pos == n.pos {
			ret++
		}
		tmp = tmp.prev
		t = t.Opponent()
	}
	return ret
}

// LastMove returns the last move, if any.
func (b *Board) LastMove() (Move, bool) {
	if b.current.prev != nil {
		return b.current.prev.next, true
	}
	return Move{}, false
}

// HasCastled returns true iff the color has castled at any point in this board's history.
func (b *Board) HasCastled(c Color) bool {
	t := b.turn.Opponent()
	cur := b.current.prev

	for cur != nil {
		if t == c && (cur.next.Type == QueenSideCastle || cur.next.Type == KingSideCastle) {
			return true
		}
		t = t.Opponent()
		cur = cur.prev
	}
	return false
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pos=%v, turn=%v, hash=%x (%v) noprogress=%v, fullmoves=%v, result=%v}", &b.current.pos, b.turn, b.current.hash, b.repetitions[b.current.hash], b.current.noprogress, b.fullmoves, b.result)
}

func updateNoProgress(old int, m Move) int {
	if m.Type != Normal {
		return 0
	}
	return old + 1
}
