package board

// Package-level move generation: pseudo-legal generation per piece kind (spec §4.3) plus the
// copy-apply-check legality filter. Kept in its own file since it is the single largest and most
// bug-prone concern in the board package.

// PseudoLegalMoves generates all pseudo-legal moves for turn: moves that obey piece movement
// rules but may leave the mover's own king in check.
func (p *Position) PseudoLegalMoves(turn Color) []Move {
	moves := make([]Move, 0, 48)
	moves = p.genPawnMoves(turn, moves)
	moves = p.genOfficerMoves(turn, Knight, moves)
	moves = p.genOfficerMoves(turn, Bishop, moves)
	moves = p.genOfficerMoves(turn, Rook, moves)
	moves = p.genOfficerMoves(turn, Queen, moves)
	moves = p.genOfficerMoves(turn, King, moves)
	moves = p.genCastles(turn, moves)
	return moves
}

// LegalMoves generates pseudo-legal moves and filters out any that leave the mover's own king
// attacked, per the copy-apply-check discipline (spec §9).
func (p *Position) LegalMoves(turn Color) []Move {
	pseudo := p.PseudoLegalMoves(turn)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if _, ok := p.Move(turn, m); ok {
			legal = append(legal, m)
		}
	}
	return legal
}

// IsLegalMove returns true iff m is a legal move for turn in this position. Used to validate
// externally supplied moves (UCI "position ... moves") without trusting their metadata: the
// supplied move is matched against the generated list by From/To/Promotion only.
func (p *Position) IsLegalMove(turn Color, m Move) (Move, bool) {
	for _, candidate := range p.LegalMoves(turn) {
		if candidate.Equals(m) {
			return candidate, true
		}
	}
	return Move{}, false
}

func (p *Position) genPawnMoves(turn Color, moves []Move) []Move {
	forward := 8
	startRank, promoRank := Rank2, PawnPromotionRank(turn)
	if turn == Black {
		forward = -8
		startRank = Rank7
	}

	pawns := p.Piece(turn, Pawn)
	empty := p.Empty()
	opponent := p.Color(turn.Opponent())

	for _, sq := range pawns.ToSquares() {
		single := Square(int(sq) + forward)
		if single.IsValid() && empty.IsSet(single) {
			moves = appendPawnAdvance(moves, sq, single, promoRank, Push)

			if sq.Rank() == startRank {
				double := Square(int(sq) + 2*forward)
				if empty.IsSet(double) {
					moves = append(moves, Move{Type: Jump, Piece: Pawn, From: sq, To: double})
				}
			}
		}

		captures := PawnCaptureboard(turn, BitMask(sq)) & opponent
		for _, to := range captures.ToSquares() {
			_, captured, _ := p.Square(to)
			if promoRank.IsSet(to) {
				for _, promo := range []Piece{Queen, Rook, Bishop, Knight} {
					moves = append(moves, Move{Type: CapturePromotion, Piece: Pawn, From: sq, To: to, Promotion: promo, Capture: captured})
				}
			} else {
				moves = append(moves, Move{Type: Capture, Piece: Pawn, From: sq, To: to, Capture: captured})
			}
		}

		if ep, ok := p.EnPassant(); ok {
			if PawnCaptureboard(turn, BitMask(sq)).IsSet(ep) {
				moves = append(moves, Move{Type: EnPassant, Piece: Pawn, From: sq, To: ep, Capture: Pawn})
			}
		}
	}
	return moves
}

func appendPawnAdvance(moves []Move, from, to Square, promoRank Bitboard, t MoveType) []Move {
	if promoRank.IsSet(to) {
		for _, promo := range []Piece{Queen, Rook, Bishop, Knight} {
			moves = append(moves, Move{Type: Promotion, Piece: Pawn, From: from, To: to, Promotion: promo})
		}
		return moves
	}
	return append(moves, Move{Type: t, Piece: Pawn, From: from, To: to})
}

func (p *Position) genOfficerMoves(turn Color, piece Piece, moves []Move) []Move {
	own := p.Color(turn)
	opponent := p.Color(turn.Opponent())

	for _, sq := range p.Piece(turn, piece).ToSquares() {
		targets := Attackboard(p.rotated, sq, piece) &^ own
		for _, to := range targets.ToSquares() {
			if opponent.IsSet(to) {
				_, captured, _ := p.Square(to)
				moves = append(moves, Move{Type: Capture, Piece: piece, From: sq, To: to, Capture: captured})
			} else {
				moves = append(moves, Move{Type: Normal, Piece: piece, From: sq, To: to})
			}
		}
	}
	return moves
}

// genCastles emits castling moves per spec §4.3: rights held, intermediate squares empty, rook on
// its home square, and the king's start/transit/destination squares all unattacked and the king
// not currently in check -- the authoritative resolution of spec §9's B/C/D-vs-C/D inconsistency
// (queen-side requires B, C and D all empty).
func (p *Position) genCastles(turn Color, moves []Move) []Move {
	if p.IsChecked(turn) {
		return moves
	}

	kingFrom := kingHomeSquare(turn)
	if p.King(turn) != kingFrom {
		return moves
	}
	opp := turn.Opponent()

	if p.castling.IsAllowed(KingSide(turn)) {
		f, g := kingFrom-1, kingFrom-2 // toward the H-file: index decreases in this numbering
		rook := rookHomeSquare(turn, true)
		if p.IsEmpty(f) && p.IsEmpty(g) && p.pieceAt(rook, turn, Rook) &&
			!p.IsSquareAttacked(kingFrom, opp) && !p.IsSquareAttacked(f, opp) && !p.IsSquareAttacked(g, opp) {
			moves = append(moves, Move{Type: KingSideCastle, Piece: King, From: kingFrom, To: g})
		}
	}
	if p.castling.IsAllowed(QueenSide(turn)) {
		d, c, b := kingFrom+1, kingFrom+2, kingFrom+3 // toward A-file: index increases
		rook := rookHomeSquare(turn, false)
		if p.IsEmpty(d) && p.IsEmpty(c) && p.IsEmpty(b) && p.pieceAt(rook, turn, Rook) &&
			!p.IsSquareAttacked(kingFrom, opp) && !p.IsSquareAttacked(d, opp) && !p.IsSquareAttacked(c, opp) {
			moves = append(moves, Move{Type: QueenSideCastle, Piece: King, From: kingFrom, To: c})
		}
	}
	return moves
}

func (p *Position) pieceAt(sq Square, c Color, k Piece) bool {
	color, piece, ok := p.Square(sq)
	return ok && color == c && piece == k
}
