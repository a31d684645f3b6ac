package engine

import (
	"bufio"
	"context"
	"fmt"
	"github.com/dmitrov/rookery/pkg/board"
	"github.com/dmitrov/rookery/pkg/board/fen"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Book represents an opening book. It is consulted with the exact move-history
// string, as given by the most recent "position ... moves ..." command (empty
// if no moves have been played yet). Once no move is found for a history, the
// book should not be consulted again for the rest of that game.
type Book interface {
	// Find returns the move for the given move-history string, if any.
	Find(ctx context.Context, history string) (board.Move, bool, error)
}

// Line represents an opening line: e2e4 d7d5.
type Line []string

func (l Line) String() string {
	return strings.Join(l, " ")
}

// NoBook is an empty opening book.
var NoBook = &book{entries: map[string][]entry{}}

// entry is a single weighted candidate move for a history.
type entry struct {
	move   board.Move
	weight int
}

// book is a Book backed by a flat set of history -> weighted move entries.
type book struct {
	entries map[string][]entry

	mu   sync.Mutex
	rand *rand.Rand
}

// NewBook creates an opening book from a set of opening lines, such as a small
// built-in default. Every move is validated as legal in sequence from the
// initial position; lines sharing a history prefix share its entry, so
// {"e2e4", "d7d5"} and {"e2e4", "e7e5"} both register a candidate for history
// "e2e4".
func NewBook(lines []Line, seed int64) (Book, error) {
	entries := map[string][]entry{}
	seen := map[string]map[board.Move]bool{}

	for _, line := range lines {
		pos, turn, _, _, _ := fen.Decode(fen.Initial)

		var history []string
		for _, str := range line {
			next, err := board.ParseMove(str)
			if err != nil {
				return nil, fmt.Errorf("invalid line '%v': %v", line, err)
			}

			found := false
			for _, candidate := range pos.PseudoLegalMoves(turn) {
				if !candidate.Equals(next) {
					continue
				}

				p, ok := pos.Move(turn, candidate)
				if !ok {
					return nil, fmt.Errorf("invalid line '%v': move %v not legal", line, next)
				}

				key := strings.Join(history, " ")
				if seen[key] == nil {
					seen[key] = map[board.Move]bool{}
				}
				if !seen[key][candidate] {
					seen[key][candidate] = true
					entries[key] = append(entries[key], entry{move: candidate, weight: 1})
				}

				pos, turn = p, turn.Opponent()
				found = true
				break
			}
			if !found {
				return nil, fmt.Errorf("invalid line '%v': move %v not found", line, next)
			}

			history = append(history, str)
		}
	}
	return &book{entries: entries, rand: rand.New(rand.NewSource(seed))}, nil
}

// LoadBook loads an opening book from a book.txt file, one entry per line:
//
//	<space-separated move history> -> <move> [# weight]
//
// Blank lines and lines starting with '#' are ignored.
func LoadBook(path string, seed int64) (Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open book %v: %v", path, err)
	}
	defer f.Close()

	return ParseBook(f, seed)
}

// ParseBook parses an opening book in book.txt format from r.
func ParseBook(r io.Reader, seed int64) (Book, error) {
	entries := map[string][]entry{}

	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		history, rest, ok := strings.Cut(line, "->")
		if !ok {
			return nil, fmt.Errorf("malformed book entry at line %v: %v", lineno, line)
		}
		history = strings.TrimSpace(history)

		rest = strings.TrimSpace(rest)
		weight := 1
		if mv, w, ok := strings.Cut(rest, "#"); ok {
			rest = strings.TrimSpace(mv)
			if n, err := strconv.Atoi(strings.TrimSpace(w)); err == nil && n > 0 {
				weight = n
			}
		}

		move, err := board.ParseMove(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid move at line %v: %v: %v", lineno, line, err)
		}

		entries[history] = append(entries[history], entry{move: move, weight: weight})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read book: %v", err)
	}

	return &book{entries: entries, rand: rand.New(rand.NewSource(seed))}, nil
}

func (b *book) Find(ctx context.Context, history string) (board.Move, bool, error) {
	candidates, ok := b.entries[history]
	if !ok || len(candidates) == 0 {
		return board.Move{}, false, nil
	}

	total := 0
	for _, c := range candidates {
		total += c.weight
	}

	b.mu.Lock()
	pick := b.rand.Intn(total)
	b.mu.Unlock()

	for _, c := range candidates {
		if pick < c.weight {
			return c.move, true, nil
		}
		pick -= c.weight
	}
	return candidates[len(candidates)-1].move, true, nil // unreachable: weights sum to total
}
