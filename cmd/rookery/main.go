package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/dmitrov/rookery/pkg/engine"
	"github.com/dmitrov/rookery/pkg/engine/console"
	"github.com/dmitrov/rookery/pkg/engine/uci"
	"github.com/dmitrov/rookery/pkg/eval"
	"github.com/dmitrov/rookery/pkg/search"
	"github.com/seekerror/logw"
	"os"
	"time"
)

var (
	depth    = flag.Uint("depth", 0, "Default search depth limit (zero if unlimited)")
	hash     = flag.Uint("hash", 32, "Transposition table size in MB (zero to disable)")
	noise    = flag.Uint("noise", 10, "Evaluation noise in millipawns (zero if deterministic)")
	useBook  = flag.Bool("book", true, "Use an opening book")
	bookFile = flag.String("book_file", "", "Path to a book.txt opening book (falls back to a small built-in one if empty)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: rookery [options]

rookery is a simple UCI and console chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := eval.Composite{
		eval.Material{},
		eval.PieceSquareTables{},
		eval.Mobility{},
		eval.PawnStructure{},
		eval.KingSafety{},
		eval.BishopPair{},
		eval.RookPlacement{},
	}

	s := search.AlphaBeta{
		Explore: search.FullExploration,
		Eval: search.Quiescence{
			Explore: search.QuiescenceExploration,
			Eval:    e,
		},
		Static: e,
	}

	eng := engine.New(ctx, "rookery", "dmitrov", s, engine.WithOptions(engine.Options{
		Depth: *depth,
		Hash:  *hash,
		Noise: *noise,
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		// Use UCI protocol.

		var opts []uci.Option
		if *useBook {
			ob, err := loadOpeningBook(*bookFile)
			if err == nil {
				opts = append(opts, uci.UseBook(ob))
			} else {
				logw.Errorf(ctx, "Failed to build opening book: %v", err)
			}
		}

		driver, out := uci.NewDriver(ctx, eng, in, opts...)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, eng, s, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}

// loadOpeningBook loads the opening book from path, if given, or else falls back
// to the built-in default lines.
func loadOpeningBook(path string) (engine.Book, error) {
	seed := time.Now().UnixNano()
	if path != "" {
		return engine.LoadBook(path, seed)
	}
	return engine.NewBook(defaultBook, seed)
}

// defaultBook is a small set of common opening lines, enough to get the engine out of the
// most well-trodden theory without searching for it.
var defaultBook = []engine.Line{
	{"e2e4", "c7c5"},
	{"e2e4", "e7e5", "g1f3", "b8c6"},
	{"e2e4", "e7e6"},
	{"e2e4", "c7c6"},
	{"d2d4", "d7d5", "c2c4"},
	{"d2d4", "g8f6", "c2c4", "e7e6"},
	{"d2d4", "g8f6", "c2c4", "g7g6"},
	{"c2c4", "e7e5"},
	{"g1f3", "d7d5"},
}
