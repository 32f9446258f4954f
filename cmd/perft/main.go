// perft is a legal-move-generator fuzzing tool for the rule engine: it walks
// GenerateLegalMoves/Execute recursively per variant and reports the
// leaf-node count at each depth, the standard perft technique for catching
// move-generation bugs against a known-good node count. Walks
// board.GameState through pkg/rules, since that is this engine's only
// legal-move source.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/seekerror/logw"

	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/game"
	"github.com/tobagin/draughts-core/pkg/rules"
	"github.com/tobagin/draughts-core/pkg/variant"
)

var (
	depth      = flag.Int("depth", 4, "Search depth")
	variantID  = flag.String("variant", string(variant.American), "Variant id (default: american)")
	divide     = flag.Bool("divide", false, "Divide counts by the first move at the deepest ply")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: perft [options]

PERFT recursively walks the rule engine's legal-move generator, counting
leaf nodes at each depth. Useful to catch move-generation regressions
against known-good node counts for a variant's starting position.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	ctx := context.Background()
	flag.Parse()

	v, err := variant.ByID(variant.ID(*variantID))
	if err != nil {
		logw.Exitf(ctx, "Invalid variant %q: %v", *variantID, err)
	}

	m := game.NewMachine(v, false)
	start := m.LiveState()

	for i := 1; i <= *depth; i++ {
		begin := time.Now()
		nodes := search(start, v, i, *divide && i == *depth)
		duration := time.Since(begin)
		fmt.Printf("perft,%v,%v,%v,%v\n", v.ID, i, nodes, duration.Microseconds())
	}
}

func search(state *board.GameState, v variant.Variant, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, mv := range rules.GenerateLegalMoves(state, v) {
		next, err := rules.Execute(state, v, mv)
		if err != nil {
			continue
		}
		count := search(next, v, depth-1, false)
		if d {
			fmt.Printf("%v: %v\n", mv, count)
		}
		nodes += count
	}
	return nodes
}
