package poncho

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and walk metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	walkTime     time.Duration
	dispatchTime time.Duration
	nodesVisited int
	draws        int
	hitTests     int
	events       int
}

// debugLog prints timing and walk stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[poncho] walk: %v | dispatch: %v | total: %v\n",
		stats.walkTime, stats.dispatchTime, stats.walkTime+stats.dispatchTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[poncho] nodes: %d | draws: %d | hit tests: %d | events: %d\n",
		stats.nodesVisited, stats.draws, stats.hitTests, stats.events)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("poncho debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[poncho] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[poncho] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
