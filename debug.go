package bellshake

import (
	"fmt"
	"io"
	"os"
	"time"
)

// globalDebug mirrors the most recently set Scene debug flag so that node and
// widget operations (which lack a Scene pointer) can check it cheaply. Only
// valid with a single Scene.
var globalDebug bool

// debugOut receives all debug output.
var debugOut io.Writer = os.Stderr

// SetDebugOutput redirects debug output. A nil writer restores stderr.
func SetDebugOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	debugOut = w
}

// debugf prints one prefixed line when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[bellshake] "+format+"\n", args...)
}

// debugStats holds per-frame timing. Only populated when Scene.debug is true.
type debugStats struct {
	updateTime   time.Duration
	drawTime     time.Duration
	commandCount int
	trackCount   int
}

// debugLog prints timing stats.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut,
		"[bellshake] update: %v | draw: %v | commands: %d | tracks: %d\n",
		stats.updateTime, stats.drawTime, stats.commandCount, stats.trackCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("bellshake debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(debugOut, "[bellshake] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
