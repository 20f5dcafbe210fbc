// Package ntuple implements Contrast's linear value function: a fixed
// catalogue of 9-cell patterns, each backed by a sparse weight table, fed
// by canonicalised board state and updated online by TD(0). A Network is
// the learner's entire trainable state, and the only thing workers and
// the updater goroutine ever contend for (spec.md 4.E, 4.H).
package ntuple

import (
	"sync"

	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/symmetry"
)

// defaultWeight is the initial value given to any state index not yet
// touched by an update: 0.5/num_patterns, a small positive prior that
// sums to a first-mover-favoring 0.5 across the whole catalogue.
const defaultWeight = float32(0.5 / NumPatterns)

// Network holds one weight map per pattern. Reads (Evaluate) and writes
// (TDUpdate) both take the lock: Evaluate takes a read lock since it only
// ever touches existing entries or returns the default for a missing one,
// while TDUpdate takes a write lock since it may insert new keys into the
// map. A plain mutex would serialize concurrent evaluations needlessly;
// a RWMutex lets many workers read the learner at once while the updater
// waits its turn, matching the teacher's guidance to prefer a
// reader-writer lock over one that blocks on every access.
type Network struct {
	mu      sync.RWMutex
	weights [NumPatterns]map[uint64]float32
}

// NewNetwork returns a Network with all pattern weight maps allocated and
// empty; missing entries evaluate to defaultWeight lazily.
func NewNetwork() *Network {
	n := &Network{}
	for i := range n.weights {
		n.weights[i] = make(map[uint64]float32)
	}
	return n
}

func (n *Network) weightLocked(p int, idx uint64) float32 {
	if w, ok := n.weights[p][idx]; ok {
		return w
	}
	return defaultWeight
}

// rawValue computes Σ weights[p][idx_p] over the canonicalised board,
// without the to-move sign flip. It must be called with at least a read
// lock held.
func (n *Network) rawValue(board geometry.Board, tileIdx int) (float32, [NumPatterns]uint64) {
	var indices [NumPatterns]uint64
	var sum float32
	for p, pattern := range Patterns {
		idx := PatternIndex(board, pattern, tileIdx)
		indices[p] = idx
		sum += n.weightLocked(p, idx)
	}
	return sum, indices
}

// Evaluate returns the learner's estimate of state, from state.ToMove's
// perspective: positive means the side to move is favored. The board is
// canonicalised before indexing; inventories and to-move pass through
// unchanged.
func (n *Network) Evaluate(state geometry.GameState) float32 {
	board := symmetry.Canonical(state.Board)
	tileIdx := TileIndex(state.Inventory[geometry.Black], state.Inventory[geometry.White])

	n.mu.RLock()
	sum, _ := n.rawValue(board, tileIdx)
	n.mu.RUnlock()

	if state.ToMove == geometry.White {
		return -sum
	}
	return sum
}

// TDUpdate applies one TD(0) step toward target, observed from state's
// side to move, with learning rate lr. The board is canonicalised exactly
// as in Evaluate; inventories are left untouched.
func (n *Network) TDUpdate(state geometry.GameState, target, lr float32) {
	board := symmetry.Canonical(state.Board)
	tileIdx := TileIndex(state.Inventory[geometry.Black], state.Inventory[geometry.White])

	n.mu.Lock()
	defer n.mu.Unlock()

	sum, indices := n.rawValue(board, tileIdx)

	current := sum
	if state.ToMove == geometry.White {
		current = -sum
	}

	errVal := target - current
	if state.ToMove == geometry.White {
		errVal = -errVal
	}

	step := lr / float32(NumPatterns)
	for p, idx := range indices {
		n.weights[p][idx] = n.weightLocked(p, idx) + step*errVal
	}
}

// Snapshot returns a deep value-copy of n's weights, safe to hand off as
// an immutable opponent pointer (spec.md 4.H): the copy never observes
// later writes to n.
func (n *Network) Snapshot() *Network {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := NewNetwork()
	for p, m := range n.weights {
		for k, v := range m {
			out.weights[p][k] = v
		}
	}
	return out
}
