package ntuple

import "github.com/Terauchi01/Contrast/internal/geometry"

// StatesPerPattern is 9^9 * 64, the full state count a dense pattern
// table would need: 9 base-9 digits for the pattern's cells, folded
// together with a 6-bit tile index. At ~24.8 billion entries this is
// infeasible to allocate per pattern, which is why Network stores weights
// in a sparse map (see network.go) rather than a dense array of this size.
const StatesPerPattern = 24794911296

// TileIndex encodes both players' tile inventories into a single 6-bit
// value T = 8*blackSideIndex + whiteSideIndex, independent of which side
// is to move: weights are always learned in the Black-to-move frame, so
// the inventory encoding never reorders black/white by mover.
func TileIndex(black, white geometry.Inventory) int {
	return 8*black.SideIndex() + white.SideIndex()
}

// PatternIndex folds a pattern's nine cell codes (base-9 digits) and the
// tile index into one combined index in 0..StatesPerPattern-1, per
// final_idx = idx*64 + T.
func PatternIndex(b geometry.Board, p Pattern, tileIdx int) uint64 {
	var idx uint64
	for _, cellIdx := range p {
		idx = idx*9 + uint64(b[cellIdx].Code())
	}
	return idx*64 + uint64(tileIdx)
}
