// Package symmetry canonicalises boards under the one symmetry the
// evaluator exploits: horizontal flip. Canonicalisation lets the N-tuple
// network treat a board and its mirror image as the same state, halving
// the effective state space it has to learn.
package symmetry

import "github.com/Terauchi01/Contrast/internal/geometry"

// Flip mirrors b horizontally (x -> Width-1-x). Tiles and occupants move
// together with the cell; inventories are untouched by callers since they
// are player-attached, not position-attached.
func Flip(b geometry.Board) geometry.Board {
	var out geometry.Board
	for y := 0; y < geometry.Height; y++ {
		for x := 0; x < geometry.Width; x++ {
			out = out.Set(geometry.Width-1-x, y, b.At(x, y))
		}
	}
	return out
}

// linearize returns the sequence of cell codes occupant*3+tile, row-major,
// the ordering canonical compares lexicographically.
func linearize(b geometry.Board) [geometry.Cells]int {
	var codes [geometry.Cells]int
	for i := 0; i < geometry.Cells; i++ {
		codes[i] = b[i].Code()
	}
	return codes
}

// less reports whether a sorts strictly before b under lexicographic
// comparison of their linearised cell codes.
func less(a, b [geometry.Cells]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Canonical returns the lexicographically smaller of b and its horizontal
// flip, comparing the two boards' linearised cell-code sequences. Ties
// (a board that is its own mirror image) resolve to the identity, i.e. b
// itself.
func Canonical(b geometry.Board) geometry.Board {
	flipped := Flip(b)
	if less(linearize(flipped), linearize(b)) {
		return flipped
	}
	return b
}
