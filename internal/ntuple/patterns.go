package ntuple

import "github.com/Terauchi01/Contrast/internal/geometry"

// PatternSize is the fixed cell count of every pattern in Patterns.
const PatternSize = 9

// NumPatterns is the catalogue size, used to scale the evaluator's prior
// weight and its TD(0) step size.
const NumPatterns = 12

// Pattern is a fixed ordered list of board indices. Order matters: it is
// folded into the index computed by PatternIndex, so two patterns covering the
// same cells in different orders are distinct entries in the catalogue.
type Pattern [PatternSize]int

// at converts an (x,y) pair to a board index; a thin local alias kept for
// readability in the literal pattern definitions below.
func at(x, y int) int {
	return geometry.Index(x, y)
}

func square(x0, y0 int) Pattern {
	var p Pattern
	i := 0
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 3; dx++ {
			p[i] = at(x0+dx, y0+dy)
			i++
		}
	}
	return p
}

// Patterns is the compiled-in catalogue of 12 nine-cell patterns: four
// corner 3x3 squares, the center square, two edge-centered squares, two
// near-goal-rank horizontal bands, two T shapes anchored on the goal
// ranks, and the two board diagonals merged at the center. The catalogue
// is part of the evaluator's identity: changing it invalidates any
// weights file saved under the old one (see persist.go).
var Patterns = [NumPatterns]Pattern{
	square(0, 0),
	square(2, 0),
	square(0, 2),
	square(2, 2),
	square(1, 1),
	square(1, 0),
	square(1, 2),
	{at(0, 0), at(1, 0), at(2, 0), at(3, 0), at(4, 0), at(0, 1), at(1, 1), at(3, 1), at(4, 1)},
	{at(0, 3), at(1, 3), at(0, 4), at(1, 4), at(2, 4), at(3, 4), at(4, 4), at(3, 3), at(4, 3)},
	{at(0, 0), at(1, 0), at(2, 0), at(3, 0), at(4, 0), at(2, 1), at(2, 2), at(2, 3), at(2, 4)},
	{at(0, 4), at(1, 4), at(2, 4), at(3, 4), at(4, 4), at(2, 3), at(2, 2), at(2, 1), at(2, 0)},
	{at(0, 0), at(1, 1), at(2, 2), at(3, 3), at(4, 4), at(4, 0), at(3, 1), at(1, 3), at(0, 4)},
}
