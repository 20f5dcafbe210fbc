// Package movetable precomputes, once per process, the rays a piece can
// walk from each origin for each tile kind. It encodes geometry only: it
// has no notion of occupants, so it can be built once at package load and
// shared across goroutines without synchronisation (spec.md 4.B, 9).
package movetable

import "github.com/Terauchi01/Contrast/internal/geometry"

// Direction is an ordered sequence of linear board indices reached at
// step 1, 2, 3, ... along one direction from some origin, until the board
// edge. A direction may be empty when the origin is flush against the
// edge in that direction.
type Direction []int

// Entry is the set of directions available to a piece of a given tile
// kind standing at a given origin.
type Entry struct {
	Directions []Direction
}

// Table is indexed [tileKind][originIndex].
type Table [3][geometry.Cells]Entry

var (
	orthogonalDeltas = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDeltas   = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allDeltas        = [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
)

// deltasFor returns the direction deltas for a tile kind: None moves
// orthogonally (4 directions), Black moves diagonally (4), Gray moves in
// all 8.
func deltasFor(kind geometry.TileType) [][2]int {
	switch kind {
	case geometry.BlackTile:
		out := make([][2]int, len(diagonalDeltas))
		for i, d := range diagonalDeltas {
			out[i] = d
		}
		return out
	case geometry.GrayTile:
		out := make([][2]int, len(allDeltas))
		for i, d := range allDeltas {
			out[i] = d
		}
		return out
	default:
		out := make([][2]int, len(orthogonalDeltas))
		for i, d := range orthogonalDeltas {
			out[i] = d
		}
		return out
	}
}

func buildEntry(kind geometry.TileType, origin int) Entry {
	ox, oy := geometry.XY(origin)
	deltas := deltasFor(kind)

	entry := Entry{Directions: make([]Direction, len(deltas))}
	for di, d := range deltas {
		var dir Direction
		x, y := ox+d[0], oy+d[1]
		for geometry.InBounds(x, y) {
			dir = append(dir, geometry.Index(x, y))
			x += d[0]
			y += d[1]
		}
		entry.Directions[di] = dir
	}
	return entry
}

func build() *Table {
	var t Table
	for kind := geometry.NoTile; kind <= geometry.GrayTile; kind++ {
		for origin := 0; origin < geometry.Cells; origin++ {
			t[kind][origin] = buildEntry(kind, origin)
		}
	}
	return &t
}

// Default is the single immutable move table, built once at package load
// and shared read-only by every caller.
var Default = build()

// Lookup returns the directions available from origin for a piece
// standing on a cell of the given tile kind.
func (t *Table) Lookup(kind geometry.TileType, origin int) Entry {
	return t[kind][origin]
}
