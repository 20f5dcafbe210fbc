// Package geometry defines Contrast's board types: players, tile kinds,
// cells, inventories, and the 5x5 board itself. All types here are plain
// values, copied rather than aliased, so that search and policy code can
// explore futures by copying a GameState instead of mutating and undoing it.
package geometry

import "fmt"

// Board geometry constants. Fixed at 5x5; spec.md explicitly rules out
// alternative board sizes as a non-goal.
const (
	Width  = 5
	Height = 5
	Cells  = Width * Height
)

// Player is a sum type over {None, Black, White}. The integer encoding is
// load-bearing: it is folded into cell codes (and through them into the
// evaluator's indices and the 29-element array) and must never change.
type Player int

const (
	NoPlayer Player = 0
	Black    Player = 1
	White    Player = 2
)

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "None"
	}
}

// Opponent returns the other side. Only meaningful for Black/White.
func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	default:
		return NoPlayer
	}
}

// TileType is a sum type over {None, Black, Gray}. Like Player, its integer
// encoding is load-bearing.
type TileType int

const (
	NoTile    TileType = 0
	BlackTile TileType = 1
	GrayTile  TileType = 2
)

func (t TileType) String() string {
	switch t {
	case BlackTile:
		return "Black"
	case GrayTile:
		return "Gray"
	default:
		return "None"
	}
}

// Cell is a cell's occupant and the tile placed on it. Occupant and tile
// are orthogonal: any combination is valid.
type Cell struct {
	Occupant Player
	Tile     TileType
}

// Code returns the base-9 digit encoding occupant*3+tile, in 0..8.
func (c Cell) Code() int {
	return int(c.Occupant)*3 + int(c.Tile)
}

// CellFromCode decodes a base-9 digit back into a Cell. Returns an error if
// code is outside 0..8.
func CellFromCode(code int) (Cell, error) {
	if code < 0 || code > 8 {
		return Cell{}, fmt.Errorf("%w: cell code %d not in 0..8", ErrOutOfRangeCoord, code)
	}
	return Cell{Occupant: Player(code / 3), Tile: TileType(code % 3)}, nil
}

// Inventory is a player's remaining placeable tiles. Black tiles start at
// 3, gray tiles at 1; counts only ever decrease.
type Inventory struct {
	Black int
	Gray  int
}

// InitialInventory returns the starting tile counts for either player.
func InitialInventory() Inventory {
	return Inventory{Black: 3, Gray: 1}
}

// Count returns the remaining count of the given tile kind. Only Black and
// Gray are meaningful; NoTile always returns 0.
func (inv Inventory) Count(kind TileType) int {
	switch kind {
	case BlackTile:
		return inv.Black
	case GrayTile:
		return inv.Gray
	default:
		return 0
	}
}

// Decrement returns a copy of inv with one fewer tile of the given kind.
func (inv Inventory) Decrement(kind TileType) Inventory {
	switch kind {
	case BlackTile:
		inv.Black--
	case GrayTile:
		inv.Gray--
	}
	return inv
}

// sideIndex encodes an inventory as black_count + 4*gray_count, in 0..7,
// per the N-tuple evaluator's tile-index scheme (spec.md 4.E).
func (inv Inventory) sideIndex() int {
	return inv.Black + 4*inv.Gray
}

// SideIndex exposes sideIndex to other packages (internal/ntuple) without
// widening Inventory's public surface beyond what the evaluator needs.
func (inv Inventory) SideIndex() int {
	return inv.sideIndex()
}

// Index linearises (x,y) into a row-major board index, y*Width+x.
func Index(x, y int) int {
	return y*Width + x
}

// XY inverts Index.
func XY(i int) (x, y int) {
	return i % Width, i / Width
}

// InBounds reports whether (x,y) lies on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}
