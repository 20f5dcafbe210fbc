package geometry

// Board is a 5x5 array of cells, linearised row-major at y*Width+x. Board
// is a plain value: copying it copies all 25 cells, which is exactly what
// MCTS expansion and policy lookahead want.
type Board [Cells]Cell

// At returns the cell at (x,y). Callers are expected to stay in bounds;
// this is a hot-path accessor, not a validating one.
func (b Board) At(x, y int) Cell {
	return b[Index(x, y)]
}

// Set returns a copy of b with (x,y) replaced by c.
func (b Board) Set(x, y int, c Cell) Board {
	b[Index(x, y)] = c
	return b
}

// InitialBoard returns the starting position: Black's row of pieces along
// y=0, White's row along y=H-1, everything else empty, no tiles placed.
func InitialBoard() Board {
	var b Board
	for x := 0; x < Width; x++ {
		b[Index(x, 0)] = Cell{Occupant: Black, Tile: NoTile}
		b[Index(x, Height-1)] = Cell{Occupant: White, Tile: NoTile}
	}
	return b
}

// GameState is the single mutable entity the rules engine acts on. It is
// cheap to copy (a Board value plus three small Inventory values, one of
// them unused, and a Player tag) and is copied by value throughout search and training.
type GameState struct {
	Board     Board
	ToMove    Player
	Inventory [3]Inventory // indexed by Player; Inventory[NoPlayer] is unused
}

// NewGame returns the initial GameState: Black to move, both inventories
// at their starting counts.
func NewGame() GameState {
	return GameState{
		Board:  InitialBoard(),
		ToMove: Black,
		Inventory: [3]Inventory{
			NoPlayer: {},
			Black:    InitialInventory(),
			White:    InitialInventory(),
		},
	}
}

// InventoryOf returns p's inventory.
func (s GameState) InventoryOf(p Player) Inventory {
	return s.Inventory[p]
}

// WithInventory returns a copy of s with p's inventory replaced.
func (s GameState) WithInventory(p Player, inv Inventory) GameState {
	s.Inventory[p] = inv
	return s
}

// WithToMove returns a copy of s with the side to move replaced. Used by
// the evaluator's negamax-frame checks, which compare a state to itself
// with to_move flipped and nothing else changed.
func (s GameState) WithToMove(p Player) GameState {
	s.ToMove = p
	return s
}
