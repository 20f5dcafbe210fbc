package geometry

import "fmt"

// ArrayLen is the fixed length of the external 29-element state array
// (spec.md 6): 25 cell codes plus 4 inventory counts. to_move is not
// carried by the array.
const ArrayLen = 29

// Encode writes s into the bit-exact 29-element external array:
// indices 0..24 are row-major cell codes, 25..26 are Black's (black,gray)
// tile counts, 27..28 are White's. to_move is not encoded.
func Encode(s GameState) [ArrayLen]int {
	var a [ArrayLen]int
	for i := 0; i < Cells; i++ {
		a[i] = s.Board[i].Code()
	}
	a[25] = s.Inventory[Black].Black
	a[26] = s.Inventory[Black].Gray
	a[27] = s.Inventory[White].Black
	a[28] = s.Inventory[White].Gray
	return a
}

// Decode validates and decodes a 29-element external array into a board
// and a pair of inventories. to_move is not carried by the array and must
// be supplied separately by the caller; the returned GameState's ToMove
// field is left as NoPlayer.
//
// Decode returns ErrArraySize if len(a) != 29, and ErrOutOfRangeCoord if
// any cell code or inventory count is out of its valid range. On error the
// returned state is the zero value.
func Decode(a []int) (GameState, error) {
	if len(a) != ArrayLen {
		return GameState{}, fmt.Errorf("%w: got %d", ErrArraySize, len(a))
	}

	var board Board
	for i := 0; i < Cells; i++ {
		cell, err := CellFromCode(a[i])
		if err != nil {
			return GameState{}, err
		}
		board[i] = cell
	}

	blackInv, err := inventoryFromCounts(a[25], a[26])
	if err != nil {
		return GameState{}, err
	}
	whiteInv, err := inventoryFromCounts(a[27], a[28])
	if err != nil {
		return GameState{}, err
	}

	return GameState{
		Board:  board,
		ToMove: NoPlayer,
		Inventory: [3]Inventory{
			NoPlayer: {},
			Black:    blackInv,
			White:    whiteInv,
		},
	}, nil
}

func inventoryFromCounts(black, gray int) (Inventory, error) {
	if black < 0 || black > 3 {
		return Inventory{}, fmt.Errorf("%w: black tile count %d not in 0..3", ErrOutOfRangeCoord, black)
	}
	if gray < 0 || gray > 1 {
		return Inventory{}, fmt.Errorf("%w: gray tile count %d not in 0..1", ErrOutOfRangeCoord, gray)
	}
	return Inventory{Black: black, Gray: gray}, nil
}
