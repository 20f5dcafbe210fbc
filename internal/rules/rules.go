// Package rules implements Contrast's legal-move enumeration, move
// application, and terminal tests (spec.md 4.C). The engine never raises
// errors for illegal moves: callers validate proposed moves against
// LegalMoves themselves, and Apply's only error is a defensive check
// that the move actually belongs to that list.
package rules

import (
	"errors"

	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/movetable"
)

// ErrInvalidMove is returned by Apply when the given move is not present,
// field-by-field, in LegalMoves(state).
var ErrInvalidMove = errors.New("rules: move is not legal in this state")

// GoalRank returns the row index a player must reach to win: Black's goal
// is y=Height-1, White's is y=0.
func GoalRank(p geometry.Player) int {
	if p == geometry.Black {
		return geometry.Height - 1
	}
	return 0
}

// IsWin reports whether p already occupies a cell on its own goal rank.
func IsWin(s geometry.GameState, p geometry.Player) bool {
	y := GoalRank(p)
	for x := 0; x < geometry.Width; x++ {
		if s.Board.At(x, y).Occupant == p {
			return true
		}
	}
	return false
}

// IsLoss reports whether the side to move has no legal moves. Loss is
// always observed from the side to move, so calling this with a player
// other than s.ToMove is meaningless (it will always report false, since
// LegalMoves only ever enumerates s.ToMove's moves).
func IsLoss(s geometry.GameState, p geometry.Player) bool {
	if s.ToMove != p {
		return false
	}
	return len(LegalMoves(s)) == 0
}

// LegalMoves enumerates every legal move for the side to move in s,
// including all tile-placement variants of each base move.
func LegalMoves(s geometry.GameState) []geometry.Move {
	mover := s.ToMove
	opponent := mover.Opponent()
	inv := s.InventoryOf(mover)

	var moves []geometry.Move
	for origin := 0; origin < geometry.Cells; origin++ {
		cell := s.Board[origin]
		if cell.Occupant != mover {
			continue
		}
		ox, oy := geometry.XY(origin)
		entry := movetable.Default.Lookup(cell.Tile, origin)

		for _, dir := range entry.Directions {
			encounteredFriend := false
		steps:
			for step, idx := range dir {
				dest := s.Board[idx]
				switch dest.Occupant {
				case geometry.NoPlayer:
					if step == 0 || encounteredFriend {
						dx, dy := geometry.XY(idx)
						base := geometry.Base(ox, oy, dx, dy)
						moves = append(moves, expandTilePlacements(s, base, inv, mover)...)
					}
					// An empty destination always terminates the ray,
					// whether or not it was a legal landing spot.
					break steps
				case opponent:
					// Opponents block both immediate capture and further
					// jumping.
					break steps
				default:
					// A friendly piece is transparent once crossed, and
					// only after crossing at least one can the ray land
					// on a later empty cell (the jump rule).
					encounteredFriend = true
				}
			}
		}
	}
	return moves
}

// expandTilePlacements emits the base move itself plus, for each tile kind
// still in the mover's inventory, one move per empty-and-tile-free cell
// eligible for placement (excluding the motion destination, per spec.md's
// chosen resolution of its tile-vs-move-destination open question).
func expandTilePlacements(
	s geometry.GameState,
	base geometry.Move,
	inv geometry.Inventory,
	mover geometry.Player,
) []geometry.Move {
	moves := []geometry.Move{base}

	destIdx := geometry.Index(base.DX, base.DY)
	srcIdx := geometry.Index(base.SX, base.SY)

	for kind := geometry.BlackTile; kind <= geometry.GrayTile; kind++ {
		if inv.Count(kind) <= 0 {
			continue
		}
		for idx := 0; idx < geometry.Cells; idx++ {
			if idx == destIdx {
				continue
			}
			// The motion has not been applied yet; the source cell reads
			// as still-occupied here, but it becomes empty once the move
			// resolves, and placement there is explicitly permitted.
			cell := s.Board[idx]
			if idx != srcIdx && cell.Occupant != geometry.NoPlayer {
				continue
			}
			if cell.Tile != geometry.NoTile {
				continue
			}
			tx, ty := geometry.XY(idx)
			moves = append(moves, base.WithPlacement(tx, ty, kind))
		}
	}
	return moves
}

// Apply applies m to s and returns the resulting state. m must be present
// in LegalMoves(s); otherwise ErrInvalidMove is returned and s is returned
// unchanged.
func Apply(s geometry.GameState, m geometry.Move) (geometry.GameState, error) {
	if !isLegal(s, m) {
		return s, ErrInvalidMove
	}

	mover := s.ToMove
	next := s

	srcIdx := geometry.Index(m.SX, m.SY)
	dstIdx := geometry.Index(m.DX, m.DY)

	moving := next.Board[srcIdx]
	next.Board[srcIdx] = geometry.Cell{Occupant: geometry.NoPlayer, Tile: next.Board[srcIdx].Tile}
	next.Board[dstIdx] = geometry.Cell{Occupant: moving.Occupant, Tile: next.Board[dstIdx].Tile}

	if m.HasTile {
		tIdx := geometry.Index(m.TX, m.TY)
		next.Board[tIdx] = geometry.Cell{Occupant: next.Board[tIdx].Occupant, Tile: m.TileKind}
		next = next.WithInventory(mover, next.InventoryOf(mover).Decrement(m.TileKind))
	}

	next.ToMove = mover.Opponent()
	return next, nil
}

func isLegal(s geometry.GameState, m geometry.Move) bool {
	for _, legal := range LegalMoves(s) {
		if legal.Equal(m) {
			return true
		}
	}
	return false
}
