package geometry

// Move is a motion from (SX,SY) to (DX,DY) with an optional tile
// placement at (TX,TY). HasTile is false for a base move (no placement).
// The placement target is independent of the motion target: (TX,TY) may
// be any cell left empty and tile-free after the motion, including the
// mover's own origin, but per spec.md's chosen resolution of its "tile
// destination vs. move destination" open question, (TX,TY) may never
// equal (DX,DY).
type Move struct {
	SX, SY int
	DX, DY int

	HasTile  bool
	TX, TY   int
	TileKind TileType
}

// Base returns a motion-only move with no tile placement.
func Base(sx, sy, dx, dy int) Move {
	return Move{SX: sx, SY: sy, DX: dx, DY: dy}
}

// WithPlacement returns a copy of the base move m with a tile placement
// attached.
func (m Move) WithPlacement(tx, ty int, kind TileType) Move {
	m.HasTile = true
	m.TX, m.TY = tx, ty
	m.TileKind = kind
	return m
}

// Equal reports whether two moves are identical field-by-field. Per
// spec.md 4.C, "an illegal move is any move not equal, field-by-field, to
// some element of the legal list" — this is the comparison that backs
// that definition.
func (m Move) Equal(o Move) bool {
	if m.SX != o.SX || m.SY != o.SY || m.DX != o.DX || m.DY != o.DY {
		return false
	}
	if m.HasTile != o.HasTile {
		return false
	}
	if !m.HasTile {
		return true
	}
	return m.TX == o.TX && m.TY == o.TY && m.TileKind == o.TileKind
}
