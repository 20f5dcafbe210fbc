package session

import (
	"fmt"
	"strings"

	"github.com/Terauchi01/Contrast/internal/geometry"
)

// ParseMoveLiteral parses "<from>,<to>" or "<from>,<to>,<square><kind>"
// (e.g. "c3,c4" or "c3,c4,d4B") into a Move. <square> is where a tile is
// placed and <kind> is 'b'/'B' or 'g'/'G', per spec.md §6's textual
// coordinate grammar.
func ParseMoveLiteral(literal string) (geometry.Move, error) {
	parts := strings.Split(literal, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return geometry.Move{}, fmt.Errorf("%w: move literal %q must have 2 or 3 comma-separated fields", geometry.ErrOutOfRangeCoord, literal)
	}

	sx, sy, err := geometry.ParseSquare(parts[0])
	if err != nil {
		return geometry.Move{}, err
	}
	dx, dy, err := geometry.ParseSquare(parts[1])
	if err != nil {
		return geometry.Move{}, err
	}

	m := geometry.Base(sx, sy, dx, dy)
	if len(parts) == 2 {
		return m, nil
	}

	tileField := parts[2]
	if len(tileField) != 3 {
		return geometry.Move{}, fmt.Errorf("%w: tile literal %q must be <file><rank><color>", geometry.ErrOutOfRangeCoord, tileField)
	}
	tx, ty, err := geometry.ParseSquare(tileField[:2])
	if err != nil {
		return geometry.Move{}, err
	}
	kind, err := geometry.ParseTileKind(tileField[2])
	if err != nil {
		return geometry.Move{}, err
	}

	return m.WithPlacement(tx, ty, kind), nil
}

// FormatMoveLiteral is the inverse of ParseMoveLiteral.
func FormatMoveLiteral(m geometry.Move) (string, error) {
	from, err := geometry.Square(m.SX, m.SY)
	if err != nil {
		return "", err
	}
	to, err := geometry.Square(m.DX, m.DY)
	if err != nil {
		return "", err
	}
	if !m.HasTile {
		return from + "," + to, nil
	}

	tileSquare, err := geometry.Square(m.TX, m.TY)
	if err != nil {
		return "", err
	}
	kind, err := geometry.FormatTileKind(m.TileKind)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s,%s,%s%c", from, to, tileSquare, kind), nil
}
