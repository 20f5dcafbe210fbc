package geometry

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCellCode(t *testing.T) {
	Convey("Given a cell with an occupant and a tile", t, func() {
		Convey("Code and CellFromCode round-trip for every valid combination", func() {
			for occ := NoPlayer; occ <= White; occ++ {
				for tile := NoTile; tile <= GrayTile; tile++ {
					c := Cell{Occupant: occ, Tile: tile}
					code := c.Code()
					So(code, ShouldBeBetweenOrEqual, 0, 8)

					back, err := CellFromCode(code)
					So(err, ShouldBeNil)
					So(back, ShouldResemble, c)
				}
			}
		})

		Convey("CellFromCode rejects out-of-range codes", func() {
			_, err := CellFromCode(9)
			So(err, ShouldNotBeNil)
			_, err = CellFromCode(-1)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestInitialState(t *testing.T) {
	Convey("Given the initial game state", t, func() {
		s := NewGame()

		Convey("Black occupies row 0, White occupies row H-1, none elsewhere", func() {
			for x := 0; x < Width; x++ {
				So(s.Board.At(x, 0).Occupant, ShouldEqual, Black)
				So(s.Board.At(x, Height-1).Occupant, ShouldEqual, White)
			}
			for y := 1; y < Height-1; y++ {
				for x := 0; x < Width; x++ {
					So(s.Board.At(x, y).Occupant, ShouldEqual, NoPlayer)
				}
			}
		})

		Convey("Both inventories start at (3 black, 1 gray)", func() {
			So(s.Inventory[Black], ShouldResemble, Inventory{Black: 3, Gray: 1})
			So(s.Inventory[White], ShouldResemble, Inventory{Black: 3, Gray: 1})
		})

		Convey("Black is to move", func() {
			So(s.ToMove, ShouldEqual, Black)
		})
	})
}

func TestEncodeDecode(t *testing.T) {
	Convey("Given the initial game state", t, func() {
		s := NewGame()
		a := Encode(s)

		Convey("It matches the concrete scenario in spec.md 8.1", func() {
			want := [ArrayLen]int{
				3, 3, 3, 3, 3,
				0, 0, 0, 0, 0,
				0, 0, 0, 0, 0,
				0, 0, 0, 0, 0,
				6, 6, 6, 6, 6,
				3, 1, 3, 1,
			}
			So(a, ShouldResemble, want)
		})

		Convey("Decode(Encode(s)) recovers the board and inventories, modulo to_move", func() {
			back, err := Decode(a[:])
			So(err, ShouldBeNil)
			So(back.Board, ShouldResemble, s.Board)
			So(back.Inventory, ShouldResemble, s.Inventory)
			So(back.ToMove, ShouldEqual, NoPlayer)
		})

		Convey("Decode rejects a wrong-length array", func() {
			_, err := Decode(a[:28])
			So(err, ShouldNotBeNil)
		})

		Convey("Decode rejects an out-of-range cell code", func() {
			bad := a
			bad[0] = 9
			_, err := Decode(bad[:])
			So(err, ShouldNotBeNil)
		})

		Convey("Decode rejects an out-of-range inventory count", func() {
			bad := a
			bad[25] = 4
			_, err := Decode(bad[:])
			So(err, ShouldNotBeNil)
		})
	})
}

func TestTextualCoordinates(t *testing.T) {
	Convey("Given board coordinates", t, func() {
		Convey("(0,0) is a5 and (4,4) is e1", func() {
			s, err := Square(0, 0)
			So(err, ShouldBeNil)
			So(s, ShouldEqual, "a5")

			s, err = Square(4, 4)
			So(err, ShouldBeNil)
			So(s, ShouldEqual, "e1")
		})

		Convey("ParseSquare inverts Square for every cell", func() {
			for y := 0; y < Height; y++ {
				for x := 0; x < Width; x++ {
					sq, err := Square(x, y)
					So(err, ShouldBeNil)
					px, py, err := ParseSquare(sq)
					So(err, ShouldBeNil)
					So(px, ShouldEqual, x)
					So(py, ShouldEqual, y)
				}
			}
		})

		Convey("ParseTileKind and FormatTileKind round-trip", func() {
			kind, err := ParseTileKind('b')
			So(err, ShouldBeNil)
			So(kind, ShouldEqual, BlackTile)

			ch, err := FormatTileKind(kind)
			So(err, ShouldBeNil)
			So(ch, ShouldEqual, byte('B'))
		})
	})
}

func TestMoveEqual(t *testing.T) {
	Convey("Given two base moves with the same fields", t, func() {
		a := Base(0, 0, 1, 1)
		b := Base(0, 0, 1, 1)
		So(a.Equal(b), ShouldBeTrue)

		Convey("Attaching a placement to only one breaks equality", func() {
			b = b.WithPlacement(2, 2, BlackTile)
			So(a.Equal(b), ShouldBeFalse)
		})
	})
}
