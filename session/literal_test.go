package session

import (
	"testing"

	"github.com/Terauchi01/Contrast/internal/geometry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseMoveLiteralBase(t *testing.T) {
	Convey("Given a base move literal", t, func() {
		m, err := ParseMoveLiteral("c3,c4")
		So(err, ShouldBeNil)

		Convey("It parses to the expected coordinates with no tile", func() {
			So(m.SX, ShouldEqual, 2)
			So(m.SY, ShouldEqual, 2)
			So(m.DX, ShouldEqual, 2)
			So(m.DY, ShouldEqual, 1)
			So(m.HasTile, ShouldBeFalse)
		})
	})
}

func TestParseMoveLiteralWithTile(t *testing.T) {
	Convey("Given a move literal with a tile placement", t, func() {
		m, err := ParseMoveLiteral("c3,c4,d4B")
		So(err, ShouldBeNil)

		Convey("The tile placement is parsed correctly", func() {
			So(m.HasTile, ShouldBeTrue)
			So(m.TX, ShouldEqual, 3)
			So(m.TY, ShouldEqual, 1)
			So(m.TileKind, ShouldEqual, geometry.BlackTile)
		})
	})
}

func TestFormatMoveLiteralRoundTrip(t *testing.T) {
	Convey("Given a move with a tile placement", t, func() {
		m := geometry.Base(2, 2, 2, 3).WithPlacement(4, 4, geometry.GrayTile)

		Convey("Formatting then parsing recovers the same move", func() {
			literal, err := FormatMoveLiteral(m)
			So(err, ShouldBeNil)
			back, err := ParseMoveLiteral(literal)
			So(err, ShouldBeNil)
			So(back.Equal(m), ShouldBeTrue)
		})
	})
}

func TestParseMoveLiteralRejectsMalformedInput(t *testing.T) {
	Convey("Given malformed literals", t, func() {
		Convey("Too few fields is rejected", func() {
			_, err := ParseMoveLiteral("c3")
			So(err, ShouldNotBeNil)
		})
		Convey("An out-of-range square is rejected", func() {
			_, err := ParseMoveLiteral("z9,c4")
			So(err, ShouldNotBeNil)
		})
		Convey("An invalid tile color is rejected", func() {
			_, err := ParseMoveLiteral("c3,c4,d4x")
			So(err, ShouldNotBeNil)
		})
	})
}
