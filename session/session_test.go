package session

import (
	"math/rand"
	"testing"

	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/policy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewSessionStartsAtInitialState(t *testing.T) {
	Convey("Given a fresh session", t, func() {
		s := New(nil, nil)

		Convey("The state matches geometry.NewGame and status is ongoing", func() {
			So(s.State(), ShouldResemble, geometry.NewGame())
			So(s.Status(), ShouldEqual, StatusOngoing)
		})
	})
}

func TestApplyMoveLiteralRoundTrip(t *testing.T) {
	Convey("Given a fresh session and a legal move literal", t, func() {
		s := New(nil, nil)
		legal := s.LegalMoves()
		So(len(legal), ShouldBeGreaterThan, 0)

		literal, err := FormatMoveLiteral(legal[0])
		So(err, ShouldBeNil)

		Convey("ApplyMoveLiteral applies it and advances to_move", func() {
			before := s.State().ToMove
			err := s.ApplyMoveLiteral(literal)
			So(err, ShouldBeNil)
			So(s.State().ToMove, ShouldEqual, before.Opponent())
		})
	})
}

func TestApplyMoveLiteralRejectsIllegalMove(t *testing.T) {
	Convey("Given a fresh session and an illegal literal", t, func() {
		s := New(nil, nil)

		Convey("ApplyMoveLiteral returns an error and leaves state unchanged", func() {
			before := s.State()
			err := s.ApplyMoveLiteral("c3,c3")
			So(err, ShouldNotBeNil)
			So(s.State(), ShouldResemble, before)
		})
	})
}

func TestAIMoveRequiresAssignedPolicy(t *testing.T) {
	Convey("Given a session with no AI assigned to Black", t, func() {
		s := New(nil, policy.Random{})
		rng := rand.New(rand.NewSource(1))

		Convey("AIMove on Black's turn returns an error", func() {
			_, err := s.AIMove(rng)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestAIMovePlaysAndAdvances(t *testing.T) {
	Convey("Given a session with Black assigned a Random policy", t, func() {
		s := New(policy.Random{}, nil)
		rng := rand.New(rand.NewSource(2))

		Convey("AIMove plays a legal move and advances to_move", func() {
			m, err := s.AIMove(rng)
			So(err, ShouldBeNil)
			So(m.SX, ShouldBeGreaterThanOrEqualTo, 0)
			So(s.State().ToMove, ShouldEqual, geometry.White)
		})
	})
}

func TestBoardArrayEncodeDecode(t *testing.T) {
	Convey("Given a fresh session", t, func() {
		s := New(nil, nil)
		a := s.BoardArray()

		Convey("LoadBoardArray recovers the same board and inventories", func() {
			other := New(nil, nil)
			So(other.LoadBoardArray(a[:]), ShouldBeNil)
			So(other.State().Board, ShouldResemble, s.State().Board)
			So(other.State().Inventory, ShouldResemble, s.State().Inventory)
		})
	})
}

func TestBoardTextHasOneLinePerRank(t *testing.T) {
	Convey("Given a fresh session", t, func() {
		s := New(nil, nil)

		Convey("BoardText renders Height lines", func() {
			text := s.BoardText()
			lines := 0
			for _, c := range text {
				if c == '\n' {
					lines++
				}
			}
			So(lines, ShouldEqual, geometry.Height)
		})
	})
}

func TestResetReturnsToInitialState(t *testing.T) {
	Convey("Given a session that has played a move", t, func() {
		s := New(nil, nil)
		legal := s.LegalMoves()
		So(s.ApplyMove(legal[0]), ShouldBeNil)

		Convey("Reset restores the initial state", func() {
			s.Reset()
			So(s.State(), ShouldResemble, geometry.NewGame())
		})
	})
}
