package mcts

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/ntuple"
	"github.com/Terauchi01/Contrast/internal/rules"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSearchIterationsReturnsLegalMove(t *testing.T) {
	Convey("Given a search tree rooted at the initial state", t, func() {
		s := geometry.NewGame()
		net := ntuple.NewNetwork()
		rng := rand.New(rand.NewSource(1))
		tree := New(s, net, rng)

		Convey("SearchIterations(50) returns a move present in LegalMoves", func() {
			m, err := tree.SearchIterations(50)
			So(err, ShouldBeNil)

			legal := rules.LegalMoves(s)
			found := false
			for _, l := range legal {
				if l.Equal(m) {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}

func TestSearchTakesImmediateWinWhenAvailable(t *testing.T) {
	Convey("Given a Black piece one step from its goal rank", t, func() {
		s := geometry.GameState{ToMove: geometry.Black}
		s.Board = s.Board.Set(2, geometry.Height-2, geometry.Cell{Occupant: geometry.Black, Tile: geometry.NoTile})
		// A White piece away from its own goal rank keeps White able to
		// move after any non-winning Black move, so only the branch that
		// wins outright scores +1 immediately.
		s.Board = s.Board.Set(0, 2, geometry.Cell{Occupant: geometry.White, Tile: geometry.NoTile})

		net := ntuple.NewNetwork()
		rng := rand.New(rand.NewSource(2))
		tree := New(s, net, rng)

		Convey("A reasonably sized search finds the winning move", func() {
			m, err := tree.SearchIterations(200)
			So(err, ShouldBeNil)
			next, err := rules.Apply(s, m)
			So(err, ShouldBeNil)
			So(rules.IsWin(next, geometry.Black), ShouldBeTrue)
		})
	})
}

func TestSearchOnTerminalRootErrors(t *testing.T) {
	Convey("Given a state with no legal moves for the side to move", t, func() {
		s := geometry.GameState{ToMove: geometry.Black}
		s.Board = s.Board.Set(2, 2, geometry.Cell{Occupant: geometry.Black, Tile: geometry.NoTile})
		s.Board = s.Board.Set(1, 2, geometry.Cell{Occupant: geometry.White, Tile: geometry.NoTile})
		s.Board = s.Board.Set(3, 2, geometry.Cell{Occupant: geometry.White, Tile: geometry.NoTile})
		s.Board = s.Board.Set(2, 1, geometry.Cell{Occupant: geometry.White, Tile: geometry.NoTile})
		s.Board = s.Board.Set(2, 3, geometry.Cell{Occupant: geometry.White, Tile: geometry.NoTile})

		net := ntuple.NewNetwork()
		rng := rand.New(rand.NewSource(3))
		tree := New(s, net, rng)

		Convey("SearchIterations returns ErrTerminalRoot", func() {
			_, err := tree.SearchIterations(10)
			So(err, ShouldEqual, ErrTerminalRoot)
		})
	})
}

func TestWonNodeIsNeverExpanded(t *testing.T) {
	Convey("Given a state one move from a Black win, with White still mobile after", t, func() {
		s := geometry.GameState{ToMove: geometry.Black}
		s.Board = s.Board.Set(2, geometry.Height-2, geometry.Cell{Occupant: geometry.Black, Tile: geometry.NoTile})
		s.Board = s.Board.Set(0, 2, geometry.Cell{Occupant: geometry.White, Tile: geometry.NoTile})

		net := ntuple.NewNetwork()
		rng := rand.New(rand.NewSource(4))
		tree := New(s, net, rng)

		Convey("the won child reached by selection is treated as a leaf, not expanded", func() {
			_, err := tree.SearchIterations(300)
			So(err, ShouldBeNil)

			var wonChild *Node
			for _, c := range tree.root.children {
				if rules.IsWin(c.state, geometry.Black) {
					wonChild = c
				}
			}
			So(wonChild, ShouldNotBeNil)
			So(isTerminal(wonChild.state), ShouldBeTrue)
			// White still has legal moves on this board, so untried is
			// non-empty; expand must never have drained it, since the node
			// is terminal from Black's win, not from White's mobility.
			So(len(wonChild.untried), ShouldBeGreaterThan, 0)
			So(len(wonChild.children), ShouldEqual, 0)
		})
	})
}

func TestUCB1UnvisitedIsInfinite(t *testing.T) {
	Convey("Given an unvisited node", t, func() {
		n := &Node{}
		Convey("Its UCB1 score is +Inf regardless of parent visits", func() {
			So(ucb1(n, 10), ShouldEqual, math.Inf(1))
		})
	})
}
