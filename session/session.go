// Package session implements the construct/apply-move/legal-moves/render
// contract that an out-of-scope TCP or HTTP collaborator would sit on
// top of (spec.md §6). It imports no networking package: Session only
// ever reads and mutates a geometry.GameState, leaving wire framing to
// whatever transport a caller bolts on.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/policy"
	"github.com/Terauchi01/Contrast/internal/rules"
)

// ErrRoleTaken reports that both playable roles are already assigned.
// Session itself does not track roles, so none of its methods return it.
var ErrRoleTaken = errors.New("session: both player roles are already assigned")

// Status mirrors spec.md §6's line-protocol status strings.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusXWin    Status = "X_win"
	StatusOWin    Status = "O_win"
)

// Session is one in-progress game plus the policy, if any, driving each
// side's AI moves.
type Session struct {
	state geometry.GameState

	black policy.Policy // nil if Black is human-controlled
	white policy.Policy // nil if White is human-controlled

	lastMove   geometry.Move
	hasLastMove bool
}

// New starts a fresh game. black and white may be nil for a
// human-controlled side.
func New(black, white policy.Policy) *Session {
	return &Session{state: geometry.NewGame(), black: black, white: white}
}

// Reset discards the current game and starts a new one, keeping the same
// AI assignments.
func (s *Session) Reset() {
	s.state = geometry.NewGame()
	s.hasLastMove = false
}

// State returns the current game state.
func (s *Session) State() geometry.GameState {
	return s.state
}

// LegalMoves enumerates the legal moves for the side to move.
func (s *Session) LegalMoves() []geometry.Move {
	return rules.LegalMoves(s.state)
}

// Status reports the session's current outcome.
func (s *Session) Status() Status {
	if rules.IsWin(s.state, geometry.Black) {
		return StatusXWin
	}
	if rules.IsWin(s.state, geometry.White) {
		return StatusOWin
	}
	return StatusOngoing
}

// ApplyMove validates m against LegalMoves field-by-field and, if legal,
// applies it and records it as the last move played.
func (s *Session) ApplyMove(m geometry.Move) error {
	next, err := rules.Apply(s.state, m)
	if err != nil {
		return err
	}
	s.state = next
	s.lastMove = m
	s.hasLastMove = true
	return nil
}

// ApplyMoveLiteral parses literal as "<from>,<to>[,<tile-square><kind>]"
// using the textual coordinate grammar and applies the resulting move.
func (s *Session) ApplyMoveLiteral(literal string) error {
	m, err := ParseMoveLiteral(literal)
	if err != nil {
		return err
	}
	return s.ApplyMove(m)
}

// AIMove asks the side to move's configured policy for a move and
// applies it. It returns an error if that side has no policy assigned
// (a human-controlled seat) or if the policy reports no legal moves.
func (s *Session) AIMove(rng *rand.Rand) (geometry.Move, error) {
	p := s.policyFor(s.state.ToMove)
	if p == nil {
		return geometry.Move{}, fmt.Errorf("session: %s has no AI policy assigned", s.state.ToMove)
	}
	m, err := p.Pick(s.state, rng)
	if err != nil {
		return geometry.Move{}, err
	}
	if err := s.ApplyMove(m); err != nil {
		return geometry.Move{}, err
	}
	return m, nil
}

func (s *Session) policyFor(p geometry.Player) policy.Policy {
	if p == geometry.Black {
		return s.black
	}
	return s.white
}

// BoardText renders the board as a fixed-width ASCII grid, rows
// top-to-bottom from y=Height-1 to y=0 (ranks 1 to 5, since rank =
// Height - y), files left-to-right a..e, one character per
// cell: '.' empty, 'x'/'o' for Black/White occupants, with a lowercase
// suffix 'b'/'g' when the cell also carries a tile.
func (s *Session) BoardText() string {
	var sb strings.Builder
	for y := geometry.Height - 1; y >= 0; y-- {
		for x := 0; x < geometry.Width; x++ {
			cell := s.state.Board.At(x, y)
			sb.WriteByte(occupantGlyph(cell.Occupant))
			if cell.Tile != geometry.NoTile {
				sb.WriteByte(tileGlyph(cell.Tile))
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func occupantGlyph(p geometry.Player) byte {
	switch p {
	case geometry.Black:
		return 'x'
	case geometry.White:
		return 'o'
	default:
		return '.'
	}
}

func tileGlyph(t geometry.TileType) byte {
	switch t {
	case geometry.BlackTile:
		return 'b'
	case geometry.GrayTile:
		return 'g'
	default:
		return ' '
	}
}

// BoardArray returns the 29-element external encoding of the current
// state (spec.md §6); to_move is not carried by the array.
func (s *Session) BoardArray() [geometry.ArrayLen]int {
	return geometry.Encode(s.state)
}

// LoadBoardArray replaces the session's board and inventories from a
// 29-element array, keeping the side to move unchanged.
func (s *Session) LoadBoardArray(a []int) error {
	decoded, err := geometry.Decode(a)
	if err != nil {
		return err
	}
	decoded.ToMove = s.state.ToMove
	s.state = decoded
	return nil
}
