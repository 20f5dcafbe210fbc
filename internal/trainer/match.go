package trainer

import (
	"math/rand"

	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/policy"
	"github.com/Terauchi01/Contrast/internal/rules"
)

// MatchResult tallies a head-to-head series from a's perspective.
type MatchResult struct {
	GamesPlayed int
	AWins       int
	BWins       int
	Draws       int
}

// RunMatch plays games between a and b, alternating which of them plays
// Black each game so neither is structurally favoured by always moving
// first, and tallies the outcome from a's perspective.
func RunMatch(a, b policy.Policy, games int, rng *rand.Rand) MatchResult {
	var res MatchResult

	for i := 0; i < games; i++ {
		aColour := geometry.Black
		if i%2 == 1 {
			aColour = geometry.White
		}
		bColour := aColour.Opponent()

		s := geometry.NewGame()
		for move := 0; move < defaultMaxMovesPerGame; move++ {
			if rules.IsWin(s, geometry.Black) || rules.IsWin(s, geometry.White) || rules.IsLoss(s, s.ToMove) {
				break
			}

			p := b
			if s.ToMove == aColour {
				p = a
			}
			m, err := p.Pick(s, rng)
			if err != nil {
				break
			}
			next, err := rules.Apply(s, m)
			if err != nil {
				break
			}
			s = next
		}

		winner := geometry.NoPlayer
		switch {
		case rules.IsWin(s, geometry.Black):
			winner = geometry.Black
		case rules.IsWin(s, geometry.White):
			winner = geometry.White
		case rules.IsLoss(s, s.ToMove):
			winner = s.ToMove.Opponent()
		}

		res.GamesPlayed++
		switch winner {
		case geometry.NoPlayer:
			res.Draws++
		case aColour:
			res.AWins++
		case bColour:
			res.BWins++
		}
	}

	return res
}
