// Command evaluate plays a loaded network against a chosen opponent and
// reports the head-to-head tally, for checking a checkpoint's strength
// without a training run.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/ntuple"
	"github.com/Terauchi01/Contrast/internal/policy"
	"github.com/Terauchi01/Contrast/internal/rules"
)

var (
	weights    *string
	games      *int
	opponent   *string
	swapColors *bool
)

func init() {
	weights = flag.String("weights", "", "path to a trained weights file (required)")
	games = flag.Int("games", 100, "number of games to play")
	opponent = flag.String("opponent", "greedy", "opponent: self, greedy, or rulebased")
	swapColors = flag.Bool("swap-colors", true, "alternate which colour the loaded network plays each game")
	flag.Parse()
}

func opponentPolicy(name string, net *ntuple.Network) (policy.Policy, error) {
	switch name {
	case "self":
		return policy.EpsilonGreedy{Network: net, Epsilon: 0}, nil
	case "greedy":
		return policy.Greedy{}, nil
	case "rulebased", "rule-based":
		return policy.RuleBased{}, nil
	default:
		return nil, fmt.Errorf("evaluate: unknown opponent %q", name)
	}
}

// tally is a head-to-head result from the loaded network's perspective.
type tally struct {
	played, wins, losses, draws int
}

// playOne plays a single game to completion, the loaded network assigned
// netColour, and returns its outcome from the network's perspective.
func playOne(net policy.Policy, opp policy.Policy, netColour geometry.Player, rng *rand.Rand) geometry.Player {
	s := geometry.NewGame()
	const maxMoves = 500
	for move := 0; move < maxMoves; move++ {
		if rules.IsWin(s, geometry.Black) || rules.IsWin(s, geometry.White) || rules.IsLoss(s, s.ToMove) {
			break
		}

		p := opp
		if s.ToMove == netColour {
			p = net
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

	switch {
	case rules.IsWin(s, geometry.Black):
		return geometry.Black
	case rules.IsWin(s, geometry.White):
		return geometry.White
	case rules.IsLoss(s, s.ToMove):
		return s.ToMove.Opponent()
	default:
		return geometry.NoPlayer
	}
}

func runMatch(net, opp policy.Policy, n int, alternate bool, rng *rand.Rand) tally {
	var t tally
	netColour := geometry.Black
	for i := 0; i < n; i++ {
		if alternate && i%2 == 1 {
			netColour = geometry.White
		} else if alternate {
			netColour = geometry.Black
		}

		winner := playOne(net, opp, netColour, rng)
		t.played++
		switch winner {
		case geometry.NoPlayer:
			t.draws++
		case netColour:
			t.wins++
		default:
			t.losses++
		}
	}
	return t
}

func runApp() error {
	if *weights == "" {
		return fmt.Errorf("evaluate: -weights is required")
	}

	net, err := ntuple.Load(*weights)
	if err != nil {
		return fmt.Errorf("evaluate: loading %s: %w", *weights, err)
	}

	netPolicy := policy.EpsilonGreedy{Network: net, Epsilon: 0}
	oppPolicy, err := opponentPolicy(*opponent, net)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	result := runMatch(netPolicy, oppPolicy, *games, *swapColors, rng)

	winRate := 0.0
	if result.played > 0 {
		winRate = float64(result.wins) / float64(result.played)
	}
	fmt.Printf("evaluate: %d games played, %d wins, %d losses, %d draws (win rate %.3f)\n",
		result.played, result.wins, result.losses, result.draws, winRate)
	return nil
}

func main() {
	if err := runApp(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
