// Package policy implements Contrast's move-selection strategies: random
// play, a distance heuristic, a priority-ladder rule-based player, and an
// epsilon-greedy wrapper around an N-tuple evaluator (spec.md 4.F). Every
// policy resolves ties uniformly at random rather than by move order, so
// that deterministic-looking policies don't develop exploitable biases
// from iteration order alone.
package policy

import (
	"errors"
	"math/rand"

	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/ntuple"
	"github.com/Terauchi01/Contrast/internal/rules"
)

// ErrNoLegalMoves is returned by Pick when the given state has no legal
// moves for the side to move; callers should treat this the same as a
// loss (see rules.IsLoss) rather than retry.
var ErrNoLegalMoves = errors.New("policy: state has no legal moves")

// Policy selects one move from a game state.
type Policy interface {
	Pick(s geometry.GameState, rng *rand.Rand) (geometry.Move, error)
}

func pickUniform(moves []geometry.Move, rng *rand.Rand) geometry.Move {
	return moves[rng.Intn(len(moves))]
}

// bestByScore returns a uniformly-random pick among the moves tied for
// the highest score, where higher is better. It's the shared tie-breaking
// machinery behind every deterministic policy below.
func bestByScore(moves []geometry.Move, rng *rand.Rand, score func(geometry.Move) float64) geometry.Move {
	best := score(moves[0])
	var tied []geometry.Move
	tied = append(tied, moves[0])
	for _, m := range moves[1:] {
		s := score(m)
		switch {
		case s > best:
			best = s
			tied = tied[:0]
			tied = append(tied, m)
		case s == best:
			tied = append(tied, m)
		}
	}
	return pickUniform(tied, rng)
}

// Random plays uniformly over the legal-move list.
type Random struct{}

func (Random) Pick(s geometry.GameState, rng *rand.Rand) (geometry.Move, error) {
	moves := rules.LegalMoves(s)
	if len(moves) == 0 {
		return geometry.Move{}, ErrNoLegalMoves
	}
	return pickUniform(moves, rng), nil
}

// Greedy prefers moves that strictly reduce the mover's distance to its
// goal rank, then moves that don't increase it, then falls back to
// uniform among whatever's left at the best tier.
type Greedy struct{}

func distanceToGoal(p geometry.Player, y int) int {
	goal := rules.GoalRank(p)
	d := goal - y
	if d < 0 {
		d = -d
	}
	return d
}

func (Greedy) Pick(s geometry.GameState, rng *rand.Rand) (geometry.Move, error) {
	moves := rules.LegalMoves(s)
	if len(moves) == 0 {
		return geometry.Move{}, ErrNoLegalMoves
	}

	mover := s.ToMove
	return bestByScore(moves, rng, func(m geometry.Move) float64 {
		before := distanceToGoal(mover, m.SY)
		after := distanceToGoal(mover, m.DY)
		switch {
		case after < before:
			return 2 // strict forward progress
		case after <= before:
			return 1 // non-retreating
		default:
			return 0 // retreats
		}
	}), nil
}

// RuleBased plays a priority ladder: take an immediate win if one exists;
// otherwise block an opponent win threatened for their next turn if one
// exists; otherwise maximise a forward-progress heuristic.
type RuleBased struct{}

func (RuleBased) Pick(s geometry.GameState, rng *rand.Rand) (geometry.Move, error) {
	moves := rules.LegalMoves(s)
	if len(moves) == 0 {
		return geometry.Move{}, ErrNoLegalMoves
	}

	mover := s.ToMove
	opponent := mover.Opponent()

	var winning []geometry.Move
	for _, m := range moves {
		next, err := rules.Apply(s, m)
		if err != nil {
			continue
		}
		if rules.IsWin(next, mover) {
			winning = append(winning, m)
		}
	}
	if len(winning) > 0 {
		return pickUniform(winning, rng), nil
	}

	if opponentThreatensWin(s, opponent) {
		var blocking []geometry.Move
		for _, m := range moves {
			next, err := rules.Apply(s, m)
			if err != nil {
				continue
			}
			if !opponentCanWinFrom(next, opponent) {
				blocking = append(blocking, m)
			}
		}
		if len(blocking) > 0 {
			return bestByScore(blocking, rng, func(m geometry.Move) float64 {
				return forwardProgressScore(mover, m)
			}), nil
		}
	}

	return bestByScore(moves, rng, func(m geometry.Move) float64 {
		return forwardProgressScore(mover, m)
	}), nil
}

// opponentThreatensWin reports whether, were it opponent's turn right now
// on s's board, some legal move would win immediately for opponent.
func opponentThreatensWin(s geometry.GameState, opponent geometry.Player) bool {
	return opponentCanWinFrom(s.WithToMove(opponent), opponent)
}

// opponentCanWinFrom reports whether opponent, to move in s, has a legal
// move that wins immediately.
func opponentCanWinFrom(s geometry.GameState, opponent geometry.Player) bool {
	if s.ToMove != opponent {
		return false
	}
	for _, m := range rules.LegalMoves(s) {
		next, err := rules.Apply(s, m)
		if err != nil {
			continue
		}
		if rules.IsWin(next, opponent) {
			return true
		}
	}
	return false
}

// forwardProgressScore rewards moves that advance the mover toward its
// goal rank, with a small bonus for tile placements that keep the
// inventory active rather than letting tiles sit unused.
func forwardProgressScore(mover geometry.Player, m geometry.Move) float64 {
	before := distanceToGoal(mover, m.SY)
	after := distanceToGoal(mover, m.DY)
	score := float64(before - after)
	if m.HasTile {
		score += 0.1
	}
	return score
}

// EpsilonGreedy plays uniformly at random with probability Epsilon, and
// otherwise negamax-best against Network: the move whose resulting state
// Network evaluates most unfavourably for the opponent to move next.
type EpsilonGreedy struct {
	Network *ntuple.Network
	Epsilon float64
}

func (e EpsilonGreedy) Pick(s geometry.GameState, rng *rand.Rand) (geometry.Move, error) {
	moves := rules.LegalMoves(s)
	if len(moves) == 0 {
		return geometry.Move{}, ErrNoLegalMoves
	}

	if rng.Float64() < e.Epsilon {
		return pickUniform(moves, rng), nil
	}

	return bestByScore(moves, rng, func(m geometry.Move) float64 {
		next, err := rules.Apply(s, m)
		if err != nil {
			return -1
		}
		return float64(-e.Network.Evaluate(next))
	}), nil
}
