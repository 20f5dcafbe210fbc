// Package trainer runs Contrast's multi-threaded self-play training
// pipeline: a pool of game-playing workers feeding a single updater that
// applies TD(0) to the learner network, tracks curriculum promotion, and
// checkpoints to disk. The worker/updater split and errgroup-supervised
// goroutine coordination follow the teacher's producer/consumer training
// loop and its websocket client's read/ping/publish trio.
package trainer

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"github.com/Terauchi01/Contrast/config"
	"github.com/Terauchi01/Contrast/internal/dashboard/viewmodel"
	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/ntuple"
	"github.com/Terauchi01/Contrast/internal/policy"
	"github.com/Terauchi01/Contrast/internal/rules"
	"github.com/Terauchi01/Contrast/internal/telemetry"
)

// defaultMaxMovesPerGame is the turn cap used when cfg.MaxTurns is unset:
// a training game that reaches it is scored as a draw rather than played
// to exhaustion.
const defaultMaxMovesPerGame = 500

// bootstrapGames is how many games the updater processes before the
// first curriculum promotion check; it also sizes the rolling win-rate
// window.
const bootstrapGames = 1000

// recordedState is one (state, whose-turn-it-is) pair captured before a
// move was chosen, kept so the updater can later decide whose weights it
// belongs to and what reward it resolves to.
type recordedState struct {
	state   geometry.GameState
	learner bool
}

// trajectory is one completed game's replay, as sent from a worker to
// the updater over the merged result stream.
type trajectory struct {
	states        []recordedState
	winner        geometry.Player // NoPlayer for a draw or a capped-out game
	learnerColour geometry.Player
	stage         telemetry.CurriculumStage
	final         geometry.GameState // the board the game ended on, for the dashboard
}

// opponentSlot bundles the policy a worker should play against with the
// curriculum stage it represents, so the updater can tell, after the
// fact, whether a trajectory was played in self-play mode (where both
// sides' states train the learner).
type opponentSlot struct {
	policy policy.Policy
	stage  telemetry.CurriculumStage
}

// Trainer owns the learner network, the opponent snapshot, and the live
// statistics a dashboard would read. Construct one with New and drive it
// with Run.
type Trainer struct {
	cfg *config.TrainingConfig

	learner  *ntuple.Network
	opponent atomic.Pointer[opponentSlot]
	maxMoves int

	Stats *telemetry.Stats

	// snapshotOut is a best-effort, latest-value-only stream for the
	// dashboard: capacity 1, overwritten rather than blocked on if the
	// consumer falls behind.
	snapshotOut chan viewmodel.Snapshot

	gamesClaimed  atomic.Int64 // next game number to hand out, worker-side
	learnerColour atomic.Int32 // geometry.Black or geometry.White, flipped every SwapInterval games

	// window and gamesProcessed are owned exclusively by the updater
	// goroutine; no synchronisation needed.
	window        *telemetry.RollingWindow
	gamesProcessed int
}

// New returns a Trainer ready to Run, starting at the curriculum stage
// named by cfg.Opponent ("greedy", "rule-based", or "self").
func New(cfg *config.TrainingConfig, learner *ntuple.Network) (*Trainer, error) {
	stage, err := parseStage(cfg.Opponent)
	if err != nil {
		return nil, err
	}

	maxMoves := cfg.MaxTurns
	if maxMoves <= 0 {
		maxMoves = defaultMaxMovesPerGame
	}

	tr := &Trainer{
		cfg:         cfg,
		learner:     learner,
		Stats:       telemetry.NewStats(),
		window:      telemetry.NewRollingWindow(bootstrapGames),
		maxMoves:    maxMoves,
		snapshotOut: make(chan viewmodel.Snapshot, 1),
	}
	tr.learnerColour.Store(int32(geometry.Black))
	tr.opponent.Store(tr.slotForStage(stage))
	tr.Stats.SetStage(stage)
	return tr, nil
}

func parseStage(name string) (telemetry.CurriculumStage, error) {
	switch name {
	case "", "greedy":
		return telemetry.StageGreedy, nil
	case "rule-based", "rulebased":
		return telemetry.StageRuleBased, nil
	case "self":
		return telemetry.StageSelf, nil
	default:
		return 0, fmt.Errorf("trainer: unknown opponent stage %q", name)
	}
}

func (tr *Trainer) slotForStage(stage telemetry.CurriculumStage) *opponentSlot {
	switch stage {
	case telemetry.StageGreedy:
		return &opponentSlot{policy: policy.Greedy{}, stage: stage}
	case telemetry.StageRuleBased:
		return &opponentSlot{policy: policy.RuleBased{}, stage: stage}
	default:
		return &opponentSlot{
			policy: policy.EpsilonGreedy{Network: tr.learner.Snapshot(), Epsilon: 0},
			stage:  stage,
		}
	}
}

// Snapshots returns a stream of training snapshots, one attempted after
// every completed game. It is best-effort: a consumer slower than the
// update rate only ever observes the latest snapshot, never a backlog.
func (tr *Trainer) Snapshots() <-chan viewmodel.Snapshot {
	return tr.snapshotOut
}

// workerCount returns cfg.Threads if set, otherwise runtime.NumCPU()
// clamped to [4,7]: enough parallelism to keep the updater fed without
// flooding the result queue on very large machines.
func workerCount(cfg *config.TrainingConfig) int {
	if cfg.Threads > 0 {
		return cfg.Threads
	}
	n := runtime.NumCPU()
	if n < 4 {
		return 4
	}
	if n > 7 {
		return 7
	}
	return n
}

// Run drives the worker pool and updater to completion. Each worker
// claims game numbers until the budget is exhausted or ctx is cancelled,
// playing games onto its own small output channel; channerics.Merge fans
// those channels into one stream for the updater, which applies TD
// updates until every worker channel has closed and the merged stream
// drains. The per-worker channel's buffer of one is the bounded
// backpressure point: a worker cannot outrun the updater by more than one
// completed game.
func (tr *Trainer) Run(ctx context.Context) error {
	workers := workerCount(tr.cfg)

	group, groupCtx := errgroup.WithContext(ctx)
	chans := make([]<-chan *trajectory, workers)
	for i := 0; i < workers; i++ {
		id := i
		out := make(chan *trajectory, 1)
		chans[i] = out
		group.Go(func() error {
			return tr.runWorker(groupCtx, id, out)
		})
	}

	merged := channerics.Merge(ctx.Done(), chans...)
	updaterDone := make(chan struct{})
	go func() {
		defer close(updaterDone)
		tr.runUpdater(merged)
	}()

	workerErr := group.Wait()
	<-updaterDone
	return workerErr
}

// runWorker claims game numbers until the budget is exhausted, playing
// one game per claim and sending its trajectory on out, which it closes
// on return so channerics.Merge can tell when every worker has finished.
func (tr *Trainer) runWorker(ctx context.Context, id int, out chan<- *trajectory) error {
	defer close(out)
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		gameNum := tr.gamesClaimed.Add(1)
		if gameNum > int64(tr.cfg.TotalGames) {
			return nil
		}

		slot := tr.opponent.Load()
		learnerColour := tr.colourForGame(gameNum)

		traj := tr.playGame(rng, learnerColour, slot.policy)
		traj.learnerColour = learnerColour
		traj.stage = slot.stage

		select {
		case out <- traj:
		case <-ctx.Done():
			return nil
		}
	}
}

// colourForGame combines the slow role-swap flag with a per-game parity
// flip, so that within any stretch between role swaps the learner still
// alternates being first-to-move (Black) and second-to-move (White) from
// one game to the next.
func (tr *Trainer) colourForGame(gameNum int64) geometry.Player {
	base := geometry.Player(tr.learnerColour.Load())
	if gameNum%2 == 1 {
		return base.Opponent()
	}
	return base
}

// epsilon returns the exploration rate the learner plays with during
// self-play data generation.
func (tr *Trainer) epsilon() float64 {
	return tr.cfg.GetHyperParamOrDefault("epsilon", 0.1)
}

// playGame plays one game to a win, a no-legal-moves loss, or the move
// cap, recording every state visited before the side to move acted on
// it. The learner moves epsilon-greedily against its own network; the
// opponent moves greedily (epsilon=0) per its policy.
func (tr *Trainer) playGame(rng *rand.Rand, learnerColour geometry.Player, opponent policy.Policy) *trajectory {
	s := geometry.NewGame()
	learnerPolicy := policy.EpsilonGreedy{Network: tr.learner, Epsilon: tr.epsilon()}

	var states []recordedState
	for moveCount := 0; moveCount < tr.maxMoves; moveCount++ {
		if rules.IsWin(s, geometry.Black) || rules.IsWin(s, geometry.White) || rules.IsLoss(s, s.ToMove) {
			break
		}

		isLearner := s.ToMove == learnerColour
		states = append(states, recordedState{state: s, learner: isLearner})

		var (
			m   geometry.Move
			err error
		)
		if isLearner {
			m, err = learnerPolicy.Pick(s, rng)
		} else {
			m, err = opponent.Pick(s, rng)
		}
		if err != nil {
			// LegalMoves was non-empty (IsLoss check above passed), so a
			// policy returning an error here means its own internal
			// machinery failed, not that the game is actually stuck.
			log.Printf("trainer: policy.Pick failed mid-game, ending game early: %v", err)
			break
		}

		next, err := rules.Apply(s, m)
		if err != nil {
			log.Printf("trainer: rules.Apply rejected a policy-chosen move, ending game early: %v", err)
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

	return &trajectory{states: states, winner: winner, final: s}
}

// runUpdater applies TD updates, rolling statistics, curriculum
// promotion, checkpointing, and role-swap to every trajectory the merged
// worker stream yields, returning once that stream closes.
func (tr *Trainer) runUpdater(trajectories <-chan *trajectory) {
	for traj := range trajectories {
		tr.applyTrajectory(traj)
		tr.gamesProcessed++
		tr.publishSnapshot(traj)

		if tr.gamesProcessed >= bootstrapGames && tr.window.Full() {
			tr.maybePromote()
		}

		if tr.cfg.SaveInterval > 0 && tr.gamesProcessed%tr.cfg.SaveInterval == 0 {
			tr.checkpoint()
		}
		if tr.cfg.SwapInterval > 0 && tr.gamesProcessed%tr.cfg.SwapInterval == 0 {
			tr.swapLearnerColour()
		}
	}
}

// publishSnapshot offers the just-completed game's final board and the
// trainer's current stats to the dashboard stream, dropping the update
// rather than blocking the updater if no one is reading.
func (tr *Trainer) publishSnapshot(traj *trajectory) {
	snap := viewmodel.SnapshotFromStats(traj.final, tr.Stats)
	select {
	case tr.snapshotOut <- snap:
	default:
		select {
		case <-tr.snapshotOut:
		default:
		}
		select {
		case tr.snapshotOut <- snap:
		default:
		}
	}
}

// applyTrajectory updates statistics and, for every state that belongs
// to the learner (every state, in self-play), runs one TD(0) step toward
// the game's terminal outcome from that state's mover perspective.
func (tr *Trainer) applyTrajectory(traj *trajectory) {
	lr := tr.currentLearningRate()
	selfPlay := traj.stage == telemetry.StageSelf

	for _, rec := range traj.states {
		if !selfPlay && !rec.learner {
			continue
		}
		target := rewardFor(rec.state.ToMove, traj.winner)
		tr.learner.TDUpdate(rec.state, target, float32(lr))
	}

	outcome := rewardFor(traj.learnerColour, traj.winner)
	tr.Stats.RecordGame(float64(outcome))
	tr.Stats.LearningRate.AtomicSet(lr)

	winIndicator := 0.0
	if outcome > 0 {
		winIndicator = 1.0
	}
	tr.window.Push(winIndicator)
	tr.Stats.WinRate.AtomicSet(tr.window.Rate())
}

// rewardFor returns +1/-1/0 from mover's perspective given the game's
// winner (NoPlayer for a draw).
func rewardFor(mover, winner geometry.Player) float32 {
	switch winner {
	case geometry.NoPlayer:
		return 0
	case mover:
		return 1
	default:
		return -1
	}
}

// currentLearningRate implements the inverse-square decay schedule:
// lr = lr_min + (lr_max-lr_min)/(1+k*p^2), p the fractional progress
// through the training budget, clamped to [0,1].
func (tr *Trainer) currentLearningRate() float64 {
	lrMax := tr.cfg.GetHyperParamOrDefault("lrMax", 0.1)
	lrMin := tr.cfg.GetHyperParamOrDefault("lrMin", 0.005)
	k := tr.cfg.GetHyperParamOrDefault("lrDecayK", 19)

	p := 0.0
	if tr.cfg.TotalGames > 0 {
		p = float64(tr.gamesProcessed) / float64(tr.cfg.TotalGames)
	}
	p = math.Max(0, math.Min(1, p))

	return lrMin + (lrMax-lrMin)/(1+k*p*p)
}

// maybePromote advances the curriculum one stage if the rolling window's
// win rate clears the configured threshold, resetting the window either
// way progress is made.
func (tr *Trainer) maybePromote() {
	threshold := tr.cfg.GetHyperParamOrDefault("promotionWinRate", 0.55)
	rate := tr.window.Rate()
	if rate <= threshold {
		return
	}

	current := tr.Stats.CurrentStage()
	next := current
	switch current {
	case telemetry.StageGreedy:
		next = telemetry.StageRuleBased
	case telemetry.StageRuleBased:
		next = telemetry.StageSelf
	default:
		return // already at the terminal stage
	}

	tr.opponent.Store(tr.slotForStage(next))
	tr.Stats.SetStage(next)
	tr.window.Reset()
	log.Printf("trainer: curriculum promoted %s -> %s at game %d (win rate %.3f)", current, next, tr.gamesProcessed, rate)
}

// checkpoint writes the learner to a timestamped file under
// cfg.CheckpointDir and, in self-play mode, refreshes the opponent
// snapshot with the learner's current weights.
func (tr *Trainer) checkpoint() {
	if tr.cfg.CheckpointDir == "" {
		return
	}
	name := fmt.Sprintf("contrast-%08d.weights", tr.gamesProcessed)
	path := filepath.Join(tr.cfg.CheckpointDir, name)
	if err := tr.learner.Save(path); err != nil {
		log.Printf("trainer: checkpoint at game %d failed: %v", tr.gamesProcessed, err)
		return
	}

	if tr.Stats.CurrentStage() == telemetry.StageSelf {
		tr.opponent.Store(&opponentSlot{
			policy: policy.EpsilonGreedy{Network: tr.learner.Snapshot(), Epsilon: 0},
			stage:  telemetry.StageSelf,
		})
	}
}

// swapLearnerColour flips which colour the learner is assigned, the slow
// role-swap cadence independent of curriculum and checkpointing.
func (tr *Trainer) swapLearnerColour() {
	cur := geometry.Player(tr.learnerColour.Load())
	tr.learnerColour.Store(int32(cur.Opponent()))
}
