package trainer

import (
	"math/rand"
	"testing"

	"github.com/Terauchi01/Contrast/config"
	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/ntuple"
	"github.com/Terauchi01/Contrast/internal/policy"
	"github.com/Terauchi01/Contrast/internal/telemetry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewRejectsUnknownOpponentStage(t *testing.T) {
	Convey("Given a config naming an unrecognised opponent", t, func() {
		cfg := config.Defaults()
		cfg.Opponent = "grandmaster"

		Convey("New returns an error", func() {
			_, err := New(cfg, ntuple.NewNetwork())
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNewDefaultsToGreedyStage(t *testing.T) {
	Convey("Given default config", t, func() {
		cfg := config.Defaults()

		Convey("New starts at the greedy curriculum stage", func() {
			tr, err := New(cfg, ntuple.NewNetwork())
			So(err, ShouldBeNil)
			So(tr.Stats.CurrentStage(), ShouldEqual, telemetry.StageGreedy)
		})
	})
}

func TestColourForGameAlternatesByParity(t *testing.T) {
	Convey("Given a trainer with Black as the base learner colour", t, func() {
		cfg := config.Defaults()
		tr, err := New(cfg, ntuple.NewNetwork())
		So(err, ShouldBeNil)
		tr.learnerColour.Store(int32(geometry.Black))

		Convey("Even game numbers get the base colour, odd ones the opposite", func() {
			So(tr.colourForGame(2), ShouldEqual, geometry.Black)
			So(tr.colourForGame(3), ShouldEqual, geometry.White)
			So(tr.colourForGame(4), ShouldEqual, geometry.Black)
		})
	})
}

func TestSwapLearnerColourFlips(t *testing.T) {
	Convey("Given a trainer whose learner is currently Black", t, func() {
		cfg := config.Defaults()
		tr, err := New(cfg, ntuple.NewNetwork())
		So(err, ShouldBeNil)
		tr.learnerColour.Store(int32(geometry.Black))

		Convey("swapLearnerColour flips it to White and back", func() {
			tr.swapLearnerColour()
			So(geometry.Player(tr.learnerColour.Load()), ShouldEqual, geometry.White)
			tr.swapLearnerColour()
			So(geometry.Player(tr.learnerColour.Load()), ShouldEqual, geometry.Black)
		})
	})
}

func TestRewardForPerspectives(t *testing.T) {
	Convey("Given a game won by Black", t, func() {
		winner := geometry.Black

		Convey("Black's reward is +1 and White's is -1", func() {
			So(rewardFor(geometry.Black, winner), ShouldEqual, float32(1))
			So(rewardFor(geometry.White, winner), ShouldEqual, float32(-1))
		})
	})

	Convey("Given a drawn game", t, func() {
		Convey("Both sides receive 0", func() {
			So(rewardFor(geometry.Black, geometry.NoPlayer), ShouldEqual, float32(0))
			So(rewardFor(geometry.White, geometry.NoPlayer), ShouldEqual, float32(0))
		})
	})
}

func TestCurrentLearningRateSchedule(t *testing.T) {
	Convey("Given a trainer at the very start of training", t, func() {
		cfg := config.Defaults()
		cfg.TotalGames = 1000
		tr, err := New(cfg, ntuple.NewNetwork())
		So(err, ShouldBeNil)

		Convey("The learning rate starts at lrMax", func() {
			So(tr.currentLearningRate(), ShouldAlmostEqual, 0.1, 1e-9)
		})

		Convey("It decays toward lrMin as games are processed", func() {
			tr.gamesProcessed = 1000
			So(tr.currentLearningRate(), ShouldAlmostEqual, 0.005+(0.1-0.005)/20, 1e-9)

			tr.gamesProcessed = 2000 // past the budget; p clamps to 1
			clamped := tr.currentLearningRate()
			tr.gamesProcessed = 1000
			atBudget := tr.currentLearningRate()
			So(clamped, ShouldAlmostEqual, atBudget, 1e-9)
		})

		Convey("It is strictly decreasing in the fraction of games processed", func() {
			tr.gamesProcessed = 100
			early := tr.currentLearningRate()
			tr.gamesProcessed = 500
			mid := tr.currentLearningRate()
			tr.gamesProcessed = 900
			late := tr.currentLearningRate()
			So(early, ShouldBeGreaterThan, mid)
			So(mid, ShouldBeGreaterThan, late)
		})
	})
}

func TestMaybePromoteAdvancesStageOnHighWinRate(t *testing.T) {
	Convey("Given a trainer at the greedy stage with a full, high-win-rate window", t, func() {
		cfg := config.Defaults()
		tr, err := New(cfg, ntuple.NewNetwork())
		So(err, ShouldBeNil)
		for i := 0; i < bootstrapGames; i++ {
			tr.window.Push(1) // 100% win rate
		}

		Convey("maybePromote advances to rule-based and resets the window", func() {
			tr.maybePromote()
			So(tr.Stats.CurrentStage(), ShouldEqual, telemetry.StageRuleBased)
			So(tr.window.Rate(), ShouldEqual, 0)
		})
	})
}

func TestMaybePromoteStaysPutBelowThreshold(t *testing.T) {
	Convey("Given a full window whose win rate is below the promotion threshold", t, func() {
		cfg := config.Defaults()
		tr, err := New(cfg, ntuple.NewNetwork())
		So(err, ShouldBeNil)
		for i := 0; i < bootstrapGames; i++ {
			tr.window.Push(0) // 0% win rate
		}

		Convey("maybePromote leaves the stage unchanged", func() {
			tr.maybePromote()
			So(tr.Stats.CurrentStage(), ShouldEqual, telemetry.StageGreedy)
		})
	})
}

func TestMaybePromoteNoopAtTerminalStage(t *testing.T) {
	Convey("Given a trainer already at the self-play stage", t, func() {
		cfg := config.Defaults()
		cfg.Opponent = "self"
		tr, err := New(cfg, ntuple.NewNetwork())
		So(err, ShouldBeNil)
		for i := 0; i < bootstrapGames; i++ {
			tr.window.Push(1)
		}

		Convey("maybePromote does not change the stage or reset the window", func() {
			tr.maybePromote()
			So(tr.Stats.CurrentStage(), ShouldEqual, telemetry.StageSelf)
			So(tr.window.Full(), ShouldBeTrue)
		})
	})
}

func TestCheckpointNoopWithoutDirectory(t *testing.T) {
	Convey("Given a trainer configured with no checkpoint directory", t, func() {
		cfg := config.Defaults()
		cfg.CheckpointDir = ""
		tr, err := New(cfg, ntuple.NewNetwork())
		So(err, ShouldBeNil)

		Convey("checkpoint does nothing and does not panic", func() {
			So(func() { tr.checkpoint() }, ShouldNotPanic)
		})
	})
}

func TestPlayGameProducesAWinnerOrDraw(t *testing.T) {
	Convey("Given a trainer and a fresh game", t, func() {
		cfg := config.Defaults()
		tr, err := New(cfg, ntuple.NewNetwork())
		So(err, ShouldBeNil)
		rng := rand.New(rand.NewSource(42))

		Convey("playGame returns a trajectory whose winner is a valid player or a draw", func() {
			traj := tr.playGame(rng, geometry.Black, policy.Random{})
			So(traj.winner, ShouldBeIn, []geometry.Player{geometry.NoPlayer, geometry.Black, geometry.White})
			So(len(traj.states), ShouldBeGreaterThan, 0)
		})
	})
}

func TestRunMatchTallyIsConsistent(t *testing.T) {
	Convey("Given two random policies playing a short series", t, func() {
		rng := rand.New(rand.NewSource(7))

		Convey("RunMatch's win/loss/draw tally sums to games played", func() {
			res := RunMatch(policy.Random{}, policy.Random{}, 6, rng)
			So(res.GamesPlayed, ShouldEqual, 6)
			So(res.AWins+res.BWins+res.Draws, ShouldEqual, res.GamesPlayed)
		})
	})
}

func TestRunMatchCompletesWithAOnEitherColour(t *testing.T) {
	Convey("Given a rule-based player against a weaker random one", t, func() {
		rng := rand.New(rand.NewSource(3))

		Convey("RunMatch completes without error regardless of which colour a plays", func() {
			res := RunMatch(policy.RuleBased{}, policy.Random{}, 4, rng)
			So(res.GamesPlayed, ShouldEqual, 4)
		})
	})
}
