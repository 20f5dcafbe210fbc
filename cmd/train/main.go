// Command train runs Contrast's self-play training pipeline: load or
// create a learner network, drive internal/trainer.Run to the configured
// game budget, and save the resulting weights.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Terauchi01/Contrast/config"
	"github.com/Terauchi01/Contrast/internal/dashboard"
	"github.com/Terauchi01/Contrast/internal/dashboard/viewmodel"
	"github.com/Terauchi01/Contrast/internal/geometry"
	"github.com/Terauchi01/Contrast/internal/ntuple"
	"github.com/Terauchi01/Contrast/internal/trainer"
)

var (
	games        *int
	turns        *int
	lr           *float64
	epsilon      *float64
	opponent     *string
	threads      *int
	saveInterval *int
	output       *string
	load         *string
	dashHost     *string
	dashPort     *string
)

func init() {
	games = flag.Int("games", 10000, "number of self-play games to train for")
	turns = flag.Int("turns", 0, "per-game move cap before a draw is declared (0: trainer default)")
	lr = flag.Float64("lr", 0, "peak learning rate (0: config default)")
	epsilon = flag.Float64("epsilon", 0, "exploration rate during self-play (0: config default)")
	opponent = flag.String("opponent", "greedy", "initial curriculum stage: self, greedy, or rulebased")
	threads = flag.Int("threads", 0, "worker pool size (0: let the trainer choose)")
	saveInterval = flag.Int("save-interval", 500, "checkpoint interval, in games")
	output = flag.String("output", "contrast.weights", "path to write the final trained weights")
	load = flag.String("load", "", "path to an existing weights file to resume from")
	dashHost = flag.String("dashboard-host", "", "dashboard listen host")
	dashPort = flag.String("dashboard-port", "8080", "dashboard listen port")
	flag.Parse()
}

func checkpointDir() string {
	if dir := os.Getenv("CONTRAST_CHECKPOINT_DIR"); dir != "" {
		return dir
	}
	return "checkpoints"
}

func buildConfig() *config.TrainingConfig {
	cfg := config.Defaults()
	cfg.TotalGames = *games
	cfg.MaxTurns = *turns
	cfg.Opponent = *opponent
	cfg.Threads = *threads
	cfg.SaveInterval = *saveInterval
	cfg.CheckpointDir = checkpointDir()

	if *lr > 0 {
		cfg.HyperParams = append(cfg.HyperParams, config.HyperParameter{Key: "lrMax", Val: *lr})
	}
	if *epsilon > 0 {
		cfg.HyperParams = append(cfg.HyperParams, config.HyperParameter{Key: "epsilon", Val: *epsilon})
	}
	return cfg
}

func loadLearner() (*ntuple.Network, error) {
	if *load == "" {
		return ntuple.NewNetwork(), nil
	}
	net, err := ntuple.Load(*load)
	if err != nil {
		return nil, fmt.Errorf("train: loading %s: %w", *load, err)
	}
	return net, nil
}

func runApp() (err error) {
	cfg := buildConfig()

	learner, err := loadLearner()
	if err != nil {
		return err
	}

	tr, err := trainer.New(cfg, learner)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	trainingCtx, deadlineCancel, err := cfg.WithTrainingDeadline(ctx)
	if err != nil {
		return err
	}
	defer deadlineCancel()

	initial := viewmodel.SnapshotFromStats(geometry.NewGame(), tr.Stats)
	dash := dashboard.New(ctx, *dashHost+":"+*dashPort, initial, tr.Snapshots())
	go func() {
		if err := dash.Serve(); err != nil {
			log.Println("train: dashboard exited:", err)
		}
	}()

	if err = tr.Run(trainingCtx); err != nil {
		return err
	}

	if err = learner.Save(*output); err != nil {
		return fmt.Errorf("train: saving %s: %w", *output, err)
	}
	fmt.Printf("train: wrote %s after %d games (win rate %.3f)\n", *output, cfg.TotalGames, tr.Stats.WinRate.AtomicRead())
	return nil
}

func main() {
	if err := runApp(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
