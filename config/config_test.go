package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGetHyperParamOrDefault(t *testing.T) {
	Convey("Given a config with one hyperparameter set", t, func() {
		cfg := &TrainingConfig{
			HyperParams: []HyperParameter{{Key: "epsilon", Val: 0.2}},
		}

		Convey("The set key returns its value", func() {
			So(cfg.GetHyperParamOrDefault("epsilon", 0.5), ShouldEqual, 0.2)
		})

		Convey("An unset key returns the default", func() {
			So(cfg.GetHyperParamOrDefault("lrMax", 0.1), ShouldEqual, 0.1)
		})
	})
}

func TestWithTrainingDeadline(t *testing.T) {
	Convey("Given a config with a parseable duration deadline", t, func() {
		cfg := &TrainingConfig{TrainingDeadline: map[string]string{"duration": "1h"}}

		Convey("WithTrainingDeadline returns a context with a deadline set", func() {
			ctx, cancel, err := cfg.WithTrainingDeadline(context.Background())
			So(err, ShouldBeNil)
			defer cancel()
			_, ok := ctx.Deadline()
			So(ok, ShouldBeTrue)
		})
	})

	Convey("Given a config with no deadline", t, func() {
		cfg := &TrainingConfig{}

		Convey("WithTrainingDeadline returns a plain cancellable context", func() {
			ctx, cancel, err := cfg.WithTrainingDeadline(context.Background())
			So(err, ShouldBeNil)
			defer cancel()
			_, ok := ctx.Deadline()
			So(ok, ShouldBeFalse)
		})
	})
}

func TestFromYAMLRoundTrip(t *testing.T) {
	Convey("Given a YAML file in the outer-envelope shape", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "training.yaml")
		contents := `
kind: training
def:
  hyperParams:
    - key: epsilon
      val: 0.15
    - key: lrMax
      val: 0.1
  totalGames: 5000
  threads: 4
  opponent: greedy
  saveInterval: 250
  swapInterval: 10000
  checkpointDir: /tmp/ckpt
`
		So(os.WriteFile(path, []byte(contents), 0o600), ShouldBeNil)

		Convey("FromYAML parses hyperparameters and top-level fields", func() {
			cfg, err := FromYAML(path)
			So(err, ShouldBeNil)
			So(cfg.TotalGames, ShouldEqual, 5000)
			So(cfg.Threads, ShouldEqual, 4)
			So(cfg.Opponent, ShouldEqual, "greedy")
			So(cfg.GetHyperParamOrDefault("epsilon", 0), ShouldEqual, 0.15)
		})
	})
}

func TestDefaults(t *testing.T) {
	Convey("Defaults returns a usable configuration", t, func() {
		cfg := Defaults()
		So(cfg.TotalGames, ShouldBeGreaterThan, 0)
		So(cfg.SaveInterval, ShouldBeGreaterThan, 0)
		So(cfg.GetHyperParamOrDefault("lrMax", -1), ShouldEqual, 0.1)
	})
}
