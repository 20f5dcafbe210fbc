// Package config loads training configuration from YAML the way the
// teacher's reinforcement-learning config loader does: viper reads the
// file into an untyped envelope, which is re-marshalled into a typed
// inner struct. The indirection exists because viper's own struct
// tags/unmarshalling don't play well with a "kind + arbitrary def" outer
// shape, so the def payload is round-tripped through yaml.v3 instead.
package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// OuterConfig is the file's top-level envelope: a discriminator plus an
// arbitrary payload re-marshalled into TrainingConfig.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// HyperParameter is one named float configuration value. Keeping
// hyperparameters as a flat key/value list (rather than individual typed
// fields) matches the teacher's config shape and lets new parameters be
// added without a schema change.
type HyperParameter struct {
	Key string  `yaml:"key"`
	Val float64 `yaml:"val"`
}

// TrainingConfig is Contrast's training run configuration: hyperparameters
// plus the handful of typed top-level fields the trainer needs that
// aren't naturally a float (opponent kind, thread count, file paths).
type TrainingConfig struct {
	HyperParams []HyperParameter `yaml:"hyperParams"`

	// TotalGames is the training budget, in games.
	TotalGames int `yaml:"totalGames"`
	// Threads is the worker pool size; 0 means "let the trainer choose".
	Threads int `yaml:"threads"`
	// Opponent names the initial curriculum stage: "greedy", "rule-based",
	// or "self".
	Opponent string `yaml:"opponent"`
	// SaveInterval is how often (in games) to checkpoint the learner.
	SaveInterval int `yaml:"saveInterval"`
	// SwapInterval is how often (in games) the learner's colour flips.
	SwapInterval int `yaml:"swapInterval"`
	// CheckpointDir is where checkpoints are written.
	CheckpointDir string `yaml:"checkpointDir"`
	// MaxTurns caps the number of plies per training game before it is
	// scored a draw; 0 means "let the trainer use its built-in default".
	MaxTurns int `yaml:"maxTurns"`

	TrainingDeadline map[string]string `yaml:"trainingDeadline"`
}

// GetHyperParamOrDefault returns the named hyperparameter's value, or
// defaultVal if it isn't present in HyperParams.
func (cfg *TrainingConfig) GetHyperParamOrDefault(param string, defaultVal float64) float64 {
	for _, kvp := range cfg.HyperParams {
		if kvp.Key == param {
			return kvp.Val
		}
	}
	return defaultVal
}

// WithTrainingDeadline returns a context bound by the configured training
// deadline, if one is set; otherwise a plain cancellable context.
func (cfg *TrainingConfig) WithTrainingDeadline(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if val, ok := cfg.TrainingDeadline["duration"]; ok {
		duration, err := time.ParseDuration(val)
		if err != nil {
			return nil, nil, err
		}
		innerCtx, cancel := context.WithTimeout(ctx, duration)
		return innerCtx, cancel, nil
	}
	defaultCtx, cancel := context.WithCancel(ctx)
	return defaultCtx, cancel, nil
}

// FromYAML reads path via viper, then re-marshals its "def" payload
// through yaml.v3 into a TrainingConfig.
func FromYAML(path string) (*TrainingConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outer := &OuterConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}

	spec, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, err
	}

	inner := &TrainingConfig{}
	if err := yaml.Unmarshal(spec, inner); err != nil {
		return nil, err
	}
	return inner, nil
}

// Defaults returns a TrainingConfig populated with sensible default
// hyperparameters, used when no config file is given.
func Defaults() *TrainingConfig {
	return &TrainingConfig{
		HyperParams: []HyperParameter{
			{Key: "lrMax", Val: 0.1},
			{Key: "lrMin", Val: 0.005},
			{Key: "lrDecayK", Val: 19},
			{Key: "epsilon", Val: 0.1},
			{Key: "promotionWinRate", Val: 0.55},
		},
		TotalGames:    10000,
		Threads:       0,
		Opponent:      "greedy",
		SaveInterval:  500,
		SwapInterval:  10000,
		CheckpointDir: "checkpoints",
	}
}
