// Package config loads the analysis settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerstats/internal/evaluator"
	"github.com/lox/pokerstats/internal/hand"
	"github.com/lox/pokerstats/internal/leaks"
	"github.com/lox/pokerstats/internal/stats"
)

// Config is the complete analysis configuration.
type Config struct {
	Layout             string      `hcl:"layout,optional"`
	ReconcileTolerance *int64      `hcl:"reconcile_tolerance,optional"`
	Workers            int         `hcl:"workers,optional"`
	Evaluator          string      `hcl:"evaluator,optional"`
	StackDepth         *StackDepth `hcl:"stack_depth,block"`
	Leaks              *LeakConfig `hcl:"leaks,block"`
}

// StackDepth holds the effective-stack bucket boundaries in big blinds.
type StackDepth struct {
	ShallowBelow float64 `hcl:"shallow_below,optional"`
	DeepAbove    float64 `hcl:"deep_above,optional"`
}

// LeakConfig overrides entries of the leak threshold table.
type LeakConfig struct {
	VPIPMax     *float64 `hcl:"vpip_max,optional"`
	VPIPMin     *float64 `hcl:"vpip_min,optional"`
	PFRRatioMin *float64 `hcl:"pfr_ratio_min,optional"`
	PFRRatioMax *float64 `hcl:"pfr_ratio_max,optional"`
	ThreeBetMax *float64 `hcl:"three_bet_max,optional"`
	ThreeBetMin *float64 `hcl:"three_bet_min,optional"`
	CBetMax     *float64 `hcl:"cbet_max,optional"`
	CBetMin     *float64 `hcl:"cbet_min,optional"`
	AFMax       *float64 `hcl:"af_max,optional"`
	AFMin       *float64 `hcl:"af_min,optional"`
	MinHands    *int64   `hcl:"min_hands,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads an HCL configuration file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Layout == "" {
		c.Layout = string(hand.Layout6Max)
	}
	if c.ReconcileTolerance == nil {
		tolerance := hand.DefaultOptions().Tolerance
		c.ReconcileTolerance = &tolerance
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Evaluator == "" {
		c.Evaluator = evaluator.BackendChehsunliu
	}
	if c.StackDepth == nil {
		c.StackDepth = &StackDepth{}
	}
	def := stats.DefaultDepthBuckets()
	if c.StackDepth.ShallowBelow == 0 {
		c.StackDepth.ShallowBelow = def.ShallowBelow
	}
	if c.StackDepth.DeepAbove == 0 {
		c.StackDepth.DeepAbove = def.DeepAbove
	}
	if c.Leaks == nil {
		c.Leaks = &LeakConfig{}
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if !hand.Layout(c.Layout).Valid() {
		return fmt.Errorf("invalid layout %q: want 6max or 9max", c.Layout)
	}
	if c.ReconcileTolerance != nil && *c.ReconcileTolerance < 0 {
		return fmt.Errorf("reconcile_tolerance must not be negative")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := evaluator.New(c.Evaluator); err != nil {
		return err
	}
	if c.StackDepth.ShallowBelow <= 0 || c.StackDepth.DeepAbove < c.StackDepth.ShallowBelow {
		return fmt.Errorf("stack_depth: need 0 < shallow_below <= deep_above, got %.1f and %.1f",
			c.StackDepth.ShallowBelow, c.StackDepth.DeepAbove)
	}
	return c.Thresholds().Validate()
}

// Options returns the reconstruction options.
func (c *Config) Options() hand.Options {
	opts := hand.DefaultOptions()
	opts.Layout = hand.Layout(c.Layout)
	if c.ReconcileTolerance != nil {
		opts.Tolerance = *c.ReconcileTolerance
	}
	return opts
}

// Buckets returns the stack-depth boundaries.
func (c *Config) Buckets() stats.DepthBuckets {
	return stats.DepthBuckets{ShallowBelow: c.StackDepth.ShallowBelow, DeepAbove: c.StackDepth.DeepAbove}
}

// Thresholds returns the leak table with any overrides applied.
func (c *Config) Thresholds() leaks.Thresholds {
	t := leaks.DefaultThresholds()
	l := c.Leaks
	if l == nil {
		return t
	}
	for _, o := range []struct {
		src *float64
		dst *float64
	}{
		{l.VPIPMax, &t.VPIPMax},
		{l.VPIPMin, &t.VPIPMin},
		{l.PFRRatioMin, &t.PFRRatioMin},
		{l.PFRRatioMax, &t.PFRRatioMax},
		{l.ThreeBetMax, &t.ThreeBetMax},
		{l.ThreeBetMin, &t.ThreeBetMin},
		{l.CBetMax, &t.CBetMax},
		{l.CBetMin, &t.CBetMin},
		{l.AFMax, &t.AFMax},
		{l.AFMin, &t.AFMin},
	} {
		if o.src != nil {
			*o.dst = *o.src
		}
	}
	if l.MinHands != nil {
		t.MinHands = *l.MinHands
	}
	return t
}

// NewEvaluator builds the configured hand evaluator.
func (c *Config) NewEvaluator() (evaluator.Evaluator, error) {
	return evaluator.New(c.Evaluator)
}
