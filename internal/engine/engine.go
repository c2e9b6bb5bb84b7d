// Package engine runs hands through reconstruction, classification and
// showdown resolution, and folds batches of them into statistics.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerstats/internal/analysis"
	"github.com/lox/pokerstats/internal/classify"
	"github.com/lox/pokerstats/internal/evaluator"
	"github.com/lox/pokerstats/internal/hand"
	"github.com/lox/pokerstats/internal/showdown"
	"github.com/lox/pokerstats/internal/stats"
)

// Config holds the engine settings.
type Config struct {
	Options   hand.Options
	Buckets   stats.DepthBuckets
	Evaluator evaluator.Evaluator
	Workers   int
	Logger    *log.Logger
	Clock     quartz.Clock
}

// Engine analyzes hands. It is safe for concurrent use.
type Engine struct {
	opts    hand.Options
	buckets stats.DepthBuckets
	eval    evaluator.Evaluator
	workers int
	logger  *log.Logger
	clock   quartz.Clock
}

// New creates an engine, filling unset fields with defaults.
func New(cfg Config) *Engine {
	e := &Engine{
		opts:    cfg.Options,
		buckets: cfg.Buckets,
		eval:    cfg.Evaluator,
		workers: cfg.Workers,
		logger:  cfg.Logger,
		clock:   cfg.Clock,
	}
	if e.opts.Layout == "" {
		e.opts = hand.DefaultOptions()
	}
	if e.buckets == (stats.DepthBuckets{}) {
		e.buckets = stats.DefaultDepthBuckets()
	}
	if e.eval == nil {
		e.eval = evaluator.Chehsunliu{}
	}
	if e.workers < 1 {
		e.workers = 1
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if e.clock == nil {
		e.clock = quartz.NewReal()
	}
	e.logger = e.logger.With("component", "engine")
	return e
}

// Buckets returns the stack-depth boundaries used for aggregation.
func (e *Engine) Buckets() stats.DepthBuckets {
	return e.buckets
}

// AnalyzeHand reconstructs, classifies and resolves one hand. A hand that
// cannot be reconstructed returns an error. A showdown the evaluator cannot
// rank is kept in the record with its statistics marked unavailable.
func (e *Engine) AnalyzeHand(in hand.Input) (*analysis.Record, error) {
	h, err := hand.Reconstruct(in, e.opts)
	if err != nil {
		return nil, err
	}

	rec := &analysis.Record{Hand: h, Events: classify.Classify(h)}
	rec.Showdown, err = showdown.Resolve(h, e.eval)
	if err != nil {
		var evalErr *showdown.EvaluatorError
		if !errors.As(err, &evalErr) {
			return nil, fmt.Errorf("resolve hand %s: %w", h.ID, err)
		}
		rec.ShowdownErr = err
		e.logger.Debug("showdown unavailable", "hand_id", h.ID, "reason", evalErr.Err)
	}
	return rec, nil
}
