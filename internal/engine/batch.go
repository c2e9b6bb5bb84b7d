package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerstats/internal/hand"
	"github.com/lox/pokerstats/internal/stats"
)

// Reasons attached to skipped hands.
const (
	ReasonReconstruction = "reconstruction"
	ReasonDuplicate      = "duplicate"
	ReasonMissingID      = "missing_id"
	ReasonMerge          = "merge"
)

// HandError records a hand that was skipped by a batch.
type HandError struct {
	HandID string
	Reason string
	Err    error
}

func (e HandError) Error() string {
	return fmt.Sprintf("hand %s: %s: %v", e.HandID, e.Reason, e.Err)
}

func (e HandError) Unwrap() error {
	return e.Err
}

// BatchResult is the outcome of one batch run.
type BatchResult struct {
	RunID      string
	Aggregator *stats.Aggregator
	// Processed counts hands merged by this run.
	Processed int
	// Unavailable counts merged hands whose showdown could not be ranked.
	Unavailable int
	Errors      []HandError
	StartedAt   time.Time
	Duration    time.Duration
}

// AggregateBatch analyzes every hand received from hands into a fresh
// aggregator.
func (e *Engine) AggregateBatch(ctx context.Context, hands <-chan hand.Input) (*BatchResult, error) {
	return e.AggregateInto(ctx, stats.NewAggregator(e.buckets), hands)
}

// AggregateInto analyzes hands into an existing aggregator, rejecting hand
// identifiers it has already seen. Hands are spread over the engine's workers,
// each folding into its own partial aggregator; partials are merged into agg
// when the stream ends. On cancellation dispatch stops, hands already analyzed
// are still merged and the context error is returned with the result.
func (e *Engine) AggregateInto(ctx context.Context, agg *stats.Aggregator, hands <-chan hand.Input) (*BatchResult, error) {
	res := &BatchResult{
		RunID:      uuid.NewString(),
		Aggregator: agg,
		StartedAt:  e.clock.Now(),
	}
	logger := e.logger.With("run_id", res.RunID)

	type worker struct {
		partial     *stats.Aggregator
		errs        []HandError
		unavailable int
	}
	workers := make([]*worker, e.workers)
	for i := range workers {
		workers[i] = &worker{partial: stats.NewAggregator(agg.Buckets())}
	}

	var dispatchErrs []HandError
	jobs := make(chan hand.Input)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		seen := make(map[string]struct{})
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case in, ok := <-hands:
				if !ok {
					return nil
				}
				if in.ID == "" {
					dispatchErrs = append(dispatchErrs, HandError{Reason: ReasonMissingID, Err: errors.New("hand has no identifier")})
					continue
				}
				if _, dup := seen[in.ID]; dup || agg.Seen(in.ID) {
					dispatchErrs = append(dispatchErrs, HandError{HandID: in.ID, Reason: ReasonDuplicate, Err: &stats.DuplicateHandError{HandID: in.ID}})
					continue
				}
				seen[in.ID] = struct{}{}
				select {
				case jobs <- in:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		}
	})

	for _, w := range workers {
		g.Go(func() error {
			for in := range jobs {
				rec, err := e.AnalyzeHand(in)
				if err != nil {
					w.errs = append(w.errs, HandError{HandID: in.ID, Reason: ReasonReconstruction, Err: err})
					continue
				}
				if err := w.partial.Merge(rec); err != nil {
					w.errs = append(w.errs, HandError{HandID: in.ID, Reason: ReasonMerge, Err: err})
					continue
				}
				if rec.ShowdownErr != nil {
					w.unavailable++
				}
			}
			return nil
		})
	}

	runErr := g.Wait()

	res.Errors = dispatchErrs
	for _, w := range workers {
		if err := agg.MergeFrom(w.partial); err != nil {
			return nil, fmt.Errorf("merge worker results: %w", err)
		}
		res.Processed += w.partial.HandCount()
		res.Unavailable += w.unavailable
		res.Errors = append(res.Errors, w.errs...)
	}
	sort.SliceStable(res.Errors, func(i, j int) bool {
		return res.Errors[i].HandID < res.Errors[j].HandID
	})
	for _, he := range res.Errors {
		logger.Warn("skipping hand", "hand_id", he.HandID, "reason", he.Reason, "err", he.Err)
	}

	res.Duration = e.clock.Since(res.StartedAt)
	logger.Info("batch complete",
		"hands", res.Processed,
		"skipped", len(res.Errors),
		"showdown_unavailable", res.Unavailable,
		"duration", res.Duration)

	if runErr != nil {
		return res, runErr
	}
	return res, nil
}
