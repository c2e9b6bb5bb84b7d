package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/lox/pokerstats/cmd/pokerstats/shared"
	"github.com/lox/pokerstats/internal/config"
	"github.com/lox/pokerstats/internal/engine"
	"github.com/lox/pokerstats/internal/hand"
	"github.com/lox/pokerstats/internal/leaks"
	"github.com/lox/pokerstats/internal/report"
	"github.com/lox/pokerstats/internal/stats"
	"github.com/lox/pokerstats/internal/store"
)

// SourceFlags select the hands to aggregate.
type SourceFlags struct {
	Files []string `arg:"" name:"file" type:"existingfile" help:"PHH hand history files"`
	DB    string   `help:"SQLite snapshot to resume from and save to"`
}

// FilterFlags narrow the reported statistics.
type FilterFlags struct {
	Player   []string `short:"p" help:"Only report these players"`
	Position string   `help:"Only count hands from this position (UTG, MP, CO, BTN, SB, BB, ...)"`
	Depth    string   `help:"Only count hands at this effective stack depth (shallow, mid, deep)"`
	MinHands int64    `default:"1" help:"Skip players with fewer hands"`
}

func (f FilterFlags) filter() (stats.Filter, error) {
	var out stats.Filter
	if f.Position != "" {
		p, err := hand.ParsePosition(f.Position)
		if err != nil {
			return out, err
		}
		out.Position = p
	}
	if f.Depth != "" {
		d, err := stats.ParseDepth(f.Depth)
		if err != nil {
			return out, err
		}
		out.Depth = d
	}
	return out, nil
}

// players returns the accumulators to report in name order.
func (f FilterFlags) players(agg *stats.Aggregator) []*stats.PlayerAccumulator {
	names := f.Player
	if len(names) == 0 {
		names = agg.Players()
	}
	sort.Strings(names)
	var out []*stats.PlayerAccumulator
	for _, name := range names {
		if acc, ok := agg.Player(name); ok {
			out = append(out, acc)
		}
	}
	return out
}

type AnalyzeCmd struct {
	SourceFlags
	FilterFlags

	Breakdown bool `help:"Show per-position and per-depth breakdowns"`
	LeaksOnly bool `name:"leaks-only" help:"Only print leak findings"`
}

func (c *AnalyzeCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(g.Debug)
	res, err := aggregate(g, cfg, logger, c.SourceFlags)
	if err != nil {
		return err
	}
	return c.print(os.Stdout, cfg.Thresholds(), res)
}

func (c *AnalyzeCmd) print(w io.Writer, thresholds leaks.Thresholds, res *engine.BatchResult) error {
	f, err := c.filter()
	if err != nil {
		return err
	}

	for _, acc := range c.players(res.Aggregator) {
		s := stats.Derive(acc, f)
		if s.Hands() < c.MinHands {
			continue
		}
		if !c.LeaksOnly {
			report.Stats(w, s)
			if c.Breakdown {
				report.Breakdown(w, acc)
			}
		}
		report.Leaks(w, acc.Name, leaks.Detect(s, thresholds))
		fmt.Fprintln(w)
	}
	report.Errors(w, res.Errors)
	return nil
}

// aggregate runs every hand in the source files through the engine, resuming
// from and saving to the snapshot database when one is given.
func aggregate(g *Globals, cfg *config.Config, logger zerolog.Logger, src SourceFlags) (*engine.BatchResult, error) {
	eng, err := newEngine(g, cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := shared.SetupSignalHandlerWithLogger(logger)
	defer cancel()

	agg := stats.NewAggregator(cfg.Buckets())
	var db *store.Store
	if src.DB != "" {
		db, err = store.Open(src.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("open snapshot: %w", err)
		}
		defer db.Close()
		if agg, err = db.Load(ctx, cfg.Buckets()); err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		logger.Info().Str("db", src.DB).Int("hands", agg.HandCount()).Msg("Resuming from snapshot")
	}

	hands, parseErrs := streamFiles(ctx, logger, src.Files)
	res, runErr := eng.AggregateInto(ctx, agg, hands)
	if res == nil {
		return nil, runErr
	}
	res.Errors = append(parseErrs(), res.Errors...)

	if db != nil {
		// Save what was merged even when interrupted; every merged hand is complete.
		if err := db.Save(context.WithoutCancel(ctx), res.Aggregator); err != nil {
			return nil, fmt.Errorf("save snapshot: %w", err)
		}
		logger.Info().Str("db", src.DB).Int("hands", res.Aggregator.HandCount()).Msg("Snapshot saved")
	}

	logger.Info().
		Str("run_id", res.RunID).
		Int("hands", res.Processed).
		Int("skipped", len(res.Errors)).
		Dur("duration", res.Duration).
		Msg("Analysis complete")
	return res, runErr
}
