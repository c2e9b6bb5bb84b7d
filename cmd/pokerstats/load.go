package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lox/pokerstats/cmd/pokerstats/shared"
	"github.com/lox/pokerstats/internal/config"
	"github.com/lox/pokerstats/internal/engine"
	"github.com/lox/pokerstats/internal/hand"
	"github.com/lox/pokerstats/internal/phh"
)

// ReasonParse marks hands the PHH adapter could not convert.
const ReasonParse = "parse"

func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", g.Config, err)
	}
	return cfg, nil
}

func newEngine(g *Globals, cfg *config.Config) (*engine.Engine, error) {
	ev, err := cfg.NewEvaluator()
	if err != nil {
		return nil, err
	}
	return engine.New(engine.Config{
		Options:   cfg.Options(),
		Buckets:   cfg.Buckets(),
		Evaluator: ev,
		Workers:   cfg.Workers,
		Logger:    shared.SetupEngineLogger(g.Debug),
	}), nil
}

// streamFiles decodes PHH files and sends the converted hands on the returned
// channel. Hands that cannot be converted are reported on the error slice once
// the channel is closed.
func streamFiles(ctx context.Context, logger zerolog.Logger, files []string) (<-chan hand.Input, func() []engine.HandError) {
	out := make(chan hand.Input)
	done := make(chan struct{})
	var errs []engine.HandError

	go func() {
		defer close(done)
		defer close(out)
		for _, file := range files {
			hands, err := phh.LoadFile(file)
			if err != nil {
				errs = append(errs, engine.HandError{HandID: file, Reason: ReasonParse, Err: err})
				continue
			}
			logger.Debug().Str("file", file).Int("hands", len(hands)).Msg("Loaded hand histories")
			for _, h := range hands {
				in, err := phh.ToInput(h)
				if err != nil {
					errs = append(errs, engine.HandError{HandID: h.HandID, Reason: ReasonParse, Err: err})
					continue
				}
				select {
				case out <- in:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, func() []engine.HandError {
		<-done
		return errs
	}
}
