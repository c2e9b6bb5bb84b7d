package main

import (
	"os"

	"github.com/lox/pokerstats/cmd/pokerstats/shared"
)

type LeaksCmd struct {
	SourceFlags
	FilterFlags
}

func (c *LeaksCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	res, err := aggregate(g, cfg, shared.SetupLogger(g.Debug), c.SourceFlags)
	if err != nil {
		return err
	}
	analyze := AnalyzeCmd{FilterFlags: c.FilterFlags, LeaksOnly: true}
	return analyze.print(os.Stdout, cfg.Thresholds(), res)
}
