package main

import (
	"fmt"
	"os"

	"github.com/lox/pokerstats/internal/phh"
	"github.com/lox/pokerstats/internal/report"
)

type HandCmd struct {
	File string `arg:"" name:"file" type:"existingfile" help:"PHH hand history file"`
	ID   string `help:"Hand identifier (default: first hand in the file)"`
}

func (c *HandCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	eng, err := newEngine(g, cfg)
	if err != nil {
		return err
	}

	hands, err := phh.LoadFile(c.File)
	if err != nil {
		return err
	}
	for _, h := range hands {
		if c.ID != "" && h.HandID != c.ID {
			continue
		}
		in, err := phh.ToInput(h)
		if err != nil {
			return err
		}
		rec, err := eng.AnalyzeHand(in)
		if err != nil {
			return err
		}
		report.Timeline(os.Stdout, rec)
		return nil
	}
	if c.ID != "" {
		return fmt.Errorf("hand %s not found in %s", c.ID, c.File)
	}
	return fmt.Errorf("no hands found in %s", c.File)
}
