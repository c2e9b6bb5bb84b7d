package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Debug  bool   `help:"Enable debug logging"`
	Config string `short:"c" default:"pokerstats.hcl" type:"path" help:"Path to HCL configuration file"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Analyze AnalyzeCmd       `cmd:"" help:"Aggregate PHH hand histories into player statistics"`
	Leaks   LeaksCmd         `cmd:"" help:"Report leak findings for every player"`
	Hand    HandCmd          `cmd:"" help:"Show the timeline of a single hand"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerstats"),
		kong.Description("Poker hand history analysis: player statistics and leak detection"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
