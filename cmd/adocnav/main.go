package main

import (
	"git.home.luguber.info/inful/adocnav/cmd/adocnav/commands"
	"git.home.luguber.info/inful/adocnav/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	cli := commands.CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("adocnav"),
		kong.Description("Derive an Antora navigation file from AsciiDoc sources."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
