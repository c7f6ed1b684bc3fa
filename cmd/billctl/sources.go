package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/bill-center/backend/config"
	"github.com/bill-center/backend/internal/integration/spreadsheet"
)

type sourcesCmd struct{}

func (*sourcesCmd) Name() string     { return "sources" }
func (*sourcesCmd) Synopsis() string { return "list the bill sources that can be parsed" }
func (*sourcesCmd) Usage() string {
	return `billctl sources

  Prints the source tags accepted by preview and import, one per line.
`
}

func (*sourcesCmd) SetFlags(*flag.FlagSet) {}

func (*sourcesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := config.Load()
	registry, err := spreadsheet.LoadRegistry(cfg.Import.SourcesFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, source := range registry.Sources() {
		fmt.Println(source)
	}
	return subcommands.ExitSuccess
}
