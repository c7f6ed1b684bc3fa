// Package main is a command line front end for previewing and importing bill spreadsheets.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&sourcesCmd{}, "")
	commander.Register(&previewCmd{}, "")
	commander.Register(&importCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
