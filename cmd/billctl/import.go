package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/redis/go-redis/v9"

	"github.com/bill-center/backend/config"
	"github.com/bill-center/backend/internal/application/usecase/billimport"
	"github.com/bill-center/backend/internal/infra/cache"
	"github.com/bill-center/backend/internal/infra/db"
	"github.com/bill-center/backend/internal/infra/dependency"
	"github.com/bill-center/backend/internal/integration/persistence/model"
)

type importCmd struct {
	source string
	enrich bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "parse a bill spreadsheet and commit it to the ledger" }
func (*importCmd) Usage() string {
	return `billctl import [-source <tag>] [-enrich] <file>

  Parses the export, resolves categories and tags by name, optionally asks
  the configured AI provider to fill gaps, and commits every non-duplicate
  row as one import batch.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "", "Source tag of the export (defaults to IMPORT_DEFAULT_SOURCE).")
	f.BoolVar(&c.enrich, "enrich", false, "Ask the AI provider to suggest missing categories and tags.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "import expects exactly one file")
		return subcommands.ExitUsageError
	}

	cfg := config.Load()
	injector, cleanup, err := openInjector(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	preview, err := runPreview(ctx, injector.PreviewImport, f.Arg(0), c.source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, msg := range preview.Errors {
		fmt.Fprintln(os.Stderr, "skipped: "+msg)
	}

	output, err := injector.ConfirmImport.Execute(ctx, billimport.ConfirmImportInput{
		FileName: filepath.Base(f.Arg(0)),
		Source:   preview.Source,
		Enrich:   c.enrich,
		Rows:     preview.Rows,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	s := output.Summary
	fmt.Printf("batch %s: %d total, %d imported, %d duplicates, %d failed\n", s.BatchID, s.Total, s.Success, s.Duplicates, s.Failed)
	for _, msg := range output.Warnings {
		fmt.Fprintln(os.Stderr, "warning: "+msg)
	}
	for _, msg := range s.Errors {
		fmt.Println("  " + msg)
	}
	if report := output.Enrichment; report != nil {
		fmt.Printf("enrichment %s: %d of %d rows updated", report.Status, report.Applied, report.Requested)
		if report.Message != "" {
			fmt.Printf(" (%s)", report.Message)
		}
		fmt.Println()
	}
	for _, tag := range output.CreatedTags {
		fmt.Printf("created tag %q\n", tag.Name)
	}

	if s.Failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func openInjector(cfg *config.Config) (*dependency.Injector, func(), error) {
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.Driver == db.DriverSQLite {
		if err := database.AutoMigrate(model.All()...); err != nil {
			_ = database.Close()
			return nil, nil, err
		}
	}

	redisClient := connectRedis(&cfg.Redis)

	cleanup := func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		_ = database.Close()
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), redisClient)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return injector, cleanup, nil
}

// connectRedis returns nil when the reply cache is disabled or Redis cannot be reached.
func connectRedis(cfg *config.RedisConfig) *redis.Client {
	if !cfg.CacheEnabled {
		return nil
	}
	client, err := cache.NewRedisClient(cfg)
	if err != nil {
		slog.Warn("Redis connection failed, running without reply cache", "error", err)
		return nil
	}
	return client
}
