package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/bill-center/backend/config"
	"github.com/bill-center/backend/internal/application/usecase/billimport"
	"github.com/bill-center/backend/internal/integration/spreadsheet"
)

type previewCmd struct {
	source string
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "parse a bill spreadsheet without importing it" }
func (*previewCmd) Usage() string {
	return `billctl preview [-source <tag>] <file>

  Parses an .xls, .xlsx or .csv export and prints the candidate rows
  together with any row-level parse errors. Nothing is written.
`
}

func (p *previewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.source, "source", "", "Source tag of the export (defaults to IMPORT_DEFAULT_SOURCE).")
}

func (p *previewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "preview expects exactly one file")
		return subcommands.ExitUsageError
	}

	cfg := config.Load()
	registry, err := spreadsheet.LoadRegistry(cfg.Import.SourcesFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	output, err := runPreview(ctx, billimport.NewPreviewImportUseCase(registry, cfg.Import.DefaultSource, cfg.Import.MaxUploadBytes), f.Arg(0), p.source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printPreview(os.Stdout, output)
	return subcommands.ExitSuccess
}

func runPreview(ctx context.Context, uc *billimport.PreviewImportUseCase, file, source string) (*billimport.PreviewImportOutput, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return uc.Execute(ctx, billimport.PreviewImportInput{
		FileName: filepath.Base(file),
		Source:   source,
		Data:     data,
	})
}

func printPreview(w io.Writer, output *billimport.PreviewImportOutput) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tAMOUNT\tDISCOUNT\tSETTLED\tCATEGORY\tTAGS\tREMARK")
	for _, row := range output.Rows {
		category := row.CategoryName
		if row.SubCategoryName != "" {
			category += "/" + row.SubCategoryName
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Date,
			row.Direction,
			row.Amount.StringFixed(2),
			row.Discount.StringFixed(2),
			row.EffectiveSettledAmount().StringFixed(2),
			category,
			strings.Join(row.TagNames, ","),
			row.Remark,
		)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\n%s (%s): %d of %d rows parsed\n", output.FileName, output.Source, len(output.Rows), output.Total)
	for _, msg := range output.Errors {
		fmt.Fprintln(w, "  "+msg)
	}
}
