package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hybridrag/internal/indexer"
)

// pipeline is the part of indexer.Pipeline the ingest command drives.
type pipeline interface {
	IndexAll(ctx context.Context, dir string) (*indexer.Report, error)
	Reindex(ctx context.Context, dir string) (*indexer.Report, error)
}

type ingestOptions struct {
	dir     string
	reset   bool
	inspect bool
	samples int
}

// IngestCmd creates the ingest command.
func IngestCmd() *cobra.Command {
	var opts ingestOptions

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load, chunk and store every document in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()
			if opts.dir == "" {
				opts.dir = a.Config.DataDir
			}
			return runIngest(ctx, cmd.OutOrStdout(), a.Pipeline, a.Splitter, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Directory to ingest (default: DATA_DIR)")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "Clear the chunk store before ingesting")
	cmd.Flags().BoolVar(&opts.inspect, "inspect", false, "Print sample chunks and length statistics")
	cmd.Flags().IntVar(&opts.samples, "samples", 5, "Number of chunks shown by --inspect")

	return cmd
}

func runIngest(ctx context.Context, out io.Writer, p pipeline, splitter indexer.SentenceSplitter, opts ingestOptions) error {
	var (
		report *indexer.Report
		err    error
	)
	if opts.reset {
		report, err = p.Reindex(ctx, opts.dir)
	} else {
		report, err = p.IndexAll(ctx, opts.dir)
	}
	if report == nil {
		return err
	}
	if opts.reset {
		fmt.Fprintln(out, "Cleared chunk store")
	}
	fmt.Fprintf(out, "Indexed %d files (%d failed) into %d chunks\n", report.Files, report.Failed, len(report.Chunks))

	if opts.inspect {
		if werr := indexer.WriteInspection(out, report.Chunks, opts.samples, splitter); werr != nil {
			return werr
		}
	}
	return err
}
