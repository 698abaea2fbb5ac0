// Package cli implements the ragctl commands.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"hybridrag/internal/app"
	"hybridrag/internal/config"
	"hybridrag/internal/contextutil"
)

// NewRootCmd builds the ragctl command tree.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ragctl",
		Short: "Hybrid retrieval over local documents",
		Long: `ragctl ingests PDF, CSV, Excel, Markdown and text files from a data
directory and answers questions about them with lexical and semantic search.

Configuration is read from the environment or a .env file:
  DATA_DIR           documents to ingest (default: ./data/documents)
  DB_PATH            SQLite chunk store (default: ./data/hybridrag.db)
  SEMANTIC_BACKEND   exhaustive, cache, qdrant or chromem (default: exhaustive)
  LLM_BASE_URL       OpenAI-compatible chat endpoint
  EMBEDDING_BASE_URL OpenAI-compatible embeddings endpoint`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(IngestCmd())
	rootCmd.AddCommand(SearchCmd())
	rootCmd.AddCommand(ChatCmd())

	return rootCmd
}

// bootstrap loads configuration and wires the application. Logs go to stderr
// so they don't interleave with command output.
func bootstrap(cmd *cobra.Command) (context.Context, *app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	ctx := contextutil.WithLogger(cmd.Context(), cfg.NewLoggerTo(os.Stderr))
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return ctx, a, nil
}
