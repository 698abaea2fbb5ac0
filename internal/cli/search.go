package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"hybridrag/internal/chunk"
	"hybridrag/internal/rag"
)

// previewLimit caps how many chunks of each result list are printed.
const previewLimit = 3

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Show lexical and semantic matches for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			results, err := a.Engine.Search(ctx, strings.Join(args, " "))
			if results == nil {
				return err
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: semantic search unavailable: %v\n", err)
			}
			limit := previewLimit
			if all {
				limit = 0
			}
			printResults(cmd.OutOrStdout(), results, limit)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Print every match instead of the top three")

	return cmd
}

// printResults writes both result lists, at most limit chunks each; zero prints all.
func printResults(out io.Writer, results *rag.SearchResults, limit int) {
	printScored(out, "BM25", results.Lexical, limit)
	printScored(out, "Semantic", results.Semantic, limit)
}

func printScored(out io.Writer, title string, scored []chunk.Scored, limit int) {
	fmt.Fprintf(out, "\n%s results:\n", title)
	if len(scored) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	for i, s := range scored {
		fmt.Fprintf(out, "%d. [%.3f] %s\n", i+1, s.Score, strings.TrimPrefix(rag.FormatSource(s.Chunk), "- "))
		fmt.Fprintf(out, "   %s\n", preview(s.Chunk.Content))
	}
}

func preview(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	runes := []rune(content)
	if len(runes) > 200 {
		return string(runes[:200]) + "..."
	}
	return content
}
