package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"hybridrag/internal/rag"
)

// asker is the part of rag.Engine the chat loop uses.
type asker interface {
	Ask(ctx context.Context, req rag.AskRequest) (*rag.Answer, error)
}

// ChatCmd creates the interactive chat command.
func ChatCmd() *cobra.Command {
	var historyLimit int

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask questions about the ingested documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()
			return runChat(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), a.Engine, rag.NewSession(historyLimit))
		},
	}

	cmd.Flags().IntVar(&historyLimit, "history", 0, "Number of previous turns sent with each question (0 keeps all)")

	return cmd
}

// runChat answers questions read from in until exit, quit or end of input.
// A failed question is reported and the loop continues.
func runChat(ctx context.Context, in io.Reader, out io.Writer, engine asker, session *rag.Session) error {
	fmt.Fprintln(out, "Ask a question, or type 'exit' to quit.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") || strings.EqualFold(question, "quit") {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		answer, err := engine.Ask(ctx, rag.AskRequest{Question: question, History: session.History()})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		printAnswer(out, answer)
		session.Add(question, answer.Text)
	}
}

func printAnswer(out io.Writer, answer *rag.Answer) {
	if len(answer.Sources) > 0 {
		fmt.Fprintln(out, "\nSources:")
		for _, s := range answer.Sources {
			fmt.Fprintln(out, s)
		}
	}
	if answer.Results != nil {
		printResults(out, answer.Results, previewLimit)
	}
	if answer.Degraded {
		fmt.Fprintln(out, "\n(semantic search unavailable, answered from keyword matches only)")
	}
	fmt.Fprintf(out, "\nAssistant: %s\n", answer.Text)
}
