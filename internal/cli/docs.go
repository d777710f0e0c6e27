package cli

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	builtindocs "github.com/aidanlsb/saga/docs"
	"github.com/aidanlsb/saga/internal/ui"
)

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Browse the bundled guide",
		Long: `Browse the long-form guide bundled into the saga binary.

Examples:
  saga docs
  saga docs configuration
  saga docs events`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topics, err := listDocsTopics()
			if err != nil {
				return fmt.Errorf("bundled docs unavailable: %w", err)
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(out, "Guide topics:")
				for _, topic := range topics {
					fmt.Fprintf(out, "  saga docs %s\n", topic)
				}
				return nil
			}

			topic := strings.ToLower(args[0])
			content, err := fs.ReadFile(builtindocs.FS, "guide/"+topic+".md")
			if err != nil {
				return fmt.Errorf("unknown topic %q (available: %s)", args[0], strings.Join(topics, ", "))
			}

			if !isatty.IsTerminal(os.Stdout.Fd()) {
				fmt.Fprint(out, string(content))
				return nil
			}

			display := ui.NewDisplayContext()
			rendered, err := ui.RenderMarkdown(string(content), display.TermWidth-ui.MarkdownRenderMargin)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}
}

func listDocsTopics() ([]string, error) {
	entries, err := fs.ReadDir(builtindocs.FS, "guide")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		topics = append(topics, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics, nil
}
