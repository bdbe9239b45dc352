package cli

import (
	"strings"
	"unicode/utf8"

	"github.com/HartBrook/promptwizard/internal/catalog"
	"github.com/HartBrook/promptwizard/internal/history"
	"github.com/spf13/cobra"
)

const (
	previewRunes = 30
	timeLayout   = "2006/01/02 15:04"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent optimizations",
		Example: `  promptwizard history
  promptwizard history show 1
  promptwizard history show 1 --copy
  promptwizard optimize --from-history 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}
			records := st.history.All()
			if len(records) == 0 {
				a.println(dim("No history yet. Run 'promptwizard optimize' first."))
				return nil
			}
			for i, r := range records {
				a.printf("%2d. %s %s  %s\n", i+1,
					info(catalog.CategoryName(r.Category)),
					catalog.TargetName(r.Settings.TargetAI),
					dim(r.Time().Format(timeLayout)))
				a.printf("    %s  %s\n", preview(r.Original),
					dim(catalog.ComplexityLabel(r.Settings.Complexity)+" · "+catalog.StyleLabel(r.Settings.Style)))
			}
			return nil
		},
	}

	cmd.AddCommand(newHistoryShowCmd(a))
	return cmd
}

func newHistoryShowCmd(a *App) *cobra.Command {
	var acts resultActions

	cmd := &cobra.Command{
		Use:   "show <number|id>",
		Short: "Show a history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}
			r, err := st.history.Get(args[0])
			if err != nil {
				return err
			}
			a.renderRecord(r)
			return a.runActions(cmd.Context(), r.Optimized, acts)
		},
	}

	cmd.Flags().StringVarP(&acts.output, "output", "o", "", "Save the optimized prompt to a file or directory")
	cmd.Flags().BoolVar(&acts.copy, "copy", false, "Copy the optimized prompt to the clipboard")
	cmd.Flags().BoolVar(&acts.share, "share", false, "Share the optimized prompt as a secret gist")

	return cmd
}

func (a *App) renderRecord(r history.Record) {
	if r.ID != "" {
		a.printInfo("ID", r.ID)
	}
	a.printInfo("Time", r.Time().Format(timeLayout))
	a.printInfo("Category", catalog.CategoryName(r.Category))
	a.printInfo("Target", catalog.TargetName(r.Settings.TargetAI))
	a.printInfo("Complexity", catalog.ComplexityLabel(r.Settings.Complexity))
	a.printInfo("Style", catalog.StyleLabel(r.Settings.Style))
	if r.Settings.Language != "" {
		a.printInfo("Language", catalog.LanguageDisplayName(r.Settings.Language))
	}
	a.println()
	a.println(info("Original"))
	a.println(r.Original)
	a.println()
	a.println(info("Optimized"))
	a.println(r.Optimized)
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= previewRunes {
		return text
	}
	return string([]rune(text)[:previewRunes]) + "..."
}
