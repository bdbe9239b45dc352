package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/HartBrook/promptwizard/internal/catalog"
	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/HartBrook/promptwizard/internal/templates"
	"github.com/HartBrook/promptwizard/internal/wizard"
	"github.com/spf13/cobra"
)

type optimizeOptions struct {
	category    string
	complexity  string
	target      string
	style       string
	language    string
	file        string
	template    string
	fromHistory string
	jsonOut     bool
	actions     resultActions
}

// NewOptimizeCmd creates the optimize command.
func NewOptimizeCmd(a *App) *cobra.Command {
	opts := &optimizeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize [prompt...]",
		Short: "Optimize a prompt with Gemini",
		Long: `Sends the prompt to Gemini framed with the chosen domain expertise and
prints the optimized prompt, improvement tips and a completeness check.

The prompt comes from the arguments, from --file (use - for stdin), from a
built-in template (--template) or from a history entry (--from-history).
Selectors left unset fall back to the defaults in config.yaml.

If no API key is stored you are asked for one; it is kept locally.`,
		Example: `  promptwizard optimize "寫一個 Go HTTP 伺服器"
  promptwizard optimize -c art --style creative "賽博龐克城市夜景"
  promptwizard optimize -t ui-dashboard --target claude
  promptwizard optimize -f prompt.txt -o .       # save to ./optimized-prompt-<ms>.txt
  cat prompt.txt | promptwizard optimize -f - --copy
  promptwizard optimize --from-history 1 --complexity expert`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd.Context(), a, cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "Domain: "+strings.Join(categoryIDs(), ", "))
	cmd.Flags().StringVar(&opts.complexity, "complexity", "", "Complexity: "+strings.Join(catalog.IDs(catalog.Complexities()), ", "))
	cmd.Flags().StringVar(&opts.target, "target", "", "Target model: "+strings.Join(catalog.IDs(catalog.Targets()), ", "))
	cmd.Flags().StringVar(&opts.style, "style", "", "Style: "+strings.Join(catalog.IDs(catalog.Styles()), ", "))
	cmd.Flags().StringVar(&opts.language, "language", "", "Language: "+strings.Join(catalog.IDs(catalog.Languages()), ", "))
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the prompt from a file (- for stdin)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Start from a built-in template")
	cmd.Flags().StringVar(&opts.fromHistory, "from-history", "", "Reload a history entry (number or id)")
	cmd.Flags().StringVarP(&opts.actions.output, "output", "o", "", "Save the optimized prompt to a file or directory")
	cmd.Flags().BoolVar(&opts.actions.copy, "copy", false, "Copy the optimized prompt to the clipboard")
	cmd.Flags().BoolVar(&opts.actions.share, "share", false, "Share the optimized prompt as a secret gist")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the outcome as JSON")

	return cmd
}

func categoryIDs() []string {
	var ids []string
	for _, c := range catalog.Categories() {
		ids = append(ids, c.ID)
	}
	return ids
}

func runOptimize(ctx context.Context, a *App, cmd *cobra.Command, opts *optimizeOptions, args []string) error {
	st, err := a.open()
	if err != nil {
		return err
	}

	defaults := st.settings.Defaults
	req := wizard.Request{
		Category:   defaults.Category,
		Complexity: defaults.Complexity,
		Target:     defaults.Target,
		Style:      defaults.Style,
		Language:   defaults.Language,
	}

	if opts.fromHistory != "" {
		r, err := st.history.Get(opts.fromHistory)
		if err != nil {
			return err
		}
		req.Text = r.Original
		req.Category = r.Category
		if r.Settings.Complexity != "" {
			req.Complexity = r.Settings.Complexity
		}
		if r.Settings.TargetAI != "" {
			req.Target = r.Settings.TargetAI
		}
		if r.Settings.Style != "" {
			req.Style = r.Settings.Style
		}
		if r.Settings.Language != "" {
			req.Language = r.Settings.Language
		}
	}

	if opts.template != "" {
		tmpl, err := templates.Find(opts.template)
		if err != nil {
			return err
		}
		req.Text = tmpl.Body
		req.Category = tmpl.Category
	}

	text, err := promptText(a, opts.file, args)
	if err != nil {
		return err
	}
	if text != "" {
		req.Text = text
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("category", &req.Category, opts.category)
	override("complexity", &req.Complexity, opts.complexity)
	override("target", &req.Target, opts.target)
	override("style", &req.Style, opts.style)
	override("language", &req.Language, opts.language)

	// Keep stdout a single JSON document.
	status := a.Out
	if opts.jsonOut {
		status = a.Err
		opts.actions.status = a.Err
	}

	optimizer := a.optimizer(st)
	outcome, err := optimizer.Run(ctx, req)
	if errors.Is(err, errors.ErrAuthMissing) {
		saved, perr := a.promptForKey(st, status)
		if perr != nil {
			return perr
		}
		if !saved {
			return err
		}
		outcome, err = optimizer.Run(ctx, req)
	}
	if err != nil {
		return err
	}

	if opts.jsonOut {
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(outcome); err != nil {
			return err
		}
	} else {
		a.renderResult(outcome.Result)
	}

	return a.runActions(ctx, outcome.Result.Optimized, opts.actions)
}

// promptText reads the prompt from args or --file. It returns "" when
// neither was given.
func promptText(a *App, file string, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	switch file {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(a.In)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt file: %w", err)
		}
		return string(data), nil
	}
}

// promptForKey asks for an API key on stdin, writing the prompt to w. It
// reports false when the user enters nothing.
func (a *App) promptForKey(st *state, w io.Writer) (bool, error) {
	fmt.Fprintln(w, dim("No Gemini API key is stored."))
	fmt.Fprintln(w, "Get one at "+info("https://makersuite.google.com/app/apikey"))
	fmt.Fprint(w, "Gemini API key: ")

	line, err := bufio.NewReader(a.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read API key: %w", err)
	}
	fmt.Fprintln(w)

	key := strings.TrimSpace(line)
	if key == "" {
		return false, nil
	}
	if err := st.configs.SetAPIKey(key); err != nil {
		return false, err
	}
	printSuccessTo(w, "API key saved")
	return true, nil
}

func (a *App) renderResult(result wizard.Result) {
	a.printSuccess("Optimization complete")
	a.println()
	a.println(result.Optimized)
	a.println()

	if len(result.Tips) > 0 {
		a.println(info("Tips"))
		for _, tip := range result.Tips {
			a.printf("  • %s\n", tip)
		}
		a.println()
	}

	a.println(info("Improvements"))
	for _, note := range result.Improvements {
		a.printf("  • %s\n", dim(note))
	}
}
