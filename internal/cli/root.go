// Package cli implements the promptwizard command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/HartBrook/promptwizard/internal/config"
	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/HartBrook/promptwizard/internal/github"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Output helpers.
	successIcon = color.New(color.FgGreen).Sprint("✓")
	warningIcon = color.New(color.FgYellow).Sprint("⚠")
	errorIcon   = color.New(color.FgRed).Sprint("✗")

	success = color.New(color.FgGreen).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
	info    = color.New(color.FgCyan).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
)

// App carries everything a command needs. Tests build one with temp paths,
// buffers and fakes instead of touching globals.
type App struct {
	Paths      *config.Paths
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	HTTPClient *http.Client
	Now        func() time.Time

	// Clipboard copies text for the copy action.
	Clipboard func(text string) error
	// Share publishes content and returns a URL for the share action.
	Share func(ctx context.Context, description, filename, content string) (string, error)

	logLevel string
	verbose  bool
	state    *state
}

// NewApp returns an App wired to the real terminal, filesystem and GitHub.
func NewApp() *App {
	a := &App{
		Paths: config.NewPaths(),
		In:    os.Stdin,
		Out:   os.Stdout,
		Err:   os.Stderr,
		Now:   time.Now,
	}
	a.Clipboard = func(text string) error {
		termenv.NewOutput(a.Out).Copy(text)
		return nil
	}
	a.Share = func(ctx context.Context, description, filename, content string) (string, error) {
		client, err := github.NewClient()
		if err != nil {
			return "", err
		}
		return client.CreateGist(ctx, description, filename, content)
	}
	return a
}

// NewRootCmd creates the root command.
func NewRootCmd(a *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "promptwizard",
		Short: "Optimize prompts with Google Gemini",
		Long: `PromptWizard rewrites a prompt for a target AI model.

It frames the prompt with domain expertise (code, art or UI design), sends it
to Gemini, extracts the optimized prompt and improvement tips from the reply,
and warns when points of the original may have been dropped. Results are kept
in a short local history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Shorthand for --log-level debug")

	rootCmd.AddCommand(NewOptimizeCmd(a))
	rootCmd.AddCommand(NewTemplatesCmd(a))
	rootCmd.AddCommand(NewOptionsCmd(a))
	rootCmd.AddCommand(NewHistoryCmd(a))
	rootCmd.AddCommand(NewKeyCmd(a))
	rootCmd.AddCommand(NewConfigCmd(a))
	rootCmd.AddCommand(NewVersionCmd(a))

	return rootCmd
}

// NewVersionCmd creates the version command.
func NewVersionCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.Out, "promptwizard %s\n", Version)
		},
	}
}

// Execute runs the CLI.
func Execute() error {
	return NewApp().Run(context.Background(), os.Args[1:])
}

// Run executes one command line and prints any error with its hint.
func (a *App) Run(ctx context.Context, args []string) error {
	rootCmd := NewRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(a.In)
	rootCmd.SetOut(a.Out)
	rootCmd.SetErr(a.Err)

	err := rootCmd.ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintf(a.Err, "%s %s\n", errorIcon, err.Error())
		if hint := errors.HintOf(err); hint != "" {
			fmt.Fprintf(a.Err, "  %s\n", dim(hint))
		}
		return err
	}
	return nil
}

// printSuccess prints a success message.
func (a *App) printSuccess(format string, args ...interface{}) {
	printSuccessTo(a.Out, format, args...)
}

// printWarning prints a warning message.
func (a *App) printWarning(format string, args ...interface{}) {
	printWarningTo(a.Out, format, args...)
}

func printSuccessTo(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", successIcon, fmt.Sprintf(format, args...))
}

func printWarningTo(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", warningIcon, fmt.Sprintf(format, args...))
}

// printInfo prints an info line.
func (a *App) printInfo(label, value string) {
	fmt.Fprintf(a.Out, "  %s: %s\n", dim(label), value)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.Out, args...)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.Out, format, args...)
}
