package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/HartBrook/promptwizard/internal/config"
)

const (
	shareDescription = "PromptWizard 優化結果"
	shareFileName    = "optimized-prompt.txt"
)

// resultActions are the save, copy and share actions on an optimized prompt.
type resultActions struct {
	output string
	copy   bool
	share  bool

	// status receives progress lines; nil means App.Out.
	status io.Writer
}

func (a *App) statusWriter(acts resultActions) io.Writer {
	if acts.status != nil {
		return acts.status
	}
	return a.Out
}

// resolveOutputPath places defaultName inside path when path is a directory.
func resolveOutputPath(path, defaultName string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, defaultName)
	}
	return path
}

func (a *App) runActions(ctx context.Context, text string, acts resultActions) error {
	w := a.statusWriter(acts)

	if acts.output != "" {
		path := resolveOutputPath(acts.output, config.SavedPromptFileName(a.Now()))
		if err := os.WriteFile(path, []byte(text), config.DefaultFileMode); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		printSuccessTo(w, "Saved prompt to %s", path)
	}

	if acts.copy {
		if err := a.copyText(w, text); err != nil {
			return err
		}
	}

	if acts.share {
		url, err := a.Share(ctx, shareDescription, shareFileName, text)
		if err != nil {
			printWarningTo(w, "Share failed: %v", err)
			if !acts.copy {
				if err := a.copyText(w, text); err != nil {
					return err
				}
			}
			return nil
		}
		printSuccessTo(w, "Shared at %s", info(url))
	}

	return nil
}

func (a *App) copyText(w io.Writer, text string) error {
	if err := a.Clipboard(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	printSuccessTo(w, "Copied to clipboard")
	return nil
}
