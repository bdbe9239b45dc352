// PromptWizard - prompt optimization with Google Gemini
package main

import (
	"os"

	"github.com/HartBrook/promptwizard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
