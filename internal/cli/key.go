package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/spf13/cobra"
)

// NewKeyCmd creates the key command.
func NewKeyCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the Gemini API key",
	}
	cmd.AddCommand(newKeySetCmd(a))
	cmd.AddCommand(newKeyStatusCmd(a))
	return cmd
}

func newKeySetCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set [key]",
		Short: "Store the Gemini API key (reads stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}

			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				a.printf("Gemini API key: ")
				line, err := bufio.NewReader(a.In).ReadString('\n')
				if err != nil && err != io.EOF {
					return fmt.Errorf("failed to read API key: %w", err)
				}
				a.println()
				key = line
			}

			if strings.TrimSpace(key) == "" {
				return errors.AuthMissing()
			}
			if err := st.configs.SetAPIKey(key); err != nil {
				return err
			}
			a.printSuccess("API key saved")
			return nil
		},
	}
}

func newKeyStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether an API key is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}
			cfg := st.configs.Current()
			if !cfg.HasAPIKey() {
				a.printWarning("No API key stored")
				a.println(dim("Run 'promptwizard key set' to add one."))
				return nil
			}
			a.printSuccess("API key stored: %s", maskKey(cfg.APIKey))
			a.printInfo("Storage", st.settings.Storage.Backend)
			return nil
		},
	}
}

// maskKey shows at most the first and last four characters of a key.
func maskKey(key string) string {
	r := []rune(key)
	if len(r) <= 8 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:4]) + strings.Repeat("*", len(r)-8) + string(r[len(r)-4:])
}
