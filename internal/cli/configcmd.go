package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/HartBrook/promptwizard/internal/config"
	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/HartBrook/promptwizard/internal/genconfig"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command.
func NewConfigCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and edit the Gemini generation config",
		Example: `  promptwizard config show
  promptwizard config set model=gemini-1.5-pro temperature=0.4
  promptwizard config set safety.harassment=BLOCK_ONLY_HIGH
  promptwizard config export -o .
  promptwizard config import gemini_config_1700000000000.json`,
	}

	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigSetCmd(a))
	cmd.AddCommand(newConfigResetCmd(a))
	cmd.AddCommand(newConfigExportCmd(a))
	cmd.AddCommand(newConfigImportCmd(a))

	return cmd
}

func newConfigShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current config",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}
			a.renderConfig(st.configs.Current())
			a.println()
			a.println(success("Settings"))
			a.printInfo("File", a.Paths.ConfigFile)
			a.printInfo("Storage", st.settings.Storage.Backend)
			a.printInfo("Vocabulary", st.settings.Vocabulary)
			return nil
		},
	}
}

func (a *App) renderConfig(cfg genconfig.Config) {
	key := warning("not set")
	if cfg.HasAPIKey() {
		key = maskKey(cfg.APIKey)
	}

	a.println(success("Gemini"))
	a.printInfo("API key", key)
	a.printInfo("Model", cfg.Model)
	a.printInfo("Base URL", cfg.BaseURL)
	a.printInfo("Temperature", strconv.FormatFloat(cfg.Temperature, 'g', -1, 64))
	a.printInfo("Top K", strconv.Itoa(cfg.TopK))
	a.printInfo("Top P", strconv.FormatFloat(cfg.TopP, 'g', -1, 64))
	a.printInfo("Max output tokens", strconv.Itoa(cfg.MaxOutputTokens))
	stops := dim("(none)")
	if len(cfg.StopSequences) > 0 {
		stops = strings.Join(cfg.StopSequences, ", ")
	}
	a.printInfo("Stop sequences", stops)

	a.println()
	a.println(success("Safety"))
	for _, s := range cfg.SafetySettings() {
		a.printInfo(strings.TrimPrefix(string(s.Category), "HARM_CATEGORY_"), string(s.Threshold))
	}
}

func newConfigSetCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field=value>...",
		Short: "Change config fields",
		Long: `Changes one or more config fields. Fields:

  model, base_url, temperature (0-1), top_k (>=1), top_p (0-1),
  max_output_tokens (>0), stop_sequences (comma-separated, empty clears),
  safety.<category> (BLOCK_NONE, BLOCK_ONLY_HIGH, BLOCK_MEDIUM_AND_ABOVE,
  BLOCK_LOW_AND_ABOVE)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}
			changes, err := parseAssignments(args)
			if err != nil {
				return err
			}
			cfg, err := st.configs.Update(changes)
			if err != nil {
				return err
			}
			a.printSuccess("Config updated")
			a.println()
			a.renderConfig(cfg)
			return nil
		},
	}
}

// parseAssignments turns field=value arguments into Changes.
func parseAssignments(args []string) (genconfig.Changes, error) {
	var ch genconfig.Changes
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok {
			return ch, errors.ConfigInvalid(fmt.Sprintf("expected field=value, got %q", arg))
		}
		field = strings.ToLower(strings.TrimSpace(field))
		value = strings.TrimSpace(value)

		switch field {
		case "model":
			ch.Model = genconfig.String(value)
		case "base_url":
			ch.BaseURL = genconfig.String(value)
		case "temperature":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return ch, errors.ConfigInvalid("temperature must be a number")
			}
			ch.Temperature = genconfig.Float(f)
		case "top_p":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return ch, errors.ConfigInvalid("top_p must be a number")
			}
			ch.TopP = genconfig.Float(f)
		case "top_k":
			n, err := strconv.Atoi(value)
			if err != nil {
				return ch, errors.ConfigInvalid("top_k must be an integer")
			}
			ch.TopK = genconfig.Int(n)
		case "max_output_tokens":
			n, err := strconv.Atoi(value)
			if err != nil {
				return ch, errors.ConfigInvalid("max_output_tokens must be an integer")
			}
			ch.MaxOutputTokens = genconfig.Int(n)
		case "stop_sequences":
			var stops []string
			for _, s := range strings.Split(value, ",") {
				if s = strings.TrimSpace(s); s != "" {
					stops = append(stops, s)
				}
			}
			ch.StopSequences = genconfig.Strings(stops...)
		default:
			name, isSafety := strings.CutPrefix(field, "safety.")
			if !isSafety {
				return ch, errors.ConfigInvalid(fmt.Sprintf("unknown field %q", field))
			}
			cat, err := genconfig.ParseHarmCategory(name)
			if err != nil {
				return ch, errors.ConfigInvalid(err.Error())
			}
			th, err := genconfig.ParseThreshold(value)
			if err != nil {
				return ch, errors.ConfigInvalid(err.Error())
			}
			if ch.Safety == nil {
				ch.Safety = map[genconfig.HarmCategory]genconfig.Threshold{}
			}
			ch.Safety[cat] = th
		}
	}
	return ch, nil
}

func newConfigResetCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default model and generation parameters",
		Long:  `Restores the default model and generation parameters. The API key, base URL and safety settings are kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}
			cfg, err := st.configs.Reset()
			if err != nil {
				return err
			}
			a.printSuccess("Config reset to defaults")
			a.println()
			a.renderConfig(cfg)
			return nil
		},
	}
}

func newConfigExportCmd(a *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the config as JSON (the API key is never included)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}
			now := a.Now()
			data, err := st.configs.Export(now)
			if err != nil {
				return err
			}
			if output == "" {
				a.println(string(data))
				return nil
			}
			path := resolveOutputPath(output, config.ExportFileName(now))
			if err := os.WriteFile(path, append(data, '\n'), config.DefaultFileMode); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			a.printSuccess("Exported config to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file or directory instead of stdout")
	return cmd
}

func newConfigImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a config exported by promptwizard (keeps the current API key)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.ImportInvalid("cannot read file", err)
			}
			cfg, err := st.configs.Import(data)
			if err != nil {
				return err
			}
			a.printSuccess("Imported config from %s", args[0])
			a.println()
			a.renderConfig(cfg)
			return nil
		},
	}
}
