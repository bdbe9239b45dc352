package cli

import (
	"github.com/HartBrook/promptwizard/internal/catalog"
	"github.com/spf13/cobra"
)

// NewOptionsCmd creates the options command.
func NewOptionsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List categories and selector values",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.open()
			if err != nil {
				return err
			}
			defaults := st.settings.Defaults

			a.println(success("Categories"))
			for _, c := range catalog.Categories() {
				a.printf("  %s %s%s\n", info(c.ID), c.PanelTitle, defaultMark(c.ID, defaults.Category))
				a.printf("    %s\n", dim(c.PanelDescription))
			}

			a.printOptions("Complexity (--complexity)", catalog.Complexities(), defaults.Complexity)
			a.printOptions("Target model (--target)", catalog.Targets(), defaults.Target)
			a.printOptions("Style (--style)", catalog.Styles(), defaults.Style)

			a.println()
			a.println(success("Language (--language)"))
			for _, o := range catalog.Languages() {
				a.printf("  %-8s %s%s\n", info(o.ID), catalog.LanguageDisplayName(o.ID), defaultMark(o.ID, defaults.Language))
			}
			return nil
		},
	}
}

func (a *App) printOptions(title string, opts []catalog.Option, def string) {
	a.println()
	a.println(success(title))
	for _, o := range opts {
		a.printf("  %-14s %s%s\n", info(o.ID), o.Description, defaultMark(o.ID, def))
	}
}

func defaultMark(id, def string) string {
	if id == def {
		return dim(" (default)")
	}
	return ""
}
