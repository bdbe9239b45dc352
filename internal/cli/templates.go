package cli

import (
	"strings"

	"github.com/HartBrook/promptwizard/internal/catalog"
	"github.com/HartBrook/promptwizard/internal/templates"
	"github.com/spf13/cobra"
)

// NewTemplatesCmd creates the templates command.
func NewTemplatesCmd(a *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List built-in prompt templates",
		Example: `  promptwizard templates
  promptwizard templates --category art
  promptwizard templates show code-review`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplates(a, category)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list templates for this category")
	cmd.AddCommand(newTemplatesShowCmd(a))

	return cmd
}

func newTemplatesShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a template body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := templates.Find(args[0])
			if err != nil {
				return err
			}
			a.printf("%s %s\n", info(tmpl.ID), tmpl.Title)
			a.printInfo("Category", catalog.CategoryName(tmpl.Category))
			a.printInfo("Description", tmpl.Description)
			a.printInfo("Tags", strings.Join(tmpl.Tags, ", "))
			if ph := tmpl.Placeholders(); len(ph) > 0 {
				a.printInfo("Fill in", strings.Join(ph, ", "))
			}
			a.println()
			a.println(tmpl.Body)
			return nil
		},
	}
}

func runTemplates(a *App, category string) error {
	list := templates.All()
	if category != "" {
		if _, err := catalog.LookupCategory(category); err != nil {
			return err
		}
		list = templates.ForCategory(category)
	}

	current := ""
	for _, tmpl := range list {
		if tmpl.Category != current {
			if current != "" {
				a.println()
			}
			current = tmpl.Category
			a.println(success(catalog.CategoryName(current)))
		}
		a.printf("  %-14s %s  %s\n", info(tmpl.ID), tmpl.Title, dim(tmpl.Description))
	}

	a.println()
	a.println(dim("Use one with: promptwizard optimize --template <id>"))
	return nil
}
