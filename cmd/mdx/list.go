package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gerunddev/mdx/internal/styles"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available tasks in a markdown file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listTasks()
	},
}

func listTasks() error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	r := newRunner(cfg)

	sections, err := r.ListSections(taskFile)
	if err != nil {
		return err
	}

	// An empty manifest is reported, not treated as an error.
	if len(sections) == 0 {
		fmt.Println(styles.WarningStyle.Render("No tasks found in " + taskFile))
		return nil
	}

	var out strings.Builder
	out.WriteString(styles.TitleStyle.Render("Available tasks in"))
	out.WriteString(" ")
	out.WriteString(styles.FileStyle.Render(taskFile))
	out.WriteString("\n\n")

	for _, section := range sections {
		out.WriteString("  ")
		out.WriteString(styles.TaskStyle.Render(section.Title))
		if desc := strings.TrimSpace(section.Description); desc != "" {
			out.WriteString(" ")
			out.WriteString(styles.DescStyle.Render("- " + desc))
		}
		out.WriteString("\n")
	}

	fmt.Print(out.String())
	return nil
}
