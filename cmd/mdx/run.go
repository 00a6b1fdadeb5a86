package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <task> [args...]",
	Short: "Run a task from a markdown file",
	Long: `Run executes the code blocks of the section whose title matches the
task name. Trailing arguments are passed to every code block as MX_ARGS
and MX_ARG_0, MX_ARG_1, ... environment variables.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTask(args[0], args[1:])
	},
}

func runTask(task string, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	r := newRunner(cfg)

	fmt.Printf("Running task: %s\n\n", task)

	return r.RunTask(taskFile, task, args)
}
