// mdx is a Markdown-based task runner: headings name tasks, fenced code
// blocks under a heading are the task's steps.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gerunddev/mdx/internal/config"
	"github.com/gerunddev/mdx/internal/logger"
	"github.com/gerunddev/mdx/internal/runner"
	"github.com/gerunddev/mdx/internal/styles"
)

const version = "0.1.0"

const defaultTasksFile = "README.md"

var (
	// Global flags
	taskFile string
	cfgFile  string
	level    int
	runtimes []string
	execMode string
	verbose  bool

	// rootCmd runs a task directly (shorthand for 'run') or lists tasks
	// when no task is given. Assigned in init to avoid an initialization
	// cycle through resolveConfig.
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "mdx [task] [args...]",
		Short: "Markdown-based task runner",
		Long: `mdx treats a Markdown document as a task manifest: headings at a
configured depth name tasks, and fenced code blocks under a heading are
the task's executable steps.

Examples:
  mdx                       List tasks in README.md
  mdx build                 Run the 'build' task
  mdx run test -f TASKS.md  Run the 'test' task from TASKS.md
  mdx build arg1 arg2       Run 'build' with MX_ARG_* variables set
  mdx init                  Write a default mdx.toml`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listTasks()
			}
			return runTask(args[0], args[1:])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&taskFile, "file", "f", defaultTasksFile, "path to the markdown file")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file")
	rootCmd.PersistentFlags().IntVarP(&level, "level", "l", 0, "heading level for sections (1-6)")
	rootCmd.PersistentFlags().StringArrayVarP(&runtimes, "runtime", "r", nil, "override runtime for a language (format: lang:command)")
	rootCmd.PersistentFlags().StringVarP(&execMode, "execution-mode", "e", "", "execution mode for runtime overrides (stdin, file, arg)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
}

// Execute runs the CLI and surfaces errors as a styled single line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}
}

// resolveConfig builds the effective configuration for this invocation:
// built-in defaults, overlaid by the config file when given, overlaid by
// per-invocation flag overrides. Immutable afterwards.
func resolveConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cliLogger().ConfigLoaded(cfgFile, len(cfg.Runtimes), cfg.HeadingLevel)
	} else {
		cfg = config.Default()
	}

	// Changed, not the value: an explicit --level 0 must fail validation
	// instead of being ignored.
	if rootCmd.PersistentFlags().Changed("level") {
		cfg.HeadingLevel = level
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	if len(runtimes) > 0 {
		var mode *config.ExecutionMode
		if execMode != "" {
			parsed, err := config.ParseExecutionMode(execMode)
			if err != nil {
				return nil, err
			}
			mode = &parsed
		}
		if err := cfg.ApplyRuntimeOverrides(runtimes, mode); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// cliLogger returns the invocation's logger: debug to stderr under
// --verbose, discarded otherwise.
func cliLogger() *logger.Logger {
	if verbose {
		return logger.NewWithLevel(os.Stderr, log.DebugLevel)
	}
	return logger.Discard()
}

// newRunner builds a Runner wired with the invocation's logger.
func newRunner(cfg *config.Config) *runner.Runner {
	r := runner.New(cfg)
	r.SetLogger(cliLogger())
	return r
}
