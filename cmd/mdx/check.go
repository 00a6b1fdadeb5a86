package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/mdx/internal/styles"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that all configured runtimes are available",
	Long: `Check resolves the leading program of every configured runtime command
against PATH and reports the first one that is missing. It is a pre-flight
check; nothing is executed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkRuntimes()
	},
}

func checkRuntimes() error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	if err := cfg.ValidateRuntimes(); err != nil {
		return err
	}

	fmt.Println(styles.SuccessStyle.Render(
		fmt.Sprintf("✓ All %d configured runtimes found in PATH", len(cfg.Runtimes))))
	return nil
}
