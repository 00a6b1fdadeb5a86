package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gerunddev/mdx/internal/config"
	"github.com/gerunddev/mdx/internal/styles"
)

var initOutput string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a sample configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(initOutput)
	},
}

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "mdx.toml", "output path for configuration file")
}

func initConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Configuration file created: " + path))
	return nil
}
