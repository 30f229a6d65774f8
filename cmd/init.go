package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talentpath/assist/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an assist configuration interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", cfgFile)
			}
		}

		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
