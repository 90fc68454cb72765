package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config <path>",
	Short: "Write the effective configuration to a YAML file",
	Long: `Writes the configuration deepk would use, i.e. the config file with environment
overrides and global flags applied, to path. The result is a starting point
for a new config file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Save(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote configuration to %s\n", args[0])
		return nil
	},
}
