package cmd

import (
	"github.com/spf13/cobra"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Start a mock test",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}
