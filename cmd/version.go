package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lintgate/lintgate/internal/report"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lintgate version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lintgate %s\n", report.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
