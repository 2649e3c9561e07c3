package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the host profiles available for inheritance",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runProfiles(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles() error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	names, err := profile.NewStore(cfg.ProfileDir).List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No profiles found")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
