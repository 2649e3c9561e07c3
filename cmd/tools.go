package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/profile"
	"github.com/lintgate/lintgate/internal/registry"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the resolved effective tool set without running analysis",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTools(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools() error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	logger := newLogger("error") // keep the listing clean
	store := profile.NewStore(cfg.ProfileDir)

	tools, err := registry.Resolve(cfg, registry.Default(), store, logger)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(tools))
	for id := range tools {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("%-32s %-12s %-12s %s\n", "ID", "SEVERITY", "SCOPE", "FIX")
	for _, id := range ids {
		d := tools[id]
		scope := d.Scope
		if scope == "" {
			scope = "(any)"
		}
		fix := ""
		if d.FixEnabled {
			fix = "enabled"
		}
		fmt.Printf("%-32s %-12s %-12s %s\n", d.ID, d.Severity, scope, fix)
	}
	return nil
}
