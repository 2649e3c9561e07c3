// Package cmd implements the lintgate command line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootPath       string
	quiet          bool
	outputFormat   string
	outputFile     string
	applyFixes     bool
	profileName    string
	inherit        bool
	logLevel       string
	useBaseline    bool
	createBaseline bool
	baselinePath   string
)

var rootCmd = &cobra.Command{
	Use:   "lintgate",
	Short: "lintgate - run a battery of code inspections and gate the build on the findings",
	Long: `lintgate runs a configurable set of static-code inspections over a source
tree, aggregates and orders the findings, optionally applies automatic fixes,
and emits machine-readable and human-readable reports.

Per-severity finding thresholds make the run fail the build once exceeded;
the exit code is the only status a CI caller needs.`,
	Run: func(cmd *cobra.Command, args []string) {
		ok, err := runGate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Workspace root directory (defaults to the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-finding console log lines")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Report format (console|json|xml)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for reports (required for json and xml)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "Host profile to inherit tools from (empty selects the current profile)")
	rootCmd.PersistentFlags().BoolVar(&inherit, "inherit", false, "Inherit tools from the host profile")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	rootCmd.Flags().BoolVar(&applyFixes, "fix", false, "Apply single-candidate automatic fixes")
	rootCmd.Flags().BoolVar(&useBaseline, "baseline", false, "Ignore findings recorded in the baseline file")
	rootCmd.Flags().BoolVar(&createBaseline, "create-baseline", false, "Record all current findings as the baseline and exit successfully")
	rootCmd.Flags().StringVar(&baselinePath, "baseline-path", ".lintgate-baseline.json", "Baseline file path, relative to the workspace root")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("inherit", rootCmd.PersistentFlags().Lookup("inherit"))
	viper.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("applyFixes", rootCmd.Flags().Lookup("fix"))
}

// newLogger builds the structured logger used across the run.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
