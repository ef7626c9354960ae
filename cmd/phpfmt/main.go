package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"phpfmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "phpfmt",
	Short: "Opinionated PHP source formatter",
	Long:  `phpfmt parses PHP sources and reprints them in one canonical style`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("jobs", 0, "files formatted in parallel (0 = all CPUs)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
