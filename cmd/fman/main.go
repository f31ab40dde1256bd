// Package main provides the fman CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/keiko/fman/internal/config"
)

var (
	version = "0.1.0"
	noColor bool
	jsonOut bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fman",
		Short: "Natural-language file manager",
		Long: `fman understands plain Chinese or English file commands.

  fman do "把桌面上的图片按类型整理"
  fman search "pdf files larger than 10mb"
  fman organize ~/Downloads --by date
  fman shell

Use 'fman parse' to inspect how a command is understood without
running anything.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := applyConfigFile(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			if !prettyOutput() {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "language", Title: "Language:"},
		&cobra.Group{ID: "files", Title: "Files:"},
		&cobra.Group{ID: "analysis", Title: "Analysis:"},
	)

	for _, c := range []*cobra.Command{parseCmd(), validateCmd(), suggestCmd()} {
		c.GroupID = "language"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{doCmd(), searchCmd(), organizeCmd(), renameCmd(),
		cleanupCmd(), undoCmd(), historyCmd(), shellCmd()} {
		c.GroupID = "files"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{dupesCmd(), analyzeCmd()} {
		c.GroupID = "analysis"
		rootCmd.AddCommand(c)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// prettyOutput reports whether to use colors and decorations: only on
// a terminal, and not when disabled by flag or environment.
func prettyOutput() bool {
	if noColor || config.Env().NoColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// applyConfigFile merges ~/.fman/config.yaml into the global tables
// when it exists.
func applyConfigFile() error {
	fc, err := config.LoadFile(config.GetPaths().ConfigFile)
	if err != nil {
		return err
	}
	fc.Apply()
	if fc.NoColor {
		noColor = true
	}
	return nil
}
