package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keiko/fman/internal/metrics"
	"github.com/keiko/fman/internal/render"
	"github.com/keiko/fman/internal/tui"
)

func doCmd() *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "do <command...>",
		Short: "Run a natural-language file command",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := newApp()
			defer a.close()
			fmt.Print(a.Execute(strings.Join(args, " ")))

			if stats {
				recorded := metrics.Global().Stats()
				if jsonOut {
					fmt.Print(asJSON(recorded))
				} else {
					fmt.Print(render.New(prettyOutput()).Stats(recorded))
				}
			}
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "Show operation timings after running")
	return cmd
}

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			defer a.close()
			return tui.Run(a.Execute)
		},
	}
}
