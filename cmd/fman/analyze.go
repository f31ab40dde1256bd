package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keiko/fman/internal/analyzer"
	"github.com/keiko/fman/internal/render"
)

func dupesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dupes [dir]",
		Short: "Find files with identical content",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := analyzer.New().FindDuplicates(argOrCwd(args))
			if err != nil {
				return err
			}

			if jsonOut {
				fmt.Print(asJSON(groups))
			} else {
				fmt.Print(render.New(prettyOutput()).Duplicates(groups))
			}
			return nil
		},
	}
}

func analyzeCmd() *cobra.Command {
	var patterns bool
	var advice bool

	cmd := &cobra.Command{
		Use:   "analyze [dir]",
		Short: "Analyze a directory tree",
		Long: `Analyze a directory: totals, type histogram, size distribution,
largest and oldest files, duplicates.

--patterns reports naming conventions and suggests reorganizations;
--advice reports storage cleanup opportunities.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := argOrCwd(args)
			a := analyzer.New()
			r := render.New(prettyOutput())

			switch {
			case patterns:
				report, err := a.AnalyzePatterns(dir)
				if err != nil {
					return err
				}
				if jsonOut {
					fmt.Print(asJSON(report))
				} else {
					fmt.Print(r.Suggestions(report.Suggestions))
				}

			case advice:
				rec, err := a.StorageRecommendations(dir)
				if err != nil {
					return err
				}
				if jsonOut {
					fmt.Print(asJSON(rec))
				} else {
					fmt.Print(r.Suggestions(rec.CleanupOpportunities))
				}

			default:
				report, err := a.AnalyzeDirectory(dir)
				if err != nil {
					return err
				}
				if jsonOut {
					fmt.Print(asJSON(report))
				} else {
					fmt.Print(r.Report(report))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&patterns, "patterns", false, "Analyze naming patterns and suggest reorganizations")
	cmd.Flags().BoolVar(&advice, "advice", false, "Show storage cleanup recommendations")
	return cmd
}
