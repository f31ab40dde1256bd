package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keiko/fman/internal/organizer"
	"github.com/keiko/fman/internal/render"
)

func argOrCwd(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func printResult(res *organizer.Result) {
	if jsonOut {
		fmt.Print(asJSON(res))
	} else {
		fmt.Print(render.New(prettyOutput()).Result(res))
	}
	if !res.Success {
		os.Exit(1)
	}
}

func organizeCmd() *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "organize [dir]",
		Short: "Group a directory's files into subdirectories",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := newApp()
			defer a.close()
			printResult(a.organizer.Organize(argOrCwd(args), organizer.Strategy(by)))
		},
	}
	cmd.Flags().StringVar(&by, "by", "type", "Grouping strategy: type, date, size or extension")
	return cmd
}

func renameCmd() *cobra.Command {
	var pattern string
	var apply bool

	cmd := &cobra.Command{
		Use:   "rename [dir]",
		Short: "Batch rename files with a placeholder pattern",
		Long: `Rename every top-level file of a directory.

Placeholders: {name} {ext} {index} {index:02d} {index:03d}
{date} {time} {year} {month} {day} {size}

The default is a dry run; pass --apply to rename.

  fman rename ~/Photos --pattern '{date}_{name}_{index:03d}{ext}' --apply`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := newApp()
			defer a.close()
			printResult(a.organizer.Rename(argOrCwd(args), pattern, !apply))
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "Rename pattern (required)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Apply the renames instead of previewing")
	cmd.MarkFlagRequired("pattern")
	return cmd
}

func cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup [dir]",
		Short: "Remove empty directories",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := newApp()
			defer a.close()
			printResult(a.organizer.CleanupEmptyDirs(argOrCwd(args)))
		},
	}
}

func undoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last rename of this session",
		Long: `Undo the most recent operation of the current session.

Only batch renames can be undone, and only within the session that ran
them; use the interactive shell to rename and undo in one session.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a := newApp()
			defer a.close()
			printResult(a.organizer.UndoLast())
		},
	}
}

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the persisted operation history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			defer a.close()

			if a.journal == nil {
				return fmt.Errorf("operation journal unavailable")
			}
			entries, err := a.journal.Recent(limit)
			if err != nil {
				return err
			}

			if jsonOut {
				fmt.Print(asJSON(entries))
				return nil
			}

			records := make([]organizer.Record, len(entries))
			for i, e := range entries {
				records[i] = organizer.Record{
					ID:        e.ID,
					Operation: e.Operation,
					Path:      e.Path,
					Detail:    e.Detail,
					Timestamp: e.Timestamp,
					Result:    e.Result,
				}
			}
			fmt.Print(render.New(prettyOutput()).History(records))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of entries to show (0 for all)")
	return cmd
}
