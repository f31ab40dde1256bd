package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keiko/fman/internal/fsops"
	"github.com/keiko/fman/internal/nlp"
	"github.com/keiko/fman/internal/render"
)

func searchCmd() *cobra.Command {
	var glob string

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search files by natural-language query or glob pattern",
		Long: `Search files under a directory.

The query is parsed as a natural-language command:

  fman search "上周修改的pdf文件"
  fman search "images larger than 5mb in downloads"

With --glob the query is a doublestar pattern rooted at the current
directory:

  fman search --glob '**/*.go'`,
		Args: cobra.MinimumNArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := render.New(prettyOutput())

			var results []fsops.FileRecord
			var err error
			if glob != "" {
				wd, werr := os.Getwd()
				if werr != nil {
					return werr
				}
				results, err = fsops.Glob(wd, glob)
			} else {
				if len(args) == 0 {
					return fmt.Errorf("a query or --glob pattern is required")
				}
				intent := nlp.NewProcessor().Parse(strings.Join(args, " "))
				results, err = fsops.Search(fsops.CriteriaFromIntent(intent))
			}
			if err != nil {
				return err
			}

			if jsonOut {
				fmt.Print(asJSON(results))
			} else {
				fmt.Print(r.SearchResults(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&glob, "glob", "", "Glob pattern (e.g. '**/*.jpg') instead of a query")
	return cmd
}
