package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keiko/fman/internal/nlp"
	"github.com/keiko/fman/internal/render"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <command...>",
		Short: "Show how a natural-language command is understood",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			text := strings.Join(args, " ")
			processor := nlp.NewProcessor()

			intents := processor.SplitBatch(text)
			if len(intents) == 0 {
				intents = []nlp.Intent{processor.Parse(text)}
			}

			r := render.New(prettyOutput())
			for _, intent := range intents {
				if jsonOut {
					fmt.Print(asJSON(intent))
				} else {
					fmt.Print(r.Intent(intent))
				}
			}
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <command...>",
		Short: "Check whether a command is complete enough to run",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			text := strings.Join(args, " ")
			v := nlp.NewProcessor().Validate(text)

			if jsonOut {
				fmt.Print(asJSON(v))
			} else {
				fmt.Print(render.New(prettyOutput()).Validation(v))
			}
			if !v.Valid {
				os.Exit(1)
			}
		},
	}
}

func suggestCmd() *cobra.Command {
	var context bool

	cmd := &cobra.Command{
		Use:   "suggest [partial command...]",
		Short: "Suggest example commands",
		Run: func(cmd *cobra.Command, args []string) {
			processor := nlp.NewProcessor()

			var suggestions []string
			if context {
				wd, _ := os.Getwd()
				suggestions = processor.ContextSuggestions(wd, nil)
			} else {
				suggestions = processor.Suggest(strings.Join(args, " "))
			}

			if jsonOut {
				fmt.Print(asJSON(suggestions))
			} else {
				fmt.Print(render.New(prettyOutput()).Suggestions(suggestions))
			}
		},
	}
	cmd.Flags().BoolVar(&context, "context", false, "Suggest from the current directory instead of the partial command")
	return cmd
}
