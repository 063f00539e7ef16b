package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onk/blogchecker/internal/sanitize"
)

func newCountCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "count <text...>",
		Short: "Print the number of technical terms in the given text",
		Long:  `Joins the arguments with spaces, strips any HTML and prints how many technical terms the text contains.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			app, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			matcher, err := app.Matchers.Matcher(ctx)
			if err != nil {
				return err
			}

			text := sanitize.Clean(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), matcher.Count(text))
			return nil
		},
	}
}
