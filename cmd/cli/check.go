package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
)

func newCheckCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Print the technical entries of a site's feed as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			app, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			entries, err := app.TechFeed.Run(ctx, siteFromArgs(args, flags))
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(entries)
		},
	}
	addKindFlag(cmd, flags)
	return cmd
}
