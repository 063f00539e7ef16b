package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onk/blogchecker/internal/infrastructure"
	"github.com/onk/blogchecker/internal/repository"
	"github.com/onk/blogchecker/internal/service"
)

// resolve needs no word list, so it wires the resolver directly
func newResolveCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Print the feed URL of a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			fetcher := repository.NewBoundedFetcher(
				infrastructure.DefaultUserAgent,
				repository.DefaultFetchTimeout,
				repository.WithMaxRedirects(repository.DiscoveryMaxRedirects),
			)
			resolver := service.NewResolver(repository.NewFeedDiscoverer(fetcher))

			site := siteFromArgs(args, flags)
			feedURL, ok, err := resolver.Resolve(ctx, site)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no feed found for %s", site.URL)
			}

			fmt.Fprintln(cmd.OutOrStdout(), feedURL)
			return nil
		},
	}
	addKindFlag(cmd, flags)
	return cmd
}
