package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/onk/blogchecker/internal/application"
	"github.com/onk/blogchecker/internal/infrastructure"
	"github.com/onk/blogchecker/internal/model"
)

const (
	appName               = "blogchecker"
	defaultOverallTimeout = 2 * time.Minute
)

// rootFlags are shared by every subcommand
type rootFlags struct {
	words   string
	kind    string
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:          appName,
		Short:        "Filter blog feeds down to technical entries",
		Long:         `Resolves the feed of a blog, fetches it and keeps the entries that mention enough technical terms.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.words, "words", "", "word list location, overrides TECHWORDS_PATH (gs://bucket/key or a local path)")
	rootCmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", defaultOverallTimeout, "overall timeout")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(
		newCheckCmd(flags),
		newCountCmd(flags),
		newResolveCmd(flags),
	)
	return rootCmd
}

// addKindFlag registers --kind on commands that take a site URL
func addKindFlag(cmd *cobra.Command, flags *rootFlags) {
	cmd.Flags().StringVar(&flags.kind, "kind", string(model.KindOther), "site kind: hatenablog, speakerdeck, scrapbox, slideshare or other")
}

// newApp builds the application with logs on stderr so stdout stays JSON
func newApp(ctx context.Context, flags *rootFlags) (*application.Application, error) {
	if flags.words != "" {
		os.Setenv("TECHWORDS_PATH", flags.words)
	}

	cfg, err := infrastructure.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.LogFormat = "text"
	if flags.verbose {
		cfg.LogLevel = "debug"
	} else {
		cfg.LogLevel = "warn"
	}

	app, err := application.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Logger.SetOutput(os.Stderr)
	return app, nil
}

func siteFromArgs(args []string, flags *rootFlags) model.Site {
	return model.Site{Kind: model.ParseKind(flags.kind), URL: args[0]}
}
