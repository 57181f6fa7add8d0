package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/wattle-lang/wattle/internal/cache"
)

// CacheOptions holds flags for the cache subcommands.
type CacheOptions struct {
	*RootOptions
	CachePath string
}

// NewCacheCommand creates the cache command group.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CacheOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the artifact cache",
	}
	cmd.PersistentFlags().StringVar(&opts.CachePath, "cache", env.Str("WATTLE_CACHE"), "artifact cache database path (default $WATTLE_CACHE)")

	cmd.AddCommand(newCacheStatsCommand(opts))
	cmd.AddCommand(newCacheClearCommand(opts))
	return cmd
}

func newCacheStatsCommand(opts *CacheOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Show artifact cache statistics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			artifacts, err := openCache(opts)
			if err != nil {
				return err
			}
			defer artifacts.Close()

			stats, err := artifacts.Stats(context.Background())
			if err != nil {
				return WrapExitError(ExitCommandError, "reading cache", err)
			}
			if opts.Format == "json" {
				return formatter.PrintJSON(stats)
			}
			formatter.PrintText("artifacts: %d", stats.Artifacts)
			return nil
		},
	}
}

func newCacheClearCommand(opts *CacheOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Remove all cached artifacts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			artifacts, err := openCache(opts)
			if err != nil {
				return err
			}
			defer artifacts.Close()

			if err := artifacts.Clear(context.Background()); err != nil {
				return WrapExitError(ExitCommandError, "clearing cache", err)
			}
			return nil
		},
	}
}

func openCache(opts *CacheOptions) (*cache.Cache, error) {
	if opts.CachePath == "" {
		return nil, NewExitError(ExitCommandError, "no cache configured: set --cache or $WATTLE_CACHE")
	}
	artifacts, err := cache.Open(opts.CachePath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening cache", err)
	}
	return artifacts, nil
}
