package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/wattle-lang/wattle/internal/ast"
	"github.com/wattle-lang/wattle/internal/cache"
	"github.com/wattle-lang/wattle/internal/frontend"
	"github.com/wattle-lang/wattle/internal/wat"
)

// LowerOptions holds flags for the lower command.
type LowerOptions struct {
	*RootOptions
	Output    string // output file path
	CachePath string // artifact cache database path
}

// LowerResult is the JSON-mode output of the lower command.
type LowerResult struct {
	ModuleID string `json:"module_id"`
	Cached   bool   `json:"cached"`
	BuildID  string `json:"build_id,omitempty"`
	WAT      string `json:"wat"`
}

// NewLowerCommand creates the lower command.
func NewLowerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LowerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lower <file>",
		Short: "Lower an IR document to a WebAssembly text module",
		Long: `Lower a YAML or JSON IR document to a WebAssembly text module.

The document is validated against the IR schema, lowered, and printed to
stdout (or written with --output). With a cache configured, unchanged
modules are served by content hash instead of being re-lowered.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLower(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.CachePath, "cache", env.Str("WATTLE_CACHE"), "artifact cache database path (default $WATTLE_CACHE)")

	return cmd
}

func runLower(opts *LowerOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	block, err := loadDocument(path)
	if err != nil {
		return err
	}

	result := LowerResult{}
	result.ModuleID, err = frontend.ModuleID(block)
	if err != nil {
		return WrapExitError(ExitCommandError, "hashing module", err)
	}
	formatter.VerboseLog("module id: %s", result.ModuleID)

	ctx := context.Background()
	var artifacts *cache.Cache
	if opts.CachePath != "" {
		artifacts, err = cache.Open(opts.CachePath)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening cache", err)
		}
		defer artifacts.Close()

		cached, hit, err := artifacts.Get(ctx, result.ModuleID)
		if err != nil {
			return WrapExitError(ExitCommandError, "reading cache", err)
		}
		if hit {
			formatter.VerboseLog("cache hit")
			result.Cached = true
			result.WAT = cached
		}
	}

	if !result.Cached {
		result.WAT, err = wat.Assemble(block)
		if err != nil {
			return WrapExitError(ExitFailure, "lowering failed", err)
		}
		if artifacts != nil {
			result.BuildID, err = artifacts.Put(ctx, result.ModuleID, result.WAT)
			if err != nil {
				return WrapExitError(ExitCommandError, "writing cache", err)
			}
			formatter.VerboseLog("cached as build %s", result.BuildID)
		}
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(result.WAT), 0o644); err != nil {
			return WrapExitError(ExitCommandError, "writing output file", err)
		}
		formatter.VerboseLog("wrote %s", opts.Output)
	}

	if opts.Format == "json" {
		return formatter.PrintJSON(result)
	}
	if opts.Output == "" {
		fmt.Fprint(formatter.Writer, result.WAT)
	}
	return nil
}

// loadDocument reads and decodes an IR document file, mapping failures to
// exit codes: missing/unreadable files are command errors, malformed
// documents are input failures.
func loadDocument(path string) (ast.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ast.Block{}, WrapExitError(ExitCommandError, "reading document", err)
	}
	block, err := frontend.Decode(data)
	if err != nil {
		var docErr *frontend.DocumentError
		if errors.As(err, &docErr) {
			return ast.Block{}, WrapExitError(ExitFailure, "invalid document", err)
		}
		return ast.Block{}, WrapExitError(ExitCommandError, "decoding document", err)
	}
	return block, nil
}
