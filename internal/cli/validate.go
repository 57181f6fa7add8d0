package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/wattle-lang/wattle/internal/frontend"
	"github.com/wattle-lang/wattle/internal/wat"
)

// ValidateResult is the JSON-mode output of the validate command.
type ValidateResult struct {
	Valid    bool   `json:"valid"`
	ModuleID string `json:"module_id,omitempty"`
	Error    string `json:"error,omitempty"`
	Code     string `json:"code,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check an IR document without emitting output",
		Long: `Check that an IR document is well-formed and lowerable.

Validation runs the full pipeline (schema validation, tree construction,
lowering) and discards the output text. Exit code 0 means lowering
the document would succeed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	block, err := loadDocument(path)
	if err != nil {
		return outputValidateFailure(formatter, err)
	}

	moduleID, err := frontend.ModuleID(block)
	if err != nil {
		return WrapExitError(ExitCommandError, "hashing module", err)
	}

	if _, err := wat.Assemble(block); err != nil {
		return outputValidateFailure(formatter, WrapExitError(ExitFailure, "lowering failed", err))
	}

	if opts.Format == "json" {
		return formatter.PrintJSON(ValidateResult{Valid: true, ModuleID: moduleID})
	}
	formatter.PrintText("OK %s", moduleID)
	return nil
}

// outputValidateFailure reports a failed validation in the selected
// format, then returns the error so the exit code propagates.
func outputValidateFailure(formatter *OutputFormatter, err error) error {
	code := ""
	var lowErr *wat.LoweringError
	if errors.As(err, &lowErr) {
		code = string(lowErr.Code)
	}
	var docErr *frontend.DocumentError
	if errors.As(err, &docErr) {
		code = docErr.Code
	}

	if formatter.Format == "json" {
		if jsonErr := formatter.PrintJSON(ValidateResult{Valid: false, Error: err.Error(), Code: code}); jsonErr != nil {
			return jsonErr
		}
		return err
	}
	formatter.PrintText("INVALID: %v", err)
	return err
}
