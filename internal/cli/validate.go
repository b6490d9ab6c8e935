package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slingshot-dev/slingshot/internal/mapping"
)

// MappingIssue is one problem found in a mapping file, positioned when
// the CUE source position is known.
type MappingIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool           `json:"valid"`
	Systems []string       `json:"systems,omitempty"`
	Issues  []MappingIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <mappings-dir>",
		Short: "Validate mapping tables without running an export",
		Long: `Validate the CUE mapping tables in a directory.

Checks syntax, the mapping schema, coercion kinds and duplicate
canonical fields, and reports every problem found. Faster feedback than
running a full export against real data.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, mappingsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	set, loadErrs := mapping.Load(mappingsDir, mapping.LoadModeCollectAll)

	// A nil set means loading never got to the tables (bad path, no files,
	// CUE would not build). Those are command errors, not validation findings.
	if set == nil && len(loadErrs) > 0 {
		var loadErr *mapping.LoadError
		if errors.As(loadErrs[0], &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Error())
		}
		_ = formatter.Error(mapping.ErrCodeGeneric, loadErrs[0].Error(), nil)
		return NewExitError(ExitCommandError, loadErrs[0].Error())
	}

	issues := make([]MappingIssue, 0, len(loadErrs))
	for _, err := range loadErrs {
		var loadErr *mapping.LoadError
		if errors.As(err, &loadErr) {
			issue := MappingIssue{Code: loadErr.Code, Message: loadErr.Message}
			if loadErr.Pos.IsValid() {
				issue.File = loadErr.Pos.Filename()
				issue.Line = loadErr.Pos.Line()
			}
			issues = append(issues, issue)
		} else {
			issues = append(issues, MappingIssue{Code: mapping.ErrCodeGeneric, Message: err.Error()})
		}
	}

	systems := set.Systems()
	for _, system := range systems {
		formatter.VerboseLog("Validated mappings for system: %s", system)
	}

	if len(issues) > 0 {
		return outputValidationIssues(formatter, systems, issues)
	}
	return outputValidateSuccess(formatter, systems)
}

func outputValidateSuccess(formatter *OutputFormatter, systems []string) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Systems: systems})
	}
	fmt.Fprintf(formatter.Writer, "✓ Mappings valid (%d system(s))\n", len(systems))
	return nil
}

func outputValidationIssues(formatter *OutputFormatter, systems []string, issues []MappingIssue) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Systems: systems, Issues: issues},
			Error: &CLIError{
				Code:    issues[0].Code,
				Message: issues[0].Message,
			},
		}
		if err := jsonEncode(formatter, response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range issues {
		if issue.File != "" {
			fmt.Fprintf(formatter.Writer, "%s:%d\n", issue.File, issue.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))
}
