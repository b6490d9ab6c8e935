package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/slingshot-dev/slingshot/internal/export"
	"github.com/slingshot-dev/slingshot/internal/mapping"
	"github.com/slingshot-dev/slingshot/internal/packager"
	"github.com/slingshot-dev/slingshot/internal/translate/registry"
)

// Error codes surfaced by the export command.
const (
	ErrCodeProfile  = "X001" // profile missing or invalid
	ErrCodeMappings = "X002" // mapping tables failed to load
	ErrCodeSystem   = "X003" // unknown source system
	ErrCodeSession  = "X004" // package session could not be created
	ErrCodeFinalize = "X005" // package could not be sealed
	ErrCodePhases   = "X010" // one or more phases failed
)

// ExportResult is the payload reported after an export run.
type ExportResult struct {
	RunID         string               `json:"run_id"`
	Package       string               `json:"package"`
	ImageArchives []string             `json:"image_archives,omitempty"`
	Rows          map[string]int       `json:"rows"`
	Phases        []export.PhaseResult `json:"phases"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var pageLimit int

	cmd := &cobra.Command{
		Use:   "export <profile.yaml>",
		Short: "Run an export and write the .slingshot package",
		Long: `Run a full export described by a profile.

The profile names the source system, its source files or database, the
mapping tables to use, and where the package goes. A .env file in the
working directory is loaded first so profiles can reference environment
variables for data locations.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, args[0], pageLimit, cmd)
		},
	}

	cmd.Flags().IntVar(&pageLimit, "page-limit", 0, "cap paginated fetch loops (0 = profile or default)")

	return cmd
}

func runExport(opts *RootOptions, profilePath string, pageLimit int, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Best effort; a missing .env is the common case.
	if err := godotenv.Load(); err == nil {
		formatter.VerboseLog("Loaded .env")
	}

	profile, err := export.LoadProfile(profilePath)
	if err != nil {
		return outputExportError(formatter, ErrCodeProfile, err.Error())
	}
	formatter.VerboseLog("Profile: system=%s out=%s", profile.System, profile.PackagePath())

	set, loadErrs := mapping.Load(profile.Mappings, mapping.LoadModeFailFast)
	if len(loadErrs) > 0 {
		var loadErr *mapping.LoadError
		if errors.As(loadErrs[0], &loadErr) {
			return outputExportError(formatter, loadErr.Code, loadErr.Message)
		}
		return outputExportError(formatter, ErrCodeMappings, loadErrs[0].Error())
	}

	connector, err := registry.NewConnector(profile.System, profile, set)
	if err != nil {
		return outputExportError(formatter, ErrCodeSystem, err.Error())
	}

	if err := os.MkdirAll(profile.Out, 0o755); err != nil {
		return outputExportError(formatter, ErrCodeSession, fmt.Sprintf("creating output directory: %v", err))
	}
	session, err := packager.NewSession(profile.Out)
	if err != nil {
		return outputExportError(formatter, ErrCodeSession, err.Error())
	}

	if pageLimit <= 0 {
		pageLimit = profile.PageLimit
	}
	runner := export.NewRunner(connector, session, export.Options{PageLimit: pageLimit})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := make(chan export.Progress, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for p := range progress {
			formatter.VerboseLog("  %s: %d/%d %s", p.Phase, p.Done, p.Total, p.Message)
		}
	}()

	results, runErr := runner.Run(ctx, progress)
	close(progress)
	wg.Wait()

	if runErr != nil {
		// Cancellation or a session-level write failure; nothing to seal.
		return outputExportError(formatter, ErrCodePhases, runErr.Error())
	}

	result, err := session.Finalize(profile.PackagePath())
	if err != nil {
		return outputExportError(formatter, ErrCodeFinalize, err.Error())
	}

	payload := ExportResult{
		RunID:         runner.RunID().String(),
		Package:       result.PackagePath,
		ImageArchives: result.ImageArchives,
		Rows:          result.RowCounts,
		Phases:        results,
	}
	return outputExportResult(formatter, payload)
}

func outputExportError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

func outputExportResult(formatter *OutputFormatter, payload ExportResult) error {
	failed := export.Failed(payload.Phases)

	if formatter.Format == "json" {
		response := CLIResponse{Status: "ok", Data: payload, RunID: payload.RunID}
		if failed {
			response.Status = "error"
			response.Error = &CLIError{Code: ErrCodePhases, Message: "one or more phases failed"}
		}
		if err := jsonEncode(formatter, response); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "Package: %s\n", payload.Package)
		for _, archive := range payload.ImageArchives {
			fmt.Fprintf(formatter.Writer, "Images:  %s\n", archive)
		}
		fmt.Fprintln(formatter.Writer)
		for _, phase := range payload.Phases {
			mark := "✓"
			if phase.Err != nil {
				mark = "✗"
			}
			fmt.Fprintf(formatter.Writer, "%s %-14s %6d records", mark, phase.Phase, phase.Records)
			if phase.Skipped > 0 {
				fmt.Fprintf(formatter.Writer, " (%d skipped)", phase.Skipped)
			}
			if phase.Err != nil {
				fmt.Fprintf(formatter.Writer, "  %s", phase.Error)
			}
			fmt.Fprintln(formatter.Writer)
		}
	}

	if failed {
		return NewExitError(ExitFailure, "one or more phases failed")
	}
	return nil
}
