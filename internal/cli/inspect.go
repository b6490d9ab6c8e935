package cli

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
)

// Error codes surfaced by the inspect command.
const (
	ErrCodePackageOpen = "I001" // package could not be opened
	ErrCodePackageRead = "I002" // an entry could not be read as CSV
)

// InspectEntry describes one CSV file inside a package.
type InspectEntry struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// InspectResult is the payload reported for a package.
type InspectResult struct {
	Package string         `json:"package"`
	Entries []InspectEntry `json:"entries"`
	Total   int            `json:"total_rows"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <package.slingshot>",
		Short: "Summarize the contents of a package",
		Long: `Open a .slingshot package and report each CSV file with its data row
and column counts. Useful for eyeballing an export before handing the
package over for import.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runInspect(opts *RootOptions, packagePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reader, err := zip.OpenReader(packagePath)
	if err != nil {
		_ = formatter.Error(ErrCodePackageOpen, fmt.Sprintf("opening package: %v", err), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	defer reader.Close()

	result := InspectResult{Package: packagePath}
	for _, file := range reader.File {
		entry, err := inspectEntry(file)
		if err != nil {
			_ = formatter.Error(ErrCodePackageRead, err.Error(), nil)
			return NewExitError(ExitFailure, err.Error())
		}
		result.Entries = append(result.Entries, entry)
		result.Total += entry.Rows
	}
	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].Name < result.Entries[j].Name
	})

	if formatter.Format == "json" {
		return jsonEncode(formatter, CLIResponse{Status: "ok", Data: result})
	}

	fmt.Fprintf(formatter.Writer, "Package: %s\n\n", result.Package)
	for _, entry := range result.Entries {
		fmt.Fprintf(formatter.Writer, "%-36s %6d rows  %2d columns\n", entry.Name, entry.Rows, entry.Columns)
	}
	fmt.Fprintf(formatter.Writer, "\nTotal: %d data rows in %d files\n", result.Total, len(result.Entries))
	return nil
}

func inspectEntry(file *zip.File) (InspectEntry, error) {
	entry := InspectEntry{Name: file.Name}

	rc, err := file.Open()
	if err != nil {
		return entry, fmt.Errorf("opening %s: %w", file.Name, err)
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return entry, nil
	}
	if err != nil {
		return entry, fmt.Errorf("reading %s: %w", file.Name, err)
	}
	entry.Columns = len(header)
	for {
		_, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return entry, fmt.Errorf("reading %s: %w", file.Name, err)
		}
		entry.Rows++
	}
	return entry, nil
}
