package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/salahtracker/internal/application"
)

func newExportCmd(r *runner) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full history as JSON or CSV",
		Long: `Write the full history to stdout, or to --output. With --output "-"
or no --output the data goes to stdout; with --output "." the default
file name salah-tracker-YYYY-MM-DD.<ext> is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			if format != "json" && format != "csv" {
				return fmt.Errorf("--format must be json or csv, got %q", format)
			}

			return r.with(cmd, func(ctx context.Context, svc *application.TrackerService) error {
				var (
					data     []byte
					filename string
					err      error
				)
				if format == "json" {
					data, filename, err = svc.ExportJSON(ctx)
					if err != nil {
						return err
					}
				} else {
					data, filename = svc.ExportCSV(ctx)
				}

				switch output {
				case "", "-":
					_, err = cmd.OutOrStdout().Write(data)
					return err
				case ".":
					output = filename
				}

				if err := atomic.WriteFile(output, bytes.NewReader(data)); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "export format: json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout, "." for the default name)`)
	return cmd
}

func newImportCmd(r *runner) *cobra.Command {
	var yes, overwrite bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a JSON history file into the store",
		Long: `Merge a JSON history file into the store. Imported dates replace existing
ones. If the file contains dates that already exist, nothing is written
unless --yes is given. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			return r.with(cmd, func(ctx context.Context, svc *application.TrackerService) error {
				result, err := svc.Import(ctx, data, yes || overwrite)
				if err != nil {
					return err
				}
				if !result.Applied {
					return fmt.Errorf("%d date(s) already exist (%s); rerun with --yes to replace them",
						len(result.Conflicts), strings.Join(result.Conflicts, ", "))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries.\n", result.Imported)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace dates that already exist without asking")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "same as --yes")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("import file %s does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
