// Package cli implements the salahctl command tree on top of the tracker
// service.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/salahtracker/internal/application"
)

var (
	version = "dev"
	commit  = "unknown"
)

// ServiceOpener opens the tracker service for one command run. The returned
// close function is called when the command finishes.
type ServiceOpener func(ctx context.Context) (*application.TrackerService, func() error, error)

// NewRootCmd builds the salahctl command tree. Every subcommand obtains its
// service from open.
func NewRootCmd(open ServiceOpener) *cobra.Command {
	root := &cobra.Command{
		Use:   "salahctl",
		Short: "Manage a Salah Tracker prayer history from the command line",
		Long: `salahctl reads and edits the same prayer history as the Salah Tracker
server: record today, set or clear entries, print statistics, and move data
in and out as JSON or CSV.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	r := &runner{open: open}
	root.AddCommand(
		newTodayCmd(r),
		newShowCmd(r),
		newSetCmd(r),
		newClearCmd(r),
		newStatsCmd(r),
		newExportCmd(r),
		newImportCmd(r),
	)
	return root
}

// runner opens the service around each command invocation.
type runner struct {
	open ServiceOpener
}

func (r *runner) with(cmd *cobra.Command, fn func(ctx context.Context, svc *application.TrackerService) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, closeFn, err := r.open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	runErr := fn(ctx, svc)
	if closeErr := closeFn(); closeErr != nil && runErr == nil {
		return fmt.Errorf("close store: %w", closeErr)
	}
	return runErr
}
