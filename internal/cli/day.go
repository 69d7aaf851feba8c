package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/salahtracker/internal/application"
	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

func newTodayCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Create an empty record for today if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.with(cmd, func(ctx context.Context, svc *application.TrackerService) error {
				created, err := svc.AddToday(ctx)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "created record for %s\n", svc.TodayKey())
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "record for %s already exists\n", svc.TodayKey())
				}
				return nil
			})
		},
	}
}

func newShowCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Print one day's statuses and score (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *application.TrackerService) error {
				dateKey := svc.TodayKey()
				if len(args) == 1 {
					dateKey = args[0]
				}

				day, err := svc.Day(ctx, dateKey)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if !day.Exists {
					fmt.Fprintf(out, "%s: no record\n", day.DateKey)
					return nil
				}
				fmt.Fprintf(out, "%s  score %d/%d\n", day.DateKey, day.Score, model.MaxDayScore)
				for _, p := range model.Prayers {
					fmt.Fprintf(out, "  %-8s %s\n", p.Name, day.Record.Status(p.Key).Label())
				}
				return nil
			})
		},
	}
}

func newSetCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "set <date> <prayer> <status>",
		Short: "Set one prayer's status on a date",
		Long: `Set one prayer's status on any date, creating the day if needed.
Status is one of congregation, individual, qada, or missed.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseStatus(args[2])
			if err != nil {
				return err
			}
			prayerKey := strings.ToLower(args[1])

			return r.with(cmd, func(ctx context.Context, svc *application.TrackerService) error {
				if err := svc.SetStatus(ctx, args[0], prayerKey, status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s set to %s\n", args[0], prayerKey, status.Label())
				return nil
			})
		},
	}
}

func newClearCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <date>",
		Short: "Remove a date's record entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *application.TrackerService) error {
				if err := svc.ClearDay(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", args[0])
				return nil
			})
		},
	}
}

// parseStatus accepts the stored status values plus "missed" for the empty one.
func parseStatus(s string) (model.PrayerStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "missed" {
		return model.StatusMissed, nil
	}
	status := model.PrayerStatus(s)
	if !status.IsValid() || status == model.StatusMissed {
		return "", fmt.Errorf("%w %q: expected congregation, individual, qada, or missed", model.ErrInvalidStatus, s)
	}
	return status, nil
}
