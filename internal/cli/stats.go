package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/salahtracker/internal/application"
	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

func newStatsCmd(r *runner) *cobra.Command {
	var window, months int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print completion, streak, per-prayer counts, and monthly shares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if window < 1 || window > application.MaxWindowDays {
				return fmt.Errorf("--window must be between 1 and %d, got %d", application.MaxWindowDays, window)
			}
			if months < 0 {
				return fmt.Errorf("--months must not be negative, got %d", months)
			}
			return r.with(cmd, func(ctx context.Context, svc *application.TrackerService) error {
				dash := svc.Dashboard(ctx, window, months)
				summary, breakdown, monthly := dash.Summary, dash.Breakdown, dash.Monthly

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Today:      %s\n", summary.TodayKey)
				fmt.Fprintf(out, "Last %d days: %d/%d prayers (%d%%)\n",
					summary.WindowDays, summary.Totals.Completed, summary.Totals.Possible, summary.Totals.Percentage)
				fmt.Fprintf(out, "Streak:     %d\n\n", summary.Streak)

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "PRAYER\tCONGREGATION\tINDIVIDUAL\tMAKE-UP")
				for _, p := range model.Prayers {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", p.Name,
						breakdown.Congregation[p.Key], breakdown.Individual[p.Key], breakdown.Qada[p.Key])
				}
				if err := tw.Flush(); err != nil {
					return err
				}

				if len(monthly) == 0 {
					return nil
				}
				fmt.Fprintln(out)
				tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "MONTH\tRECORDED\tCONGREGATION %\tINDIVIDUAL %\tMAKE-UP %")
				for _, m := range monthly {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", m.Month, m.TotalRecorded,
						m.CongregationPct(), m.IndividualPct(), m.QadaPct())
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().IntVarP(&window, "window", "w", application.DefaultSummaryDays, "number of recent days to summarize")
	cmd.Flags().IntVar(&months, "months", application.MonthlyChartMonths, "number of recent months to list")
	return cmd
}
