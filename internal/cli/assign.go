package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/shift-scheduler/internal/calendar"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/service"
)

// AssignOptions holds flags for the assign command.
type AssignOptions struct {
	*RootOptions
	Year  int
	Month int
	Save  bool
}

// NewAssignCommand creates the assign command.
func NewAssignCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AssignOptions{RootOptions: rootOpts}
	opts.Year, opts.Month = calendar.Current(time.Now())

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Auto-assign the empty shifts of a saved month",
		Long: `Fill the empty cells of the saved grid of a month with the least loaded
eligible engineer and print the per-engineer summary.

Example:
  shift-scheduler assign --year 2024 --month 3
  shift-scheduler assign --year 2024 --month 3 --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssign(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&opts.Year, "year", opts.Year, "year of the month to fill")
	cmd.Flags().IntVar(&opts.Month, "month", opts.Month, "month to fill (1-12)")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "save the filled grid")

	return cmd
}

func runAssign(ctx context.Context, opts *AssignOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, logger, err := bootstrap(ctx, opts.RootOptions, true)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	defer a.Close()

	period := domain.Period{Year: opts.Year, Month: opts.Month}
	res, err := a.Assignments.AutoAssign(ctx, period, nil)
	if err != nil {
		return err
	}
	if opts.Save {
		if _, err := a.Schedules.Save(ctx, period, res.Grid); err != nil {
			return err
		}
	}
	return printSummary(out, res, opts.Save)
}

func printSummary(out io.Writer, res *service.AssignmentResult, saved bool) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s %d\tassigned %d\tunfilled %d\n", calendar.MonthName(res.Period.Month), res.Period.Year, res.Report.Total, res.Report.Unfilled)
	for _, row := range res.Summary {
		fmt.Fprintf(w, "  %s\t%d\n", row.Name, row.Count)
	}
	for _, wp := range res.Report.SkippedWorkplaces {
		fmt.Fprintf(w, "  skipped %s\tno eligible engineer\n", wp)
	}
	if !saved {
		fmt.Fprintln(w, "not saved; rerun with --save to keep the result")
	}
	return w.Flush()
}
