package ui

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"weekendly/internal/activity"
	"weekendly/internal/timegrid"
)

func (a *App) listCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the weekend's activities",
		Long: `List the current plan's activities grouped by day, in start order.

Example:
  weekendly list
  weekendly list --plan=family -v`,
		RunE: func(_ *cobra.Command, _ []string) error {
			plan, err := a.currentPlan(context.Background())
			if err != nil {
				return err
			}

			if len(plan.Activities) == 0 {
				fmt.Printf("The %s plan is empty. Add something with 'weekendly add'.\n", plan.Theme)
				return nil
			}

			fmt.Printf("%s  %s\n", formatHeader(string(plan.Theme)+" weekend"), formatMuted(fmt.Sprintf("v%d", plan.Version)))
			for _, day := range []activity.Day{activity.Saturday, activity.Sunday} {
				printDay(day, plan.ActivitiesOn(day), verbose)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show ids and notes")
	return cmd
}

func printDay(day activity.Day, as []activity.Activity, verbose bool) {
	if len(as) == 0 {
		return
	}
	sort.Slice(as, func(i, j int) bool { return as[i].StartMinutes < as[j].StartMinutes })

	fmt.Printf("\n=== %s ===\n", formatHeader(string(day)))
	for _, a := range as {
		span := timegrid.ToTimeText(a.StartMinutes) + "-" + timegrid.ToTimeText(a.EndMinutes())
		line := fmt.Sprintf("  %s  %s  %s",
			formatTime(span),
			formatCategory(a.Category, fmt.Sprintf("%-9s", "["+string(a.Category)+"]")),
			a.Title,
		)
		if a.Mood != "" {
			line += "  " + formatMuted("~"+string(a.Mood))
		}
		fmt.Println(line)

		if verbose {
			fmt.Printf("      %s\n", formatMuted("id "+a.ID))
			if a.Notes != "" {
				fmt.Printf("      %s\n", formatMuted(a.Notes))
			}
		}
	}
}

func (a *App) suggestCmd() *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest the next free slot for a day",
		Long: `Print the start time an unplaced activity would get: the first
30-minute boundary after the day's last activity, or 10:00 on an
empty day, clamped into the day window.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			plan, err := a.currentPlan(context.Background())
			if err != nil {
				return err
			}
			engine := a.engineFor(plan)

			d, err := activity.ParseDay(day)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", string(d), formatTime(timegrid.ToTimeText(engine.SuggestNextSlot(d))))
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", string(activity.Saturday), "Day: saturday or sunday")
	return cmd
}
