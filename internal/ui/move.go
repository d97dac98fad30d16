package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weekendly/internal/activity"
	"weekendly/internal/timegrid"
)

func (a *App) moveCmd() *cobra.Command {
	var (
		day   string
		start string
	)

	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move an activity to another slot",
		Long: `Move an activity to a new day and start time, keeping its duration.

The move is rejected as a whole if the target slot overlaps another
activity; moving onto the activity's own slot always succeeds.

Example:
  weekendly move 1755945600000-1a2b3c4d --day=sunday --start=14:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			plan, err := a.currentPlan(ctx)
			if err != nil {
				return err
			}
			engine := a.engineFor(plan)

			d, err := activity.ParseDay(day)
			if err != nil {
				return err
			}
			startMinutes, err := timegrid.ToMinutes(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}

			moved, err := engine.Move(ctx, args[0], d, startMinutes)
			if err != nil {
				return err
			}

			fmt.Printf("Moved %q to %s %s\n",
				moved.Title,
				string(moved.Day),
				formatTime(timegrid.ToTimeText(moved.StartMinutes)+"-"+timegrid.ToTimeText(moved.EndMinutes())),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Target day: saturday or sunday (required)")
	cmd.Flags().StringVar(&start, "start", "", "Target start time (HH:MM, required)")

	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
