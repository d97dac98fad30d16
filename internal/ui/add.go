package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weekendly/internal/activity"
	"weekendly/internal/timegrid"
)

func (a *App) addCmd() *cobra.Command {
	var (
		day      string
		start    string
		duration int
		category string
		mood     string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an activity to the weekend",
		Long: `Add an activity to the current plan.

Without --start the next free slot after the day's last activity is
picked automatically. Durations snap to the slot grid and the start
is clamped into the day window.

Example:
  weekendly add "Morning hike" --day=saturday --start=09:00 --duration=90 --category=outdoor`,
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

			startMinutes := engine.SuggestNextSlot(d)
			if start != "" {
				if startMinutes, err = timegrid.ToMinutes(start); err != nil {
					return fmt.Errorf("--start: %w", err)
				}
			}

			placed, err := engine.Insert(ctx, d, startMinutes, activity.Draft{
				Title:           args[0],
				Category:        activity.Category(category),
				DurationMinutes: duration,
				Mood:            activity.Mood(mood),
				Notes:           notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Placed %s %s %s %s (%s)\n",
				formatCategory(placed.Category, "["+string(placed.Category)+"]"),
				placed.Title,
				string(placed.Day),
				formatTime(timegrid.ToTimeText(placed.StartMinutes)+"-"+timegrid.ToTimeText(placed.EndMinutes())),
				formatMuted("id "+placed.ID),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", string(activity.Saturday), "Day: saturday or sunday")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, default: next free slot)")
	cmd.Flags().IntVar(&duration, "duration", 60, "Duration in minutes")
	cmd.Flags().StringVar(&category, "category", string(activity.CategoryOther), "Category: outdoor, food, fitness, culture, home or other")
	cmd.Flags().StringVar(&mood, "mood", "", "Optional mood: chill, energetic, social or focus")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}
