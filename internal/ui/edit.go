package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weekendly/internal/activity"
	"weekendly/internal/schedule"
	"weekendly/internal/timegrid"
)

func (a *App) editCmd() *cobra.Command {
	var (
		title    string
		day      string
		start    string
		duration int
		category string
		mood     string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit fields of an activity",
		Long: `Edit an activity in place. Only the flags you pass are changed, and
the edit applies as a whole: if the result would overlap another
activity, nothing changes.

Example:
  weekendly edit 1755945600000-1a2b3c4d --duration=120 --mood=chill`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			plan, err := a.currentPlan(ctx)
			if err != nil {
				return err
			}
			engine := a.engineFor(plan)

			var patch schedule.Patch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("day") {
				d := activity.Day(day)
				patch.Day = &d
			}
			if cmd.Flags().Changed("start") {
				patch.StartText = &start
			}
			if cmd.Flags().Changed("duration") {
				patch.DurationMinutes = &duration
			}
			if cmd.Flags().Changed("category") {
				c := activity.Category(category)
				patch.Category = &c
			}
			if cmd.Flags().Changed("mood") {
				m := activity.Mood(mood)
				patch.Mood = &m
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}

			edited, err := engine.Edit(ctx, args[0], patch)
			if err != nil {
				return err
			}

			fmt.Printf("Updated %q: %s %s %s\n",
				edited.Title,
				string(edited.Day),
				formatTime(timegrid.ToTimeText(edited.StartMinutes)+"-"+timegrid.ToTimeText(edited.EndMinutes())),
				formatCategory(edited.Category, "["+string(edited.Category)+"]"),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&day, "day", "", "New day: saturday or sunday")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().IntVar(&duration, "duration", 0, "New duration in minutes")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVar(&mood, "mood", "", "New mood (empty clears it)")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")

	return cmd
}

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove an activity",
		Long: `Remove an activity from the current plan. Removing an id that does
not exist is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			plan, err := a.currentPlan(ctx)
			if err != nil {
				return err
			}
			engine := a.engineFor(plan)

			before := len(engine.Activities())
			if err := engine.Remove(ctx, args[0]); err != nil {
				return err
			}
			if len(engine.Activities()) == before {
				fmt.Println("Nothing to remove.")
				return nil
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}
