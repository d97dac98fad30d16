package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) plansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List all saved plans",
		Long: `List every saved plan: id, theme, version, activity count and tags.

Example:
  weekendly plans
  weekendly plans delete 1755945600000-1a2b3c4d`,
		RunE: func(_ *cobra.Command, _ []string) error {
			plans, err := a.store.GetAllPlans(context.Background())
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Println("No plans yet.")
				return nil
			}

			for _, p := range plans {
				kind := ""
				if p.Template {
					kind = formatMuted(" (template)")
				}
				fmt.Printf("%s  %-12s v%-3d %2d activities  %s%s\n",
					formatMuted(p.ID),
					formatHeader(string(p.Theme)),
					p.Version,
					len(p.Activities),
					formatMuted(p.UpdatedAt.Format("2006-01-02 15:04")),
					kind,
				)
				if len(p.Tags) > 0 {
					fmt.Printf("    %s\n", formatMuted(fmt.Sprintf("tags: %v", p.Tags)))
				}
			}
			return nil
		},
	}

	cmd.AddCommand(a.plansDeleteCmd())
	return cmd
}

func (a *App) plansDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a plan and its activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.store.DeletePlan(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func (a *App) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show storage statistics",
		Long:  `Show which backend is active and how many records it holds.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			stats, err := a.store.GetStats(context.Background())
			if err != nil {
				return err
			}

			mode := "structured (sqlite)"
			if stats.Mode != "structured" {
				mode = "flat-key fallback " + formatMuted("(degraded)")
			}

			fmt.Printf("Backend:    %s\n", mode)
			fmt.Printf("Plans:      %s\n", formatStats(fmt.Sprintf("%d", stats.Plans)))
			fmt.Printf("Activities: %s\n", formatStats(fmt.Sprintf("%d", stats.Activities)))
			fmt.Printf("Settings:   %s\n", formatStats(fmt.Sprintf("%d", stats.Settings)))
			return nil
		},
	}
}
