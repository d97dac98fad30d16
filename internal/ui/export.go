package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"weekendly/internal/share"
	"weekendly/internal/store"
)

func (a *App) exportICSCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export-ics",
		Short: "Export the current plan as a calendar file",
		Long: `Render the current plan as an ICS calendar, one event per activity,
anchored to the upcoming weekend in UTC.

Example:
  weekendly export-ics --out=weekend.ics`,
		RunE: func(_ *cobra.Command, _ []string) error {
			plan, err := a.currentPlan(context.Background())
			if err != nil {
				return err
			}

			cal := share.BuildICS(plan.Activities, time.Now())
			return writeOut(out, []byte(cal))
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")
	return cmd
}

func (a *App) exportJSONCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export-json",
		Short: "Export the current plan as pretty-printed JSON",
		Long: `Write the current plan as an indented JSON document that
'weekendly import' understands. Record ids are not included.

Example:
  weekendly export-json --out=weekend.json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			plan, err := a.currentPlan(context.Background())
			if err != nil {
				return err
			}

			data, err := share.ExportJSON(plan, time.Now())
			if err != nil {
				return err
			}
			return writeOut(out, data)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")
	return cmd
}

func (a *App) backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [file]",
		Short: "Export every plan and exported settings to a file",
		Long: `Write a full snapshot of the store: all plans plus the settings
that travel between installs. Restore it with 'weekendly restore'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			snap, err := a.store.ExportAllData(context.Background())
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding snapshot: %w", err)
			}
			if err := os.WriteFile(args[0], append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing backup: %w", err)
			}

			fmt.Printf("Backed up %d plans to %s\n", len(snap.Plans), args[0])
			return nil
		},
	}
}

func (a *App) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [file]",
		Short: "Import a backup file",
		Long: `Load a snapshot written by 'weekendly backup'. Restored plans get
fresh ids, so restoring never overwrites existing plans.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading backup: %w", err)
			}

			var snap store.Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("parsing backup: %w", err)
			}

			if err := a.store.ImportData(context.Background(), &snap); err != nil {
				return err
			}
			fmt.Printf("Restored %d plans from %s\n", len(snap.Plans), args[0])
			return nil
		},
	}
}

func writeOut(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
