package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"weekendly/internal/activity"
	"weekendly/internal/share"
	"weekendly/internal/store"
)

func (a *App) shareCmd() *cobra.Command {
	var noCopy bool

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Share the current plan as a link fragment",
		Long: `Encode the current plan into a URL fragment and copy it to the
clipboard. Paste the fragment into 'weekendly import' on another
machine to load the plan there. Activity ids do not travel; the
receiving side mints its own.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			plan, err := a.currentPlan(context.Background())
			if err != nil {
				return err
			}

			frag, err := share.EncodeFragment(plan.Theme, plan.Activities)
			if err != nil {
				return err
			}

			fmt.Println(frag)
			if !noCopy {
				if err := clipboard.WriteAll(frag); err != nil {
					fmt.Println(formatMuted("(clipboard unavailable, copy the line above)"))
				} else {
					fmt.Println(formatMuted("Copied to clipboard."))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "Print only, skip the clipboard")
	return cmd
}

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [fragment or file]",
		Short: "Import a shared plan",
		Long: `Import a plan into the current theme slot. The argument is either a
share fragment (starts with '#') or a path to a JSON export.

The imported set replaces the current plan's activities as a whole;
a payload with any malformed activity is rejected and nothing
changes.

Example:
  weekendly import '#eyJ0aGVtZSI6...'
  weekendly import saturday-plan.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			theme, as, err := importPayload(args[0])
			if err != nil {
				return err
			}

			plan, err := a.currentPlan(ctx)
			if err != nil {
				return err
			}

			// Re-mint ids locally, then swap the whole set.
			for i := range as {
				as[i].ID = store.NewID()
			}
			engine := a.engineFor(plan)
			if err := engine.Replace(ctx, as); err != nil {
				return err
			}
			if theme != plan.Theme {
				t := theme
				if err := a.store.UpdatePlan(ctx, plan.ID, store.PlanPatch{Theme: &t}); err != nil {
					return err
				}
			}

			fmt.Printf("Imported %d activities into the %s plan.\n", len(as), theme)
			return nil
		},
	}
}

// importPayload decodes either form of share payload: a '#' fragment
// or a JSON file on disk.
func importPayload(arg string) (activity.Theme, []activity.Activity, error) {
	if strings.HasPrefix(arg, "#") {
		return share.DecodeFragment(arg)
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", nil, fmt.Errorf("reading import file: %w", err)
	}
	file, as, err := share.ImportJSON(data)
	if err != nil {
		return "", nil, err
	}
	return activity.Theme(file.Theme), as, nil
}
