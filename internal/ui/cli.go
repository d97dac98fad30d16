// Package ui implements the command line interface.
package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weekendly/internal/activity"
	"weekendly/internal/config"
	"weekendly/internal/logger"
	"weekendly/internal/schedule"
	"weekendly/internal/store"
	"weekendly/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  *store.Store
	config *config.Config
	log    *logger.Logger
	root   *cobra.Command
	theme  string
}

// NewApp creates a new CLI application over an opened store.
func NewApp(st *store.Store, cfg *config.Config, log *logger.Logger) *App {
	a := &App{store: st, config: cfg, log: log}

	a.root = &cobra.Command{
		Use:   "weekendly",
		Short: "A weekend planner for your terminal",
		Long: `Weekendly plans your Saturday and Sunday as a slot grid.

Place activities on the grid, move them around without overlaps,
and share the result as a link, a calendar file, or plain JSON.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			plan, err := a.currentPlan(context.Background())
			if err != nil {
				return err
			}
			return tui.Run(tui.Options{
				Engine: a.engineFor(plan),
				Theme:  plan.Theme,
				Config: a.config,
				Logger: a.log,
			})
		},
	}

	a.root.PersistentFlags().StringVar(&a.theme, "plan", cfg.UI.Theme,
		"Plan theme to operate on: lazy, adventurous or family")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.suggestCmd())
	a.root.AddCommand(a.plansCmd())
	a.root.AddCommand(a.shareCmd())
	a.root.AddCommand(a.exportICSCmd())
	a.root.AddCommand(a.exportJSONCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.backupCmd())
	a.root.AddCommand(a.restoreCmd())
	a.root.AddCommand(a.statsCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("weekendly %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// currentPlan resolves the plan the command operates on: the first
// non-template plan with the selected theme, created on first use.
func (a *App) currentPlan(ctx context.Context) (*activity.Plan, error) {
	theme, err := activity.ParseTheme(a.theme)
	if err != nil {
		return nil, err
	}

	plan, err := a.store.GetThemePlan(ctx, theme)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		return plan, nil
	}

	id, err := a.store.SavePlan(ctx, store.PlanDraft{Theme: theme})
	if err != nil {
		return nil, fmt.Errorf("creating %s plan: %w", theme, err)
	}
	return a.store.GetPlan(ctx, id)
}

// engineFor builds a placement engine whose saver writes the full
// activity set back to the plan after every successful mutation.
func (a *App) engineFor(plan *activity.Plan) *schedule.Engine {
	planID := plan.ID
	saver := schedule.SaverFunc(func(ctx context.Context, as []activity.Activity) error {
		return a.store.UpdatePlan(ctx, planID, store.PlanPatch{Activities: &as})
	})

	e := schedule.NewEngine(a.config.Grid(), saver, a.log, store.NewID)
	e.Load(plan.Activities)
	return e
}
