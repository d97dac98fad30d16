package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"weekendly/internal/activity"
	"weekendly/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  weekendly config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Schedule.DayStart = promptValue(reader, "Day start", cfg.Schedule.DayStart)
	cfg.Schedule.DayEnd = promptValue(reader, "Day end", cfg.Schedule.DayEnd)
	cfg.Schedule.SlotSize = promptInt(reader, "Slot size (minutes)", cfg.Schedule.SlotSize)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.Storage.FallbackDir = promptValue(reader, "Fallback store directory", cfg.Storage.FallbackDir)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)
	cfg.Logging.Level = promptValue(reader, "Log level", cfg.Logging.Level)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[schedule]")
	fmt.Printf("  day_start    = %s\n", cfg.Schedule.DayStart)
	fmt.Printf("  day_end      = %s\n", cfg.Schedule.DayEnd)
	fmt.Printf("  slot_size    = %d\n", cfg.Schedule.SlotSize)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path      = %s\n", cfg.Storage.DBPath)
	fmt.Printf("  fallback_dir = %s\n", cfg.Storage.FallbackDir)
	fmt.Println("\n[viewport]")
	fmt.Printf("  threshold    = %d\n", cfg.Viewport.Threshold)
	fmt.Printf("  overscan     = %d\n", cfg.Viewport.Overscan)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme        = %s\n", cfg.UI.Theme)
	fmt.Println("\n[logging]")
	fmt.Printf("  level        = %s\n", cfg.Logging.Level)
	fmt.Printf("  output_path  = %s\n", cfg.Logging.OutputPath)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	value := promptValue(reader, label, strconv.Itoa(current))
	n, err := strconv.Atoi(value)
	if err != nil {
		fmt.Printf("  Not a number, keeping %d\n", current)
		return current
	}
	return n
}

func promptTheme(reader *bufio.Reader, current string) string {
	const options = "lazy, adventurous, family"
	label := fmt.Sprintf("Plan theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if activity.Theme(value).Valid() {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
