package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"weekendly/internal/config"
	"weekendly/internal/logger"
	"weekendly/internal/store"
	"weekendly/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The log file shares the data directory with the store.
	if dir := filepath.Dir(cfg.Logging.OutputPath); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	st, err := store.Open(context.Background(), cfg.Storage.DBPath, cfg.Storage.FallbackDir, log)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = st.Close() }()

	return ui.NewApp(st, cfg, log).Execute()
}
