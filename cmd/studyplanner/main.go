package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyplanner/internal/config"
	"studyplanner/internal/logging"
	"studyplanner/internal/planner"
	"studyplanner/internal/scheduler"
	"studyplanner/internal/storage"
	"studyplanner/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := config.ResolveConfigPath()
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, logFile, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.Info(ctx, "starting", "config", configPath, "first_launch", firstLaunch, "db", cfg.DBPath)

	store, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	app, err := planner.Load(ctx, store, planner.PreferencesFromConfig(cfg.Preferences), log)
	if err != nil {
		fmt.Printf("failed to load planner state: %v\n", err)
		os.Exit(1)
	}

	err = ui.Run(ctx, ui.Options{
		Controller: app,
		Config:     cfg,
		Logger:     log,
		Scheduler:  scheduler.New(time.Local),
	})
	if err != nil {
		log.Error(ctx, "program exited with error", "err", err)
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
	log.Info(ctx, "stopped")
}
