package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"

	"tasklist/internal/config"
	"tasklist/internal/logger"
	"tasklist/internal/storage"
	"tasklist/internal/tasks"
	"tasklist/internal/ui"
)

func main() {
	configPath := flag.String("config", config.ResolveConfigPath(), "path to config.toml")
	flag.Parse()

	cfg, err := config.LoadOrCreate(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := tea.LogToFile(cfg.LogPath, "tasklist")
	if err != nil {
		fmt.Printf("failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	kv, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	store := tasks.Open(kv)
	logger.Info("started", "db", cfg.DBPath, "tasks", len(store.Tasks()), "lists", len(store.Lists()))

	if err := ui.Run(store, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}

	if cfg.MetricsPath != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsPath, prometheus.DefaultGatherer); err != nil {
			logger.Error(err, "write metrics", "path", cfg.MetricsPath)
		}
	}
}
