package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"stockyard/internal/backup"
	"stockyard/internal/config"
	"stockyard/internal/repository/sqlite"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "config file path (overrides search)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	seedDemo := flag.Bool("seed-demo", false, "populate the store with demo data and exit")
	backupNow := flag.Bool("backup-now", false, "run one backup and exit")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Stockyard...")

	// Load configuration
	var cfg *config.Config
	var cfgFile string
	var err error
	if *configPath != "" {
		cfg, cfgFile, err = config.LoadFromPath(*configPath)
	} else {
		cfg, cfgFile, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfgFile != "" {
		log.Printf("Config loaded: %s", cfgFile)
	} else {
		log.Println("No config file found, using defaults")
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	if cfg.Logging.File != "" {
		if err := config.EnsureConfigDir(cfg.Logging.File); err != nil {
			log.Fatalf("Failed to create log dir: %v", err)
		}
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	// Open the store
	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()
	log.Printf("Store opened: %s", cfg.Database.Path)

	if *seedDemo {
		if err := seed(context.Background(), store); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
		log.Println("Demo data seeded")
		return
	}

	// Backup scheduler
	scheduler := backup.NewScheduler(store.Path(), backup.Options{
		Enabled:   cfg.Backup.Enabled || *backupNow,
		Interval:  cfg.Backup.Interval(),
		Dir:       cfg.Backup.Directory,
		Retention: cfg.Backup.MaxBackups,
	})

	if *backupNow {
		if err := runOnce(scheduler); err != nil {
			log.Fatalf("Backup failed: %v", err)
		}
		return
	}

	// Drain scheduler notifications into the log
	go func() {
		for ev := range scheduler.Events() {
			switch ev.Type {
			case backup.EventStarted:
				log.Println("Backup started")
			case backup.EventFinished:
				log.Printf("Backup finished: %s", filepath.Base(ev.Path))
				for _, p := range ev.Pruned {
					log.Printf("Pruned old backup: %s", filepath.Base(p))
				}
			case backup.EventFailed:
				log.Printf("Backup failed: %s", ev.Message)
			}
		}
	}()

	scheduler.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	scheduler.Stop()
	log.Println("Stopped")
}

// runOnce triggers a single backup and blocks until its result event.
func runOnce(s *backup.Scheduler) error {
	if !s.TriggerBackup() {
		return fmt.Errorf("backup did not start")
	}
	for ev := range s.Events() {
		switch ev.Type {
		case backup.EventFinished:
			log.Printf("Backup finished: %s", ev.Path)
			return nil
		case backup.EventFailed:
			return fmt.Errorf("%s", ev.Message)
		}
	}
	return nil
}
