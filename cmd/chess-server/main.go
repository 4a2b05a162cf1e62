// Package main implements the chess server: a JSON API over the game
// service with optional SQLite move recording.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"termchess/cmd/chess-server/cli"
	"termchess/internal/config"
	"termchess/internal/service"
	"termchess/internal/storage"
	"termchess/internal/transport/http"
)

const (
	gracefulShutdownTimeout = time.Second * 5
	devRateLimit            = 10
)

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:], os.Stdout); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	var (
		configPath  = flag.String("config", "chess.yaml", "YAML config file (optional unless set)")
		apiHost     = flag.String("api-host", "", "API server host")
		apiPort     = flag.Int("api-port", 0, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, open CORS)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
	)
	flag.Parse()

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	cfg, err := config.Load(*configPath, !setFlags["config"])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if setFlags["api-host"] {
		cfg.Server.Host = *apiHost
	}
	if setFlags["api-port"] {
		cfg.Server.Port = *apiPort
	}
	if setFlags["dev"] {
		cfg.Server.Dev = *dev
	}
	if setFlags["storage-path"] {
		cfg.Storage.Path = *storagePath
	}
	if setFlags["pid"] {
		cfg.Server.PID = *pidPath
	}
	if setFlags["pid-lock"] {
		cfg.Server.PIDLock = *pidLock
	}
	if cfg.Server.Dev && cfg.Server.RateLimit > 0 && cfg.Server.RateLimit < devRateLimit {
		cfg.Server.RateLimit = devRateLimit
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	if cfg.Server.PIDLock && cfg.Server.PID == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}

	if cfg.Server.PID != "" {
		pf, err := acquirePIDFile(cfg.Server.PID, cfg.Server.PIDLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer pf.Release()
		log.Printf("PID file created at: %s (lock: %v)", cfg.Server.PID, cfg.Server.PIDLock)
	}

	// 1. Storage (optional)
	var store *storage.Store
	if cfg.Storage.Path != "" {
		log.Printf("Initializing persistent storage at: %s", cfg.Storage.Path)
		store, err = storage.NewStore(cfg.Storage.Path, cfg.Storage.Dev || cfg.Server.Dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	// 2. Service owns the store from here on
	svc := service.New(store)

	// 3. HTTP app
	app := http.NewFiberApp(svc, http.AppConfig{
		Dev:          cfg.Server.Dev,
		RateLimit:    cfg.Server.RateLimit,
		DefaultRules: cfg.Rules,
	})

	apiAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	go func() {
		log.Printf("Chess API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("Default rules: %s", cfg.Rules)
		if cfg.Server.RateLimit > 0 {
			log.Printf("Rate Limit: %d requests/second per IP", cfg.Server.RateLimit)
		} else {
			log.Printf("Rate Limit: disabled")
		}
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Closes watches and flushes the store
	if err := svc.Close(); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	log.Println("Server exited")
}
